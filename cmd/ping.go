package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/config"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/generation"
)

const pingTimeout = 15 * time.Second

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the language model provider is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(config.ProfileService)
		if err != nil {
			return err
		}

		llmConfig := cfg.LLMConfig()
		llm, err := generation.New(llmConfig)
		if err != nil {
			return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()

		start := time.Now()
		if err := generation.Ping(ctx, llm); err != nil {
			return fmt.Errorf("%s %s/%s: %w", errorStyle.Render("Unreachable:"), llmConfig.Provider, llmConfig.Model, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ %s/%s reachable in %s", llmConfig.Provider, llmConfig.Model, time.Since(start).Round(time.Millisecond))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
