package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/config"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base document counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(config.ProfileService)
		if err != nil {
			return err
		}
		c := corpus.Load(cfg.Corpus.Root, corpus.Categories, newLogger(cfg.Log))
		printStats(cmd.OutOrStdout(), c.Stats())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
