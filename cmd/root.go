package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/config"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/generation"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/orchestrator"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/rag"
)

var (
	configPath string
	corpusRoot string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "travelrag",
	Short: "travelrag - Travel knowledge base assistant",
	Long: `travelrag answers travel questions from the CMP Travel knowledge base.

It loads tour, hotel, blog, guide and company documents from disk, ranks them
against each question, fits the best passages into the model's context window
and asks a language model (OpenAI or Anthropic) for the reply.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&corpusRoot, "corpus", "", "Knowledge base root directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// loadConfig reads the config file for profile and applies flag overrides.
func loadConfig(profile config.Profile) (*config.Config, error) {
	cfg, err := config.Load(configPath, profile)
	if err != nil {
		return nil, err
	}

	if corpusRoot != "" {
		cfg.Corpus.Root = corpusRoot
	}
	if logLevel != "" {
		cfg.Log.Level = strings.ToLower(logLevel)
	}
	if logFormat != "" {
		cfg.Log.Format = strings.ToLower(logFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(lc config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// app bundles what every front end needs: config, logger, the live corpus
// and the answering pipeline.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	holder   *corpus.Holder
	pipeline *orchestrator.Pipeline

	// llmErr is set when the provider could not be built; the pipeline then
	// answers with the misconfiguration reply.
	llmErr error
}

func newApp(profile config.Profile) (*app, error) {
	cfg, err := loadConfig(profile)
	if err != nil {
		return nil, err
	}
	return buildApp(cfg, newLogger(cfg.Log)), nil
}

func buildApp(cfg *config.Config, logger *slog.Logger) *app {
	holder := corpus.NewHolder(corpus.Load(cfg.Corpus.Root, corpus.Categories, logger))

	llmConfig := cfg.LLMConfig()
	llm, err := generation.New(llmConfig)
	if err != nil {
		logger.Error("language model unavailable", "provider", llmConfig.Provider, "error", err)
		llm = generation.Unavailable(err)
	}

	gen := generation.NewGenerator(llm, llmConfig, cfg.RetryPolicy(), logger)
	pipeline := orchestrator.NewPipeline(
		holder,
		rag.NewRetriever(cfg.RetrievalOptions()),
		gen,
		orchestrator.Config{SystemPrompt: generation.SystemPrompt, Limits: cfg.BudgetLimits()},
		logger,
	)

	return &app{cfg: cfg, logger: logger, holder: holder, pipeline: pipeline, llmErr: err}
}

// warnProvider tells terminal users that every answer will be a fallback
// reply because the provider could not be built.
func (a *app) warnProvider(w io.Writer) {
	if a.llmErr == nil {
		return
	}
	fmt.Fprintln(w, errorStyle.Render("Warning:"), fmt.Sprintf("language model unavailable (%s): %v", a.cfg.Generation.Provider, a.llmErr))
	fmt.Fprintln(w, contextStyle.Render("Answers will be the fallback reply until this is fixed. Run `travelrag ping` to check."))
	fmt.Fprintln(w)
}
