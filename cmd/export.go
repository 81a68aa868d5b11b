package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/config"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/export"
)

var (
	exportInput     string
	exportMongoURI  string
	exportDatabase  string
	exportOutput    string
	exportAggregate bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Build the knowledge base from the travel database",
	Long: `Convert the travel database into knowledge base documents.

Records are read from MongoDB when --mongo-uri (or MONGODB_URI) is set and
--input is not given. Otherwise the input directory may contain tours, hotels,
blogs and guides (or tourguides) collections as .json arrays or .jsonl/.ndjson
lines, for example as written by mongoexport. Each record becomes one text
file under the matching category directory of the output root.

Examples:
  travelrag export --mongo-uri mongodb://localhost:27017 --database traveldb
  travelrag export --input ./dump --output ./knowledge-base-travel
  travelrag export --input ./dump --aggregate`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", ".", "Directory holding the export files")
	exportCmd.Flags().StringVar(&exportMongoURI, "mongo-uri", "", "MongoDB connection string (default: $MONGODB_URI)")
	exportCmd.Flags().StringVar(&exportDatabase, "database", export.DefaultDatabase, "MongoDB database name")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Knowledge base root to write (default: configured corpus root)")
	exportCmd.Flags().BoolVar(&exportAggregate, "aggregate", false, "Also write one all_<category>.txt file per category")
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(config.ProfileService)
	if err != nil {
		return err
	}
	if exportOutput == "" {
		exportOutput = cfg.Corpus.Root
	}

	logger := newLogger(cfg.Log)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := export.Options{
		InputDir:  exportInput,
		OutputDir: exportOutput,
		Aggregate: exportAggregate,
		Logger:    logger,
	}

	if uri := mongoURI(cmd.Flags().Changed("input")); uri != "" {
		src, err := export.ConnectMongo(ctx, uri, exportDatabase)
		if err != nil {
			return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
		}
		defer func() {
			if err := src.Close(context.Background()); err != nil {
				logger.Warn("closing MongoDB connection", "error", err)
			}
		}()
		opts.Source = src
		logger.Info("exporting from MongoDB", "database", exportDatabase)
	}

	summary, err := export.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Knowledge base written to %s", summary.OutputDir)))
	fmt.Fprintf(out, "  tours    %d\n  hotels   %d\n  blogs    %d\n  guides   %d\n", summary.Tours, summary.Hotels, summary.Blogs, summary.Guides)
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("  total    %d", summary.Total())))
	return nil
}

// mongoURI picks the database connection string. An explicit --input keeps
// the file source even when MONGODB_URI is set in the environment.
func mongoURI(inputChanged bool) string {
	if exportMongoURI != "" {
		return exportMongoURI
	}
	if inputChanged {
		return ""
	}
	return os.Getenv("MONGODB_URI")
}
