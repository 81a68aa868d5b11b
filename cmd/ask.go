package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/config"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/orchestrator"
)

var askVerbose bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question about CMP Travel",
	Long: `Ask a natural language question and print the assistant's reply.

This command:
1. Loads the knowledge base from the corpus root
2. Ranks documents by how often the question's words appear in them
3. Fits the best passages into the model's context window
4. Generates an answer with the configured provider

Required environment variables:
  OPENAI_API_KEY     - when generation.provider is openai (default)
  ANTHROPIC_API_KEY  - when generation.provider is anthropic

Examples:
  travelrag ask "What tours do you have in Da Nang?"
  travelrag ask "Which hotels have a spa?" --verbose
  travelrag ask "Do guides speak French?" --corpus ./knowledge-base-travel`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVarP(&askVerbose, "verbose", "v", false, "Show retrieved documents and budget details")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("%s question is empty", errorStyle.Render("Error:"))
	}

	a, err := newApp(config.ProfileInteractive)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	out := cmd.OutOrStdout()
	a.warnProvider(cmd.ErrOrStderr())

	// Print question
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Question:"))
	fmt.Fprintln(out, questionStyle.Render(question))
	fmt.Fprintln(out)

	if askVerbose {
		stats := a.pipeline.Stats()
		fmt.Fprintln(out, contextStyle.Render(fmt.Sprintf("→ Knowledge base: %d documents from %s", stats.TotalDocuments, a.cfg.Corpus.Root)))
	}

	ans := a.pipeline.Answer(context.Background(), question)

	if askVerbose {
		printDetails(out, ans)
	}

	fmt.Fprintln(out, headerStyle.Render("Answer:"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, answerStyle.Render(strings.TrimSpace(ans.Text)))
	fmt.Fprintln(out)

	return nil
}

// printDetails shows how an answer was put together.
func printDetails(w io.Writer, ans orchestrator.Answer) {
	if len(ans.Documents) == 0 {
		fmt.Fprintln(w, contextStyle.Render("→ No matching documents"))
	}
	for i, sd := range ans.Documents {
		fmt.Fprintln(w, contextStyle.Render(fmt.Sprintf("→ #%d %s/%s (score %d)", i+1, sd.Document.Category, sd.Document.Name, sd.Score)))
	}

	alloc := ans.Allocation
	switch {
	case alloc.Omitted:
		fmt.Fprintln(w, contextStyle.Render("→ Context omitted: no room left in the budget"))
	case alloc.Truncated:
		fmt.Fprintln(w, contextStyle.Render(fmt.Sprintf("→ Context truncated from %d chars to fit %d tokens", ans.ContextChars, alloc.Available)))
	default:
		fmt.Fprintln(w, contextStyle.Render(fmt.Sprintf("→ Context %d chars, %d tokens available", ans.ContextChars, alloc.Available)))
	}

	status := fmt.Sprintf("✓ %s in %s (%d attempts)", ans.Outcome, ans.Latency.Round(time.Millisecond), ans.Attempts)
	if ans.Outcome == orchestrator.OutcomeOK {
		fmt.Fprintln(w, successStyle.Render(status))
	} else {
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("✗ %s (%s)", ans.Outcome, ans.Failure)))
	}
	fmt.Fprintln(w)
}
