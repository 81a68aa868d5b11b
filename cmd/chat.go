package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/config"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/orchestrator"
)

var (
	chatTurns   int
	chatVerbose bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive travel assistant session",
	Long: `Start an interactive session with the CMP Travel assistant.

The assistant remembers the last few exchanges so follow-up questions such as
"how much is it?" refer to what was discussed. Failed provider calls are
retried with exponential backoff.

Commands:
  /reset   forget the conversation
  /stats   show knowledge base counts
  /quit    leave the session`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().IntVar(&chatTurns, "turns", orchestrator.DefaultMaxTurns, "Number of previous exchanges sent with each question")
	chatCmd.Flags().BoolVarP(&chatVerbose, "verbose", "v", false, "Show retrieved documents and budget details")
}

func runChat(cmd *cobra.Command, _ []string) error {
	a, err := newApp(config.ProfileInteractive)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	out := cmd.OutOrStdout()
	a.warnProvider(out)
	fmt.Fprintln(out, headerStyle.Render("CMP Travel Assistant"))
	fmt.Fprintln(out, contextStyle.Render(fmt.Sprintf("%d documents loaded. Type /quit to leave.", a.pipeline.Stats().TotalDocuments)))
	fmt.Fprintln(out)

	session := orchestrator.NewSession(a.pipeline, chatTurns)
	return chatLoop(cmd.Context(), cmd.InOrStdin(), out, session, chatVerbose)
}

// chatLoop reads questions line by line until EOF or /quit.
func chatLoop(ctx context.Context, in io.Reader, out io.Writer, session *orchestrator.Session, verbose bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, questionStyle.Render("You: "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			fmt.Fprintln(out, contextStyle.Render("Goodbye!"))
			return nil
		case "/reset":
			session.Reset()
			fmt.Fprintln(out, successStyle.Render("✓ Conversation cleared"))
			continue
		case "/stats":
			printStats(out, session.Pipeline().Stats())
			continue
		}

		ans := session.Ask(ctx, line)
		if verbose {
			printDetails(out, ans)
		}
		fmt.Fprintln(out, headerStyle.Render("Assistant:"), answerStyle.Render(strings.TrimSpace(ans.Text)))
		fmt.Fprintln(out)
	}
}

func printStats(w io.Writer, stats corpus.Stats) {
	fmt.Fprintln(w, headerStyle.Render("Knowledge base:"))
	for _, cat := range corpus.Categories {
		fmt.Fprintf(w, "  %-8s %d\n", cat, stats.Categories[cat])
	}
	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("  total    %d", stats.TotalDocuments)))
}
