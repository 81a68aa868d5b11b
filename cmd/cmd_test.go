package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/config"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/generation"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/orchestrator"
)

func testApp(t *testing.T, provider string) *app {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "tours")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "danang.txt"), []byte("Da Nang beach tour $500"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default(config.ProfileInteractive)
	cfg.Corpus.Root = root
	cfg.Generation.Provider = provider
	cfg.Generation.APIKey = ""
	return buildApp(cfg, slog.New(slog.DiscardHandler))
}

func TestBuildApp_MockProvider(t *testing.T) {
	a := testApp(t, generation.ProviderMock)

	if a.llmErr != nil {
		t.Fatalf("unexpected provider error: %v", a.llmErr)
	}
	if got := a.pipeline.Stats().TotalDocuments; got != 1 {
		t.Errorf("Expected 1 document, got %d", got)
	}

	ans := a.pipeline.Answer(context.Background(), "Da Nang tour")
	if ans.Outcome != orchestrator.OutcomeOK {
		t.Fatalf("Expected ok outcome, got %s", ans.Outcome)
	}
	if !strings.Contains(ans.Text, "Based on 1 passages") {
		t.Errorf("unexpected answer: %q", ans.Text)
	}
}

func TestBuildApp_MissingKeyStillAnswers(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	a := testApp(t, generation.ProviderOpenAI)

	if a.llmErr == nil {
		t.Fatal("expected a provider error without an API key")
	}
	ans := a.pipeline.Answer(context.Background(), "Da Nang tour")
	if ans.Text != generation.ReplyMisconfigured {
		t.Errorf("Expected misconfiguration reply, got %q", ans.Text)
	}

	var out bytes.Buffer
	a.warnProvider(&out)
	if !strings.Contains(out.String(), "language model unavailable (openai)") || !strings.Contains(out.String(), "OPENAI_API_KEY") {
		t.Errorf("expected the provider error in the warning, got %q", out.String())
	}
}

func TestWarnProvider_SilentWhenAvailable(t *testing.T) {
	a := testApp(t, generation.ProviderMock)

	var out bytes.Buffer
	a.warnProvider(&out)
	if out.Len() != 0 {
		t.Errorf("expected no warning, got %q", out.String())
	}
}

func TestChatLoop(t *testing.T) {
	a := testApp(t, generation.ProviderMock)
	session := orchestrator.NewSession(a.pipeline, 2)

	in := strings.NewReader("Da Nang tour\n\n/stats\n/reset\nstill here?\n/quit\nnever read\n")
	var out bytes.Buffer

	if err := chatLoop(context.Background(), in, &out, session, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Based on 1 passages", "total    1", "Conversation cleared", "Goodbye!"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "never read") {
		t.Error("input after /quit was processed")
	}
	// /reset cleared the first exchange; only the last one is remembered.
	if h := session.History(); len(h) != 2 || h[0].Content != "still here?" {
		t.Errorf("unexpected history: %+v", h)
	}
}

func TestChatLoop_EOF(t *testing.T) {
	a := testApp(t, generation.ProviderMock)

	var out bytes.Buffer
	if err := chatLoop(context.Background(), strings.NewReader("hello"), &out, orchestrator.NewSession(a.pipeline, 1), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Assistant:") {
		t.Errorf("expected an answer before EOF:\n%s", out.String())
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	configPath, corpusRoot, logLevel, logFormat = "", "/tmp/kb", "DEBUG", "json"
	t.Cleanup(func() { configPath, corpusRoot, logLevel, logFormat = "", "", "", "" })

	cfg, err := loadConfig(config.ProfileService)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Corpus.Root != "/tmp/kb" || cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	logLevel = "loud"
	if _, err := loadConfig(config.ProfileService); err == nil {
		t.Error("expected invalid log level to fail validation")
	}
}

func TestMongoURI_Selection(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://env:27017")
	defer func() { exportMongoURI = "" }()

	tests := []struct {
		name         string
		flag         string
		inputChanged bool
		want         string
	}{
		{name: "environment by default", want: "mongodb://env:27017"},
		{name: "explicit input keeps files", inputChanged: true, want: ""},
		{name: "flag wins", flag: "mongodb://flag:27017", want: "mongodb://flag:27017"},
		{name: "flag wins over input", flag: "mongodb://flag:27017", inputChanged: true, want: "mongodb://flag:27017"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exportMongoURI = tt.flag
			if got := mongoURI(tt.inputChanged); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
