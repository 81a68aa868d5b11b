package generation

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("Da Nang beach tour $500", "Da Nang tour")
	want := "Context: Da Nang beach tour $500\n\nUser: Da Nang tour\n\nResponse:"

	if got != want {
		t.Errorf("unexpected prompt:\n got %q\nwant %q", got, want)
	}
}

func TestBuildPrompt_EmptyContext(t *testing.T) {
	got := BuildPrompt("", "hello")

	if !strings.HasPrefix(got, "Context: \n\nUser: hello") {
		t.Errorf("unexpected prompt: %q", got)
	}
}

func TestBuildMessages(t *testing.T) {
	history := []Message{
		{Role: RoleSystem, Content: "ignored"},
		{Role: RoleUser, Content: "  "},
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "answer"},
	}

	got := BuildMessages("sys", "prompt", history)

	if len(got) != 4 {
		t.Fatalf("expected 4 messages, got %d: %+v", len(got), got)
	}
	if got[0].Content != "sys" || got[1].Content != "first" || got[2].Content != "answer" || got[3].Content != "prompt" {
		t.Errorf("unexpected order: %+v", got)
	}
}

func TestBuildMessages_NoSystem(t *testing.T) {
	got := BuildMessages("", "prompt", nil)

	if len(got) != 1 || got[0].Role != RoleUser {
		t.Errorf("expected a single user message, got %+v", got)
	}
}

func TestSystemPrompt_MentionsContacts(t *testing.T) {
	for _, want := range []string{"CMP Travel AI Assistant", "booking@cmp-travel.com", "1900 1234"} {
		if !strings.Contains(SystemPrompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}
