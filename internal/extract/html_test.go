package extract

import (
	"strings"
	"testing"
)

func TestHTMLText_ParagraphBoundaries(t *testing.T) {
	input := "<p>Hello world</p><p>Second paragraph with more text to exceed size thresholds.</p>"
	got, err := HTMLText(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(got, "\n")
	var nonEmpty []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(l))
		}
	}
	if len(nonEmpty) != 2 {
		t.Fatalf("expected 2 text lines, got %d: %q", len(nonEmpty), got)
	}
	if nonEmpty[0] != "Hello world" {
		t.Errorf("expected first line %q, got %q", "Hello world", nonEmpty[0])
	}
	if !strings.HasPrefix(nonEmpty[1], "Second paragraph") {
		t.Errorf("expected second line to start with %q, got %q", "Second paragraph", nonEmpty[1])
	}
}

func TestHTMLText_DropsScriptAndStyle(t *testing.T) {
	input := `<html><head><style>body { color: red; }</style></head>` +
		`<body><script>alert("evil")</script><p>Visible text</p></body></html>`
	got, err := HTMLText(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "alert") || strings.Contains(got, "color") {
		t.Errorf("script/style content leaked into output: %q", got)
	}
	if !strings.Contains(got, "Visible text") {
		t.Errorf("expected output to contain %q, got %q", "Visible text", got)
	}
}

func TestHTMLText_HeadingsAndListItems(t *testing.T) {
	input := "<h1>Title</h1><ul><li>one</li><li>two</li></ul><td>cell</td>"
	got, err := HTMLText(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Title", "one", "two", "cell"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got %q", want, got)
		}
	}
	// Block boundaries become separate lines.
	if !strings.Contains(got, "\n") {
		t.Errorf("expected newline separators in %q", got)
	}
}

func TestHTMLText_CollapsesNewlineRuns(t *testing.T) {
	input := "<div><p>a</p></div><div><div><p>b</p></div></div>"
	got, err := HTMLText(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("expected at most 2 consecutive newlines, got %q", got)
	}
}

func TestHTMLText_UnterminatedTagDoesNotFail(t *testing.T) {
	input := "<p>Hello <b>world"
	got, err := HTMLText(input)
	if err != nil {
		t.Fatalf("extraction must not fail on malformed markup: %v", err)
	}
	if !strings.Contains(got, "Hello") || !strings.Contains(got, "world") {
		t.Errorf("expected degraded output to keep the text, got %q", got)
	}
}

func TestHTMLText_PlainTextPassesThrough(t *testing.T) {
	input := "Just a plain sentence without markup."
	got, err := HTMLText(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != input {
		t.Errorf("expected %q, got %q", input, got)
	}
}

func TestHTMLText_TrimsWhitespace(t *testing.T) {
	got, err := HTMLText("   <p>  padded  </p>   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "padded" {
		t.Errorf("expected %q, got %q", "padded", got)
	}
}
