package preview_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/quill/pkg/engine"
	"github.com/JaimeStill/quill/pkg/preview"
)

func TestMarkdown(t *testing.T) {
	got := preview.Markdown("[Identity]\n- You are Ava.\n\n[Task & Goals]\n- Book visits.")
	want := "## Identity\n- You are Ava.\n\n## Task & Goals\n- Book visits."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender(t *testing.T) {
	p, err := preview.New().Render(engine.DefaultPrompt)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"<h2>Identity</h2>",
		"<h2>Error Handling / Fallback</h2>",
		"<li>",
	} {
		if !strings.Contains(p.HTML, want) {
			t.Errorf("html missing %q:\n%s", want, p.HTML)
		}
	}
}

func TestRenderOmitsRawHTML(t *testing.T) {
	p, err := preview.New().Render("[Identity]\n- <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(p.HTML, "<script>") {
		t.Errorf("raw html passed through:\n%s", p.HTML)
	}
}
