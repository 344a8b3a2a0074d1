package views

import (
	"context"
	"strings"
	"testing"
)

func render(t *testing.T, data PreviewData) string {
	t.Helper()
	var sb strings.Builder
	if err := DocumentPreview(data).Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return sb.String()
}

func TestDocumentPreview_HeadingsAndParagraphs(t *testing.T) {
	html := render(t, PreviewData{
		Title:    "Commercial Bid Proposal",
		Subtitle: "Proposals & Bids",
		Body:     "## Scope of Work\n\nSitework and utilities.\nPaving.\n\n## Exclusions\n\nPermits",
	})

	for _, want := range []string{
		"<h1>Commercial Bid Proposal</h1>",
		`<p class="subtitle">Proposals &amp; Bids</p>`,
		"<h2>Scope of Work</h2>",
		"<p>Sitework and utilities.<br>Paving.</p>",
		"<h2>Exclusions</h2>",
		"<p>Permits</p>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in %s", want, html)
		}
	}
	if strings.Contains(html, "missing-fields") {
		t.Error("did not expect missing-fields block")
	}
}

func TestDocumentPreview_EscapesValues(t *testing.T) {
	html := render(t, PreviewData{
		Title: "<script>alert(1)</script>",
		Body:  "Client: <b>Acme</b> & Sons",
	})
	if strings.Contains(html, "<script>") || strings.Contains(html, "<b>") {
		t.Errorf("unescaped markup in %s", html)
	}
	if !strings.Contains(html, "&lt;b&gt;Acme&lt;/b&gt; &amp; Sons") {
		t.Errorf("expected escaped body in %s", html)
	}
}

func TestDocumentPreview_MissingFields(t *testing.T) {
	html := render(t, PreviewData{
		Title:   "Contract",
		Missing: []string{"Client Name", "Contract Sum"},
	})
	if !strings.Contains(html, `<div class="missing-fields" role="alert">`) {
		t.Fatalf("expected missing-fields block in %s", html)
	}
	if !strings.Contains(html, "<li>Client Name</li><li>Contract Sum</li>") {
		t.Errorf("expected missing labels in order in %s", html)
	}
}

func TestSplitBlocks(t *testing.T) {
	got := splitBlocks("## A\nline1\nline2\n\n\n## B\r\n\r\ntext")
	want := []string{"## A", "line1\nline2", "## B", "text"}
	if len(got) != len(want) {
		t.Fatalf("splitBlocks() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPreviewBlocks(t *testing.T) {
	got := previewBlocks("## Scope\n\nSitework.\nPaving.")
	if len(got) != 2 {
		t.Fatalf("expected 2 blocks, got %+v", got)
	}
	if !got[0].Heading || got[0].Text != "Scope" {
		t.Errorf("block 0 = %+v, want heading Scope", got[0])
	}
	if got[1].Heading || len(got[1].Lines) != 2 || got[1].Lines[1] != "Paving." {
		t.Errorf("block 1 = %+v, want two paragraph lines", got[1])
	}
}
