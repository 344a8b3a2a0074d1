// Package views renders HTML fragments for the document preview pane.
package views

import "strings"

// PreviewData is everything the preview pane shows for one rendered template.
type PreviewData struct {
	Title    string
	Subtitle string
	Body     string
	// Missing are labels of required fields still blank.
	Missing []string
}

// previewBlock is one heading or paragraph of a rendered body.
type previewBlock struct {
	Heading bool
	Text    string
	Lines   []string
}

// previewBlocks turns a rendered body into headings ("## " lines) and
// paragraphs (blank-line separated text).
func previewBlocks(body string) []previewBlock {
	raw := splitBlocks(body)
	blocks := make([]previewBlock, 0, len(raw))
	for _, blk := range raw {
		if heading, ok := strings.CutPrefix(blk, "## "); ok {
			blocks = append(blocks, previewBlock{Heading: true, Text: heading})
			continue
		}
		blocks = append(blocks, previewBlock{Lines: strings.Split(blk, "\n")})
	}
	return blocks
}

// splitBlocks breaks body on blank lines, keeping headings as their own block.
func splitBlocks(body string) []string {
	var blocks []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, strings.Join(cur, "\n"))
			cur = nil
		}
	}
	for _, line := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n") {
		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case strings.HasPrefix(line, "## "):
			flush()
			blocks = append(blocks, line)
		default:
			cur = append(cur, line)
		}
	}
	flush()
	return blocks
}
