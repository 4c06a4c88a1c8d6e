package internal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// RenderLogs writes the development logs to w as styled terminal markdown,
// falling back to the raw text when rendering fails.
func RenderLogs(j *Journal, w io.Writer) error {
	content, err := j.Content()
	if err != nil {
		return err
	}
	if content == "" {
		fmt.Fprintln(w, "No development logs yet.")
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprint(w, content)
		return nil
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		rendered = content
	}
	fmt.Fprint(w, rendered)
	return nil
}
