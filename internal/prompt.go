package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter collects missing inputs from the terminal with blocking
// request/response prompts. Reader and writer are injected so tests can
// script a session.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// String prompts for a line of input, returning def when the answer is empty.
func (p *Prompter) String(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s (default: %s): ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. Empty input picks def.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s (%s): ", label, hint)

	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// CommitMessage composes a commit message interactively: a title, re-prompted
// while empty, followed by optional body lines recorded as a bullet list. An
// empty body line ends the input.
func (p *Prompter) CommitMessage() (string, error) {
	var title string
	for title == "" {
		fmt.Fprint(p.out, "Commit title: ")
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if answer == "" {
			fmt.Fprintln(p.out, "A commit message is required.")
			continue
		}
		title = answer
	}

	fmt.Fprintln(p.out, "Body lines, one per prompt. Empty line finishes.")

	var body []string
	for i := 1; ; i++ {
		fmt.Fprintf(p.out, "Body line %d: ", i)
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			break
		}
		body = append(body, "- "+line)
	}

	if len(body) == 0 {
		return title, nil
	}
	return title + "\n\n" + strings.Join(body, "\n"), nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
