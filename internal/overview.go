package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	overviewTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10")).
				MarginBottom(1)
	overviewLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("11"))
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Overview summarizes what is about to happen, shown before the confirmation
// prompt.
type Overview struct {
	Message      string
	Push         bool
	Remote       string
	CIEnabled    bool
	HasWorkflows bool
}

func (o Overview) Render() string {
	var b strings.Builder

	b.WriteString(overviewTitleStyle.Render("Operation overview"))
	b.WriteString("\n")

	lines := strings.Split(o.Message, "\n")
	fmt.Fprintf(&b, "%s %s\n", overviewLabelStyle.Render("Title:"), lines[0])
	if len(lines) > 1 {
		b.WriteString(overviewLabelStyle.Render("Body:"))
		b.WriteString("\n")
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) == "" {
				continue
			}
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	if o.Push {
		fmt.Fprintf(&b, "%s %s\n", overviewLabelStyle.Render("Push to remote:"), o.Remote)
		switch {
		case !o.HasWorkflows:
			fmt.Fprintf(&b, "%s not applicable, no workflow configuration\n", overviewLabelStyle.Render("CI build:"))
		case o.CIEnabled:
			fmt.Fprintf(&b, "%s %s\n", overviewLabelStyle.Render("CI build:"), enabledStyle.Render("enabled"))
		default:
			fmt.Fprintf(&b, "%s %s\n", overviewLabelStyle.Render("CI build:"), disabledStyle.Render("disabled"))
		}
	} else {
		fmt.Fprintf(&b, "%s %s\n", overviewLabelStyle.Render("Push:"), disabledStyle.Render("local commit only"))
	}

	return b.String()
}
