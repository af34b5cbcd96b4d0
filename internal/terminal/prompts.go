package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// Label renders a prompt label such as "SELECT>".
func Label(s string) string {
	return labelStyle.Render(s)
}

// Hint renders secondary help text.
func Hint(s string) string {
	return hintStyle.Render(s)
}

// PromptChoice displays a numbered menu under label and returns the selected
// index (0-based). It asks again until a listed number is entered.
func (p *Prompter) PromptChoice(label, question string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options to choose from")
	}

	fmt.Fprintf(p.Out, "%s %s\n", Label(label), question)
	for i, opt := range options {
		fmt.Fprintf(p.Out, "  %d. %s\n", i+1, opt)
	}

	for {
		fmt.Fprintf(p.Out, "%s Select by number: ", Label(label))
		input, err := p.readLine()
		if err != nil {
			return 0, fmt.Errorf("failed to read input: %w", err)
		}

		num, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || num < 1 || num > len(options) {
			fmt.Fprintf(p.Out, "%s Invalid input. Please enter a number between 1 and %d.\n", Label(label), len(options))
			continue
		}

		return num - 1, nil
	}
}

// PromptLine asks question until accept returns no error and returns the
// accepted value. The rejection message is shown before asking again.
func (p *Prompter) PromptLine(label, question string, accept func(string) (string, error)) (string, error) {
	for {
		fmt.Fprintf(p.Out, "%s %s", Label(label), question)
		input, err := p.readLine()
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		value, err := accept(input)
		if err != nil {
			fmt.Fprintf(p.Out, "%s %v\n", Label(label), err)
			continue
		}
		return value, nil
	}
}
