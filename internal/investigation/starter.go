package investigation

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cysoc/cysoc/internal/terminal"
)

// Options configures an interactive start.
type Options struct {
	PlaybooksDir      string
	InvestigationsDir string
	// PlaybookIndex is the 1-based playbook number; 0 asks interactively.
	PlaybookIndex int
	// CaseRef is the raw case reference; nil asks interactively.
	CaseRef *string
	DryRun  bool
}

// Starter asks the operator which playbook and case to use and creates the
// investigation.
type Starter struct {
	prompter *terminal.Prompter
	out      io.Writer
	now      func() time.Time
}

// NewStarter creates a Starter on prompter, reporting progress to out.
func NewStarter(prompter *terminal.Prompter, out io.Writer) *Starter {
	return &Starter{prompter: prompter, out: out, now: time.Now}
}

// Run lists the playbooks, resolves the selection and the case reference and
// creates the investigation.
func (s *Starter) Run(ctx context.Context, opts Options) (*Result, error) {
	playbooks, err := ListPlaybooks(opts.PlaybooksDir)
	if err != nil {
		return nil, err
	}

	playbook, err := s.selectPlaybook(playbooks, opts.PlaybookIndex)
	if err != nil {
		return nil, err
	}

	caseRef, err := s.caseRef(opts.CaseRef)
	if err != nil {
		return nil, err
	}

	res, err := Create(ctx, Request{
		InvestigationsDir: opts.InvestigationsDir,
		Playbook:          playbook,
		CaseRef:           caseRef,
		Now:               s.now(),
		DryRun:            opts.DryRun,
	})
	if err != nil {
		return nil, err
	}

	if res.DryRun {
		fmt.Fprintf(s.out, "Dry run: would create %s\n", res.Notebook)
	} else {
		fmt.Fprintf(s.out, "Created %s\n", res.Notebook)
	}
	return res, nil
}

func (s *Starter) selectPlaybook(playbooks []Playbook, index int) (Playbook, error) {
	if index != 0 {
		if index < 1 || index > len(playbooks) {
			return Playbook{}, fmt.Errorf("playbook %d out of range 1-%d", index, len(playbooks))
		}
		return playbooks[index-1], nil
	}

	options := make([]string, len(playbooks))
	for i, p := range playbooks {
		options[i] = p.Path
	}
	i, err := s.prompter.PromptChoice("SELECT>", "Available Jupyter notebooks:", options)
	if err != nil {
		return Playbook{}, err
	}
	return playbooks[i], nil
}

func (s *Starter) caseRef(given *string) (string, error) {
	if given != nil {
		return NormalizeCaseRef(*given)
	}

	fmt.Fprintf(s.out, "%s Enter a case ID reference.\n", terminal.Label("ID ref>"))
	fmt.Fprintf(s.out, "%s %s\n", terminal.Label("ID ref>"), terminal.Hint("Press Enter to leave the reference empty for now."))
	return s.prompter.PromptLine("ID ref>", "Enter case ID: ", NormalizeCaseRef)
}
