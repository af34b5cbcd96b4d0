// Package investigation starts a new investigation from a notebook playbook:
// it lists the playbooks, names a dated folder after the case reference and
// the playbook's folder, and copies the playbook into it.
package investigation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/cysoc/cysoc/internal/constants"
	"github.com/cysoc/cysoc/internal/logging"
)

var (
	ErrPlaybooksDir     = errors.New("playbooks directory does not exist or is empty")
	ErrNoPlaybooks      = errors.New("no Jupyter notebooks found")
	ErrInvalidCaseRef   = errors.New("invalid case ID reference")
	ErrInvalidDirName   = errors.New("invalid investigation directory name")
	ErrInvestigationDir = errors.New("investigations directory does not exist")
	ErrExists           = errors.New("investigation directory already exists")
)

// IgnoredDirs are never descended into when looking for playbooks.
var IgnoredDirs = map[string]bool{
	".ipynb_checkpoints": true,
	"__pycache__":        true,
	".git":               true,
	".venv":              true,
	"venv":               true,
	"build":              true,
	"dist":               true,
	".cache":             true,
	"cache":              true,
	".vscode":            true,
	".idea":              true,
	".pytest_cache":      true,
	"node_modules":       true,
	".env":               true,
	"env":                true,
	"logs":               true,
	"tmp":                true,
	"temp":               true,
}

var (
	digitsRegex  = regexp.MustCompile(`^#?\d+$`)
	caseRefRegex = regexp.MustCompile(`^[a-zA-Z0-9 .\-_#()]{1,20}$`)
	dirNameRegex = regexp.MustCompile(`^[a-zA-Z0-9 .\-_#()]{1,75}$`)
)

// Playbook is a notebook template below the playbooks directory.
type Playbook struct {
	Path string
}

// Name is the notebook file name.
func (p Playbook) Name() string {
	return filepath.Base(p.Path)
}

// Folder is the name of the directory holding the notebook.
func (p Playbook) Folder() string {
	dir := filepath.Base(filepath.Dir(p.Path))
	if dir == "." || dir == string(filepath.Separator) {
		return ""
	}
	return dir
}

// ListPlaybooks walks dir for *.ipynb files, skipping IgnoredDirs, sorted by path.
// Symlinked notebooks and folders are followed.
func ListPlaybooks(dir string) ([]Playbook, error) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPlaybooksDir, dir)
	}

	logging.Debugf("fetching all Jupyter notebooks in %s", dir)

	var playbooks []Playbook
	if err := collectPlaybooks(dir, map[string]bool{}, &playbooks); err != nil {
		return nil, fmt.Errorf("failed to list playbooks: %w", err)
	}

	if len(playbooks) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPlaybooks, dir)
	}

	sort.Slice(playbooks, func(i, j int) bool { return playbooks[i].Path < playbooks[j].Path })
	logging.Debugf("found %d notebooks in %s", len(playbooks), dir)
	return playbooks, nil
}

// collectPlaybooks follows symlinked folders and notebooks. Each real
// directory is visited once so link cycles terminate.
func collectPlaybooks(dir string, seen map[string]bool, playbooks *[]Playbook) error {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if seen[real] {
		return nil
	}
	seen[real] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			logging.Debugf("skipping %s: %v", path, err)
			continue
		}
		switch {
		case info.IsDir():
			if IgnoredDirs[entry.Name()] {
				continue
			}
			if err := collectPlaybooks(path, seen, playbooks); err != nil {
				return err
			}
		case info.Mode().IsRegular() && filepath.Ext(path) == constants.NotebookExt:
			*playbooks = append(*playbooks, Playbook{Path: path})
		}
	}
	return nil
}

// NormalizeCaseRef turns user input into a case reference. Empty input means
// no reference. Numbers get a leading '#', other short references are
// wrapped as "#(ref)".
func NormalizeCaseRef(raw string) (string, error) {
	ref := strings.TrimSpace(raw)
	switch {
	case ref == "":
		return "", nil
	case digitsRegex.MatchString(ref):
		if !strings.HasPrefix(ref, "#") {
			ref = "#" + ref
		}
		return ref, nil
	case caseRefRegex.MatchString(ref):
		return "#(" + ref + ")", nil
	default:
		return "", fmt.Errorf("%w: use up to 20 letters, digits, spaces or . - _ # ( )", ErrInvalidCaseRef)
	}
}

// DirName builds "<time>[ <caseRef>] - <folder>". An empty folder is
// replaced by "New Investigation".
func DirName(now time.Time, caseRef, folder string) (string, error) {
	name := now.Format(constants.InvestigationTimeLayout)
	if caseRef != "" {
		name += " " + caseRef
	}
	if folder != "" {
		name += " - " + folder
	} else {
		name += " - " + constants.DefaultInvestigationLabel
	}

	if !dirNameRegex.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirName, name)
	}
	return name, nil
}

// Request describes an investigation to create.
type Request struct {
	InvestigationsDir string
	Playbook          Playbook
	CaseRef           string
	Now               time.Time
	DryRun            bool
}

// Result reports what Create did (or would do, for a dry run).
type Result struct {
	Dir      string
	Notebook string
	DryRun   bool
}

// Create makes the investigation directory and copies the playbook into it
// as inv_<name>. A dry run validates everything and touches nothing.
func Create(ctx context.Context, req Request) (*Result, error) {
	info, err := os.Stat(req.InvestigationsDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvestigationDir, req.InvestigationsDir)
	}

	name, err := DirName(req.Now, req.CaseRef, req.Playbook.Folder())
	if err != nil {
		return nil, err
	}
	logging.Infof("new directory name: %q", name)

	dir := filepath.Join(req.InvestigationsDir, name)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, dir)
	}

	res := &Result{
		Dir:      dir,
		Notebook: filepath.Join(dir, constants.InvestigationPrefix+req.Playbook.Name()),
		DryRun:   req.DryRun,
	}

	if req.DryRun {
		logging.Debugf("dry run: would create %s and copy %s to %s", dir, req.Playbook.Path, res.Notebook)
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.Mkdir(dir, constants.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	logging.Infof("created directory %s", dir)

	if err := copyFile(req.Playbook.Path, res.Notebook); err != nil {
		return nil, fmt.Errorf("failed to copy the notebook: %w", err)
	}
	logging.Infof("copied notebook to %s", res.Notebook)

	return res, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
