// Package materialize writes a plan to the filesystem as one logical
// operation: everything is checked before the first write, entries are applied
// in order, and a failure removes whatever this call created.
package materialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	oerrors "github.com/nscaffold/n/internal/errors"
	"github.com/nscaffold/n/internal/fspath"
	"github.com/nscaffold/n/internal/output"
	"github.com/nscaffold/n/internal/plan"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
	execPerm os.FileMode = 0o755
)

// Action is what the apply pass will do for one entry.
type Action int

const (
	// ActionCreate creates the entry.
	ActionCreate Action = iota

	// ActionSkip leaves an existing file alone.
	ActionSkip

	// ActionExists means the directory is already there.
	ActionExists
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return output.StatusCreated
	case ActionSkip:
		return output.StatusSkipped
	case ActionExists:
		return output.StatusExists
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Step is one entry together with its resolved target.
type Step struct {
	Entry  plan.Entry
	Target string
	Action Action
}

// Result lists what Apply did. Paths are absolute, in creation order.
type Result struct {
	Root    string
	Steps   []Step
	Created []string
	Skipped []string
}

// Materializer applies plans. It is the only component that writes
// scaffolding output to disk.
type Materializer struct {
	fs afero.Fs
}

// New returns a materializer writing to fsys.
func New(fsys afero.Fs) *Materializer {
	return &Materializer{fs: fsys}
}

// Preview runs the pre-flight pass only and reports what Apply would do.
func (m *Materializer) Preview(p *plan.Plan, root string, policy Policy) ([]Step, error) {
	_, steps, err := m.preflight(p, root, policy)
	return steps, err
}

// Apply materializes p under root. Nothing is written if any entry fails the
// pre-flight check. If an entry fails while applying, every path this call
// created is removed in reverse order before the error is returned.
func (m *Materializer) Apply(ctx context.Context, p *plan.Plan, root string, policy Policy) (*Result, error) {
	absRoot, steps, err := m.preflight(p, root, policy)
	if err != nil {
		return nil, err
	}

	tx := &applyTx{fs: m.fs}
	res := &Result{Root: absRoot, Steps: steps}

	if err := tx.ensureDir(absRoot); err != nil {
		return nil, tx.fail(plan.CreateDir("."), err)
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, tx.fail(step.Entry, err)
		}

		switch step.Action {
		case ActionSkip:
			output.Debug("skipping existing file", "path", step.Entry.Path)
			res.Skipped = append(res.Skipped, step.Target)
			continue
		case ActionExists:
			continue
		}

		var err error
		if step.Entry.Kind == plan.KindDir {
			err = tx.ensureDir(step.Target)
		} else {
			err = tx.writeFile(step)
		}
		if err != nil {
			return nil, tx.fail(step.Entry, err)
		}
	}

	res.Created = tx.created
	output.Debug("materialized plan", "source", p.Source, "root", absRoot,
		"created", len(res.Created), "skipped", len(res.Skipped))
	return res, nil
}

type nodeKind int

const (
	absent nodeKind = iota
	isDir
	isFile
)

func (k nodeKind) String() string {
	if k == isDir {
		return "directory"
	}
	return "file"
}

// preflight resolves every entry and checks it against the filesystem and
// against earlier entries of the same plan.
func (m *Materializer) preflight(p *plan.Plan, root string, policy Policy) (string, []Step, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", nil, fmt.Errorf("resolving root %s: %w", root, err)
	}

	// planned records what earlier entries will leave at a path.
	planned := make(map[string]nodeKind)
	lookup := func(path string) (nodeKind, error) {
		if k, ok := planned[path]; ok {
			return k, nil
		}
		info, err := m.fs.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return absent, nil
		case err != nil:
			return absent, oerrors.WrapIO(err, "stat", path)
		case info.IsDir():
			return isDir, nil
		default:
			return isFile, nil
		}
	}
	relOf := func(path string) string {
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return path
		}
		return rel
	}

	if k, err := lookup(absRoot); err != nil {
		return "", nil, err
	} else if k == isFile {
		return "", nil, &ConflictKindError{Path: absRoot, Want: plan.KindDir, Found: k.String()}
	}

	steps := make([]Step, 0, p.Len())
	for _, e := range p.Entries {
		target, err := fspath.Resolve(absRoot, e.Path)
		if err != nil {
			return "", nil, err
		}

		for _, dir := range fspath.Ancestors(absRoot, target) {
			k, err := lookup(dir)
			if err != nil {
				return "", nil, err
			}
			if k == isFile {
				return "", nil, &ConflictKindError{Path: relOf(dir), Want: plan.KindDir, Found: k.String()}
			}
			planned[dir] = isDir
		}

		k, err := lookup(target)
		if err != nil {
			return "", nil, err
		}

		step := Step{Entry: e, Target: target, Action: ActionCreate}
		switch e.Kind {
		case plan.KindDir:
			if k == isFile {
				return "", nil, &ConflictKindError{Path: e.Path, Want: plan.KindDir, Found: k.String()}
			}
			if k == isDir {
				step.Action = ActionExists
			}
			planned[target] = isDir
		case plan.KindFile:
			if k == isDir {
				return "", nil, &ConflictKindError{Path: e.Path, Want: plan.KindFile, Found: k.String()}
			}
			if k == isFile {
				if policy == FailOnConflict {
					return "", nil, &FileExistsError{Path: e.Path, Target: target}
				}
				step.Action = ActionSkip
			}
			planned[target] = isFile
		default:
			return "", nil, fmt.Errorf("entry %q: unknown kind %s", e.Path, e.Kind)
		}
		steps = append(steps, step)
	}

	return absRoot, steps, nil
}

// applyTx tracks what one Apply call created so it can be undone.
type applyTx struct {
	fs      afero.Fs
	created []string
}

// ensureDir creates dir and its missing ancestors, recording each one.
func (tx *applyTx) ensureDir(dir string) error {
	var missing []string
	for p := dir; ; p = filepath.Dir(p) {
		info, err := tx.fs.Stat(p)
		if err == nil {
			if !info.IsDir() {
				return &ConflictKindError{Path: p, Want: plan.KindDir, Found: isFile.String()}
			}
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return oerrors.WrapIO(err, "stat", p)
		}
		missing = append(missing, p)
		if parent := filepath.Dir(p); parent == p {
			break
		}
	}

	for i := len(missing) - 1; i >= 0; i-- {
		if err := tx.fs.Mkdir(missing[i], dirPerm); err != nil {
			if info, statErr := tx.fs.Stat(missing[i]); errors.Is(err, fs.ErrExist) && statErr == nil && info.IsDir() {
				// Created concurrently; not ours to roll back.
				continue
			}
			return oerrors.WrapIO(err, "mkdir", missing[i])
		}
		tx.created = append(tx.created, missing[i])
		output.Debug("created directory", "path", missing[i])
	}
	return nil
}

func (tx *applyTx) writeFile(step Step) error {
	if err := tx.ensureDir(filepath.Dir(step.Target)); err != nil {
		return err
	}

	f, err := tx.fs.OpenFile(step.Target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			// Something created the file after pre-flight.
			return &FileExistsError{Path: step.Entry.Path, Target: step.Target}
		}
		return oerrors.WrapIO(err, "create", step.Target)
	}
	tx.created = append(tx.created, step.Target)

	if _, err := f.WriteString(step.Entry.Content); err != nil {
		_ = f.Close()
		return oerrors.WrapIO(err, "write", step.Target)
	}
	if err := f.Close(); err != nil {
		return oerrors.WrapIO(err, "close", step.Target)
	}

	if step.Entry.Executable {
		if err := tx.fs.Chmod(step.Target, execPerm); err != nil {
			return oerrors.WrapIO(err, "chmod", step.Target)
		}
	}

	output.Debug("created file", "path", step.Target, "bytes", len(step.Entry.Content), "executable", step.Entry.Executable)
	return nil
}

// fail undoes the transaction and wraps cause.
func (tx *applyTx) fail(entry plan.Entry, cause error) error {
	output.Debug("rolling back", "entries", len(tx.created), "cause", cause)
	return &ApplyError{Entry: entry, Cause: cause, Rollback: tx.rollback()}
}

// rollback removes created paths in reverse creation order. Paths already
// gone are not an error.
func (tx *applyTx) rollback() error {
	var errs []error
	for i := len(tx.created) - 1; i >= 0; i-- {
		path := tx.created[i]
		if err := tx.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", path, err))
		}
	}
	tx.created = nil
	return errors.Join(errs...)
}
