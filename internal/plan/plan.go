// Package plan defines the materialization plan shared by the template
// renderer, the structure normalizer and the materializer.
package plan

import (
	"fmt"
	"path/filepath"

	"github.com/nscaffold/n/internal/fspath"
)

// Kind is the kind of a plan entry.
type Kind int

const (
	// KindDir creates a directory and its missing ancestors.
	KindDir Kind = iota + 1

	// KindFile creates a file with content, creating missing ancestors.
	KindFile
)

// String returns the entry kind as shown to users.
func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entry is one CreateDir or CreateFile instruction.
// Path is relative to the destination root.
type Entry struct {
	Kind       Kind
	Path       string
	Content    string
	Executable bool
}

// CreateDir returns a directory entry.
func CreateDir(path string) Entry {
	return Entry{Kind: KindDir, Path: path}
}

// CreateFile returns a file entry.
func CreateFile(path, content string, executable bool) Entry {
	return Entry{Kind: KindFile, Path: path, Content: content, Executable: executable}
}

// String renders the entry like CreateFile("a.txt", 5 bytes, exec).
func (e Entry) String() string {
	if e.Kind == KindDir {
		return fmt.Sprintf("CreateDir(%q)", e.Path)
	}
	return fmt.Sprintf("CreateFile(%q, %d bytes, executable=%t)", e.Path, len(e.Content), e.Executable)
}

// Plan is an ordered list of entries. Order is creation order.
type Plan struct {
	// Source describes where the plan came from, e.g. "template:go" or "provider:openai".
	Source string

	Entries []Entry
}

// New returns a plan for the given source.
func New(source string, entries ...Entry) *Plan {
	return &Plan{Source: source, Entries: entries}
}

// Add appends entries to the plan.
func (p *Plan) Add(entries ...Entry) {
	p.Entries = append(p.Entries, entries...)
}

// Len returns the number of entries.
func (p *Plan) Len() int {
	return len(p.Entries)
}

// Files returns the paths of all file entries in order.
func (p *Plan) Files() []string {
	var files []string
	for _, e := range p.Entries {
		if e.Kind == KindFile {
			files = append(files, e.Path)
		}
	}
	return files
}

// Under returns a copy of the plan with every entry moved below dir, preceded
// by a CreateDir entry for dir itself.
func (p *Plan) Under(dir string) (*Plan, error) {
	cleaned, err := fspath.Clean(dir)
	if err != nil {
		return nil, err
	}

	out := &Plan{Source: p.Source, Entries: make([]Entry, 0, len(p.Entries)+1)}
	out.Entries = append(out.Entries, CreateDir(cleaned))
	for _, e := range p.Entries {
		e.Path = filepath.Join(cleaned, e.Path)
		out.Entries = append(out.Entries, e)
	}
	return out, nil
}
