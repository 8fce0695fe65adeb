// Package structure turns an AI-described project layout into a
// materialization plan.
package structure

import (
	"bytes"
	"encoding/json"
	"fmt"

	oerrors "github.com/nscaffold/n/internal/errors"
	"github.com/nscaffold/n/internal/fspath"
	"github.com/nscaffold/n/internal/plan"
)

// ProjectStructure is a project layout produced by the AI provider.
// Content is final; no variable expansion happens.
type ProjectStructure struct {
	Name    string     `json:"name"`
	Folders []string   `json:"folders"`
	Files   []FileSpec `json:"files"`
}

// FileSpec is one file of a ProjectStructure.
type FileSpec struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Normalize converts s into a plan: one CreateDir per folder in the given
// order, then one CreateFile per file spec in the given order. Every path is
// validated; the first invalid one fails the whole conversion.
func Normalize(s *ProjectStructure) (*plan.Plan, error) {
	if s == nil {
		return nil, oerrors.NewProviderError("empty project structure", nil, "", nil)
	}

	p := plan.New("ai:" + s.Name)

	for i, folder := range s.Folders {
		clean, err := fspath.Clean(folder)
		if err != nil {
			return nil, fmt.Errorf("folders[%d]: %w", i, err)
		}
		p.Add(plan.CreateDir(clean))
	}

	for i, f := range s.Files {
		clean, err := fspath.Clean(f.Path)
		if err != nil {
			return nil, fmt.Errorf("files[%d]: %w", i, err)
		}
		p.Add(plan.CreateFile(clean, f.Content, false))
	}

	return p, nil
}

// wire mirrors ProjectStructure with pointers so absent fields can be told
// apart from empty ones.
type wire struct {
	Name    *string    `json:"name"`
	Folders []*string  `json:"folders"`
	Files   []wireFile `json:"files"`
}

type wireFile struct {
	Path    *string `json:"path"`
	Content *string `json:"content"`
}

// Decode validates provider JSON field by field. Mistyped fields are rejected,
// never coerced. The name is required; a structure must describe at least
// one folder or file.
func Decode(data []byte) (*ProjectStructure, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, oerrors.NewProviderError("empty project structure", nil, "", nil)
	}

	var w wire
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&w); err != nil {
		return nil, oerrors.NewProviderError("invalid project structure", nil, "The provider must reply with a single JSON object.", err)
	}
	if dec.More() {
		return nil, oerrors.NewProviderError("invalid project structure", nil, "unexpected data after the JSON object", nil)
	}

	if w.Name == nil {
		return nil, oerrors.NewProviderError(`project structure is missing "name"`, nil, "", nil)
	}
	if len(w.Folders) == 0 && len(w.Files) == 0 {
		return nil, oerrors.NewProviderError("project structure has no folders or files", nil, "", nil)
	}

	s := &ProjectStructure{
		Name:    *w.Name,
		Folders: make([]string, 0, len(w.Folders)),
		Files:   make([]FileSpec, 0, len(w.Files)),
	}

	for i, folder := range w.Folders {
		if folder == nil {
			return nil, oerrors.NewProviderError(fmt.Sprintf("folders[%d] is null", i), nil, "", nil)
		}
		s.Folders = append(s.Folders, *folder)
	}

	for i, f := range w.Files {
		if f.Path == nil {
			return nil, oerrors.NewProviderError(fmt.Sprintf(`files[%d] is missing "path"`, i), nil, "", nil)
		}
		if f.Content == nil {
			return nil, oerrors.NewProviderError(fmt.Sprintf(`files[%d] is missing "content"`, i), map[string]string{"path": *f.Path}, "", nil)
		}
		s.Files = append(s.Files, FileSpec{Path: *f.Path, Content: *f.Content})
	}

	return s, nil
}
