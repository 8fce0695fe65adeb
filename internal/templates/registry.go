package templates

import (
	"errors"
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/nscaffold/n/internal/errors"
	"github.com/nscaffold/n/internal/output"
)

// Registry looks up template definitions in a directory, falling back to the
// embedded built-in templates. User templates shadow built-ins of the same name.
type Registry struct {
	fs  afero.Fs
	dir string
}

// NewRegistry returns a registry reading definitions from dir on fsys.
func NewRegistry(fsys afero.Fs, dir string) *Registry {
	return &Registry{fs: fsys, dir: dir}
}

// Dir returns the user template directory.
func (r *Registry) Dir() string {
	return r.dir
}

// Names yields every template name in alphabetical order. The directory is
// scanned when iteration starts, so the sequence can be ranged over again
// to pick up changes.
func (r *Registry) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		user := r.userNames()
		builtin := builtinNames()

		i, j := 0, 0
		for i < len(user) || j < len(builtin) {
			var next string
			switch {
			case j >= len(builtin) || (i < len(user) && user[i] < builtin[j]):
				next = user[i]
				i++
			case i >= len(user) || builtin[j] < user[i]:
				next = builtin[j]
				j++
			default:
				next = user[i]
				i++
				j++
			}
			if !yield(next) {
				return
			}
		}
	}
}

// List returns all template names in alphabetical order.
func (r *Registry) List() []string {
	return slices.Collect(r.Names())
}

// userNames reads the template directory. A missing directory has no templates.
func (r *Registry) userNames() []string {
	if r.dir == "" {
		return nil
	}

	infos, err := afero.ReadDir(r.fs, r.dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			output.Debug("reading template directory", "dir", r.dir, "error", err)
		}
		return nil
	}

	var names []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		ext := filepath.Ext(info.Name())
		if !slices.Contains(definitionExts, strings.ToLower(ext)) {
			continue
		}
		name := strings.TrimSuffix(info.Name(), ext)
		if ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Load reads and parses the named template. It does not render anything.
func (r *Registry) Load(name string) (*Template, error) {
	if err := ValidateName(name); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), name, "Template names cannot contain path separators.", nil)
	}

	if r.dir != "" {
		for _, ext := range definitionExts {
			location := filepath.Join(r.dir, name+ext)
			data, err := afero.ReadFile(r.fs, location)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, oerrors.WrapIO(err, "reading template", location)
			}

			output.Debug("loading template", "name", name, "source", location)
			return Parse(location, data)
		}
	}

	t, ok, err := loadBuiltin(name)
	if ok {
		output.Debug("loading built-in template", "name", name)
		return t, err
	}

	return nil, &NotFoundError{Name: name, Searched: r.dir}
}
