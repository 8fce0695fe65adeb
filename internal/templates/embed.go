package templates

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed builtin/*.json
var builtinFS embed.FS

const builtinDir = "builtin"

// builtinNames returns the names of the embedded templates, sorted.
func builtinNames() []string {
	entries, err := fs.ReadDir(builtinFS, builtinDir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	slices.Sort(names)
	return names
}

// IsBuiltin reports whether name is an embedded template.
func IsBuiltin(name string) bool {
	return slices.Contains(builtinNames(), name)
}

// loadBuiltin loads an embedded template. ok is false when none exists.
func loadBuiltin(name string) (t *Template, ok bool, err error) {
	location := path.Join(builtinDir, name+".json")
	data, err := fs.ReadFile(builtinFS, location)
	if err != nil {
		return nil, false, nil
	}

	t, err = Parse(location, data)
	if err != nil {
		return nil, true, err
	}
	return t, true, nil
}
