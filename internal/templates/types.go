// Package templates loads template definitions and renders them into
// materialization plans.
package templates

import (
	"maps"
	"slices"

	"github.com/iancoleman/strcase"
)

// Template is a named, ordered set of files with default variable values.
type Template struct {
	// Name is the template identifier.
	Name string

	// Description is informational only.
	Description string

	// Files are rendered and created in this order.
	Files []TemplateFile

	// Variables maps variable names to default values.
	Variables Variables

	// Source is the definition file the template was loaded from.
	Source string
}

// TemplateFile is one file of a template. Path and Content may contain tokens.
type TemplateFile struct {
	Path       string
	Content    string
	Executable bool
}

// Variables maps variable names to values. Recognized names are exactly the
// keys present; there is no implicit fallback.
type Variables map[string]string

// Merge returns a new mapping with overrides applied on top of v.
func (v Variables) Merge(overrides Variables) Variables {
	out := make(Variables, len(v)+len(overrides))
	maps.Copy(out, v)
	maps.Copy(out, overrides)
	return out
}

// Lookup returns the value bound to name.
func (v Variables) Lookup(name string) (string, bool) {
	val, ok := v[name]
	return val, ok
}

// Names returns the variable names in sorted order.
func (v Variables) Names() []string {
	return slices.Sorted(maps.Keys(v))
}

// BuiltinVariables returns the variables every workspace render receives:
// the workspace name and its case variants.
func BuiltinVariables(name string) Variables {
	return Variables{
		"name":        name,
		"name_snake":  strcase.ToSnake(name),
		"name_kebab":  strcase.ToKebab(name),
		"name_camel":  strcase.ToLowerCamel(name),
		"name_pascal": strcase.ToCamel(name),
	}
}
