package templates

import (
	"fmt"
	"strings"

	"github.com/nscaffold/n/internal/fspath"
	"github.com/nscaffold/n/internal/plan"
)

const (
	tokenOpen  = "{{"
	tokenClose = "}}"
)

// tokenError describes a malformed token at a byte offset.
type tokenError struct {
	offset int
	reason string
}

// expand replaces every {{name}} token in s with its value from vars.
// Values are inserted literally and never re-scanned. When a name is not
// bound, expand returns it as missing.
func expand(s string, vars Variables) (out, missing string, terr *tokenError) {
	var b strings.Builder
	b.Grow(len(s))

	pos := 0
	for {
		i := strings.Index(s[pos:], tokenOpen)
		if i < 0 {
			b.WriteString(s[pos:])
			return b.String(), "", nil
		}
		start := pos + i
		b.WriteString(s[pos:start])

		bodyStart := start + len(tokenOpen)
		j := strings.Index(s[bodyStart:], tokenClose)
		if j < 0 {
			return "", "", &tokenError{offset: start, reason: "unterminated " + tokenOpen}
		}

		name := strings.TrimSpace(s[bodyStart : bodyStart+j])
		if !IsValidVariableName(name) {
			return "", "", &tokenError{offset: start, reason: fmt.Sprintf("invalid variable name %q", name)}
		}

		val, ok := vars.Lookup(name)
		if !ok {
			return "", name, nil
		}
		b.WriteString(val)
		pos = bodyStart + j + len(tokenClose)
	}
}

// Tokens returns the distinct variable names referenced by t, in order of
// first appearance. Malformed tokens are skipped.
func Tokens(t Template) []string {
	seen := make(map[string]bool)
	var names []string
	collect := func(s string) {
		for {
			i := strings.Index(s, tokenOpen)
			if i < 0 {
				return
			}
			s = s[i+len(tokenOpen):]
			j := strings.Index(s, tokenClose)
			if j < 0 {
				return
			}
			name := strings.TrimSpace(s[:j])
			if IsValidVariableName(name) && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			s = s[j+len(tokenClose):]
		}
	}
	for _, f := range t.Files {
		collect(f.Path)
		collect(f.Content)
	}
	return names
}

// Render expands t with overrides applied on top of its default variables and
// returns one CreateFile entry per template file, in template order. Rendering
// is all-or-nothing: on error no plan is returned.
func Render(t Template, overrides Variables) (*plan.Plan, error) {
	vars := t.Variables.Merge(overrides)
	p := plan.New("template:"+t.Name)
	p.Entries = make([]plan.Entry, 0, len(t.Files))

	for i, f := range t.Files {
		path, err := renderField(t.Name, i, "path", f.Path, vars)
		if err != nil {
			return nil, err
		}
		content, err := renderField(t.Name, i, "content", f.Content, vars)
		if err != nil {
			return nil, err
		}

		cleaned, err := fspath.Clean(path)
		if err != nil {
			return nil, fmt.Errorf("template %q files[%d]: %w", t.Name, i, err)
		}

		p.Add(plan.CreateFile(cleaned, content, f.Executable))
	}

	return p, nil
}

func renderField(template string, index int, field, s string, vars Variables) (string, error) {
	out, missing, terr := expand(s, vars)
	if terr != nil {
		return "", &MalformedError{
			Location: fmt.Sprintf("%s/files[%d].%s", template, index, field),
			Reason:   fmt.Sprintf("%s at offset %d", terr.reason, terr.offset),
		}
	}
	if missing != "" {
		return "", &UnresolvedVariableError{
			Template:  template,
			Name:      missing,
			FileIndex: index,
			Field:     field,
		}
	}
	return out, nil
}
