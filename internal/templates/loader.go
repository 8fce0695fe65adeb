package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"sigs.k8s.io/yaml"
)

// Supported definition file extensions, in lookup order.
var definitionExts = []string{".json", ".yaml", ".yml", ".toml"}

type definition struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Files       []fileDefinition  `json:"files"`
	Variables   map[string]string `json:"variables"`
}

type fileDefinition struct {
	Path       string `json:"path"`
	Content    string `json:"content"`
	Executable bool   `json:"executable"`
}

// Parse decodes a template definition. The format is chosen by the extension
// of location; unknown extensions are treated as JSON.
func Parse(location string, data []byte) (*Template, error) {
	raw, err := toJSON(location, data)
	if err != nil {
		return nil, &MalformedError{Location: location, Reason: "invalid syntax", Cause: err}
	}

	var def definition
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&def); err != nil {
		return nil, &MalformedError{Location: location, Reason: "invalid definition", Cause: err}
	}
	if dec.More() {
		return nil, &MalformedError{Location: location, Reason: "unexpected data after definition"}
	}

	if strings.TrimSpace(def.Name) == "" {
		return nil, &MalformedError{Location: location, Reason: `missing "name"`}
	}
	if def.Files == nil {
		return nil, &MalformedError{Location: location, Reason: `missing "files"`}
	}

	t := &Template{
		Name:        def.Name,
		Description: def.Description,
		Files:       make([]TemplateFile, 0, len(def.Files)),
		Variables:   make(Variables, len(def.Variables)),
		Source:      location,
	}

	for i, f := range def.Files {
		if f.Path == "" {
			return nil, &MalformedError{Location: location, Reason: fmt.Sprintf("files[%d]: missing \"path\"", i)}
		}
		t.Files = append(t.Files, TemplateFile{Path: f.Path, Content: f.Content, Executable: f.Executable})
	}

	for name, val := range def.Variables {
		if err := ValidateVariableName(name); err != nil {
			return nil, &MalformedError{Location: location, Reason: "invalid variables", Cause: err}
		}
		t.Variables[name] = val
	}

	return t, nil
}

// toJSON normalizes YAML and TOML definitions to JSON so every format goes
// through the same strict decoder.
func toJSON(location string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		return yaml.YAMLToJSON(data)
	case ".toml":
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return json.Marshal(doc)
	default:
		return data, nil
	}
}
