package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nscaffold/n/internal/config"
	"github.com/nscaffold/n/internal/output"
	"github.com/nscaffold/n/internal/templates"
)

// templateSummary is one row of "n templates list".
type templateSummary struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Files       int    `json:"files" yaml:"files"`
	Source      string `json:"source" yaml:"source"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

// templateDetail is the output of "n templates show".
type templateDetail struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Source      string            `json:"source" yaml:"source"`
	Variables   map[string]string `json:"variables" yaml:"variables"`
	Required    []string          `json:"required,omitempty" yaml:"required,omitempty"`
	Files       []templateFile    `json:"files" yaml:"files"`
}

type templateFile struct {
	Path       string `json:"path" yaml:"path"`
	Executable bool   `json:"executable,omitempty" yaml:"executable,omitempty"`
}

// NewTemplatesCmd creates the templates command group.
func NewTemplatesCmd(cfg *config.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template", "tpl"},
		Short:   "Inspect available templates",
		Long: `Inspect the templates usable with "n nw --template".

User templates live in the templates/ directory of the storage root
(storage_root in the config file, default ~/.local/share/n) as .json, .yaml,
.yml or .toml files and shadow built-in templates of the same name.`,
	}

	c.AddCommand(newTemplatesListCmd(cfg), newTemplatesShowCmd(cfg))
	return c
}

func newTemplatesListCmd(cfg *config.GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available templates",
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			format, err := parseOutputFlag(outputFlag)
			if err != nil {
				return err
			}

			reg := newRegistry(cfg)
			var rows []templateSummary
			for name := range reg.Names() {
				row := templateSummary{Name: name}
				t, err := reg.Load(name)
				if err != nil {
					output.Warn("cannot load template", "name", name, "error", err)
					row.Error = err.Error()
				} else {
					row.Description = t.Description
					row.Files = len(t.Files)
					row.Source = t.Source
				}
				rows = append(rows, row)
			}

			if format != output.FormatText {
				return writeStructured(c.OutOrStdout(), format, rows)
			}

			tbl := output.NewTable("NAME", "DESCRIPTION", "FILES", "SOURCE")
			for _, r := range rows {
				if r.Error != "" {
					tbl.MutedRow(r.Name, "(malformed, see log)", "-", "-")
					continue
				}
				tbl.Row(r.Name, r.Description, strconv.Itoa(r.Files), r.Source)
			}
			fmt.Fprintln(c.OutOrStdout(), tbl.String())
			fmt.Fprintln(c.OutOrStdout(), output.StyleDim.Render("User templates: "+reg.Dir()))
			return nil
		},
	}

	addOutputFlag(c, &outputFlag)
	return c
}

func newTemplatesShowCmd(cfg *config.GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a template's variables and files",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			format, err := parseOutputFlag(outputFlag)
			if err != nil {
				return err
			}

			t, err := newRegistry(cfg).Load(args[0])
			if err != nil {
				return err
			}
			detail := describeTemplate(t)

			if format != output.FormatText {
				return writeStructured(c.OutOrStdout(), format, detail)
			}

			w := c.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", output.StyleSummary.Render("Template"), output.StyleNoun.Render(detail.Name))
			if detail.Description != "" {
				fmt.Fprintf(w, "  %s\n", detail.Description)
			}
			fmt.Fprintf(w, "  %s\n\n", output.StyleDim.Render(detail.Source))

			vars := output.NewTable("VARIABLE", "DEFAULT")
			for _, name := range templates.Variables(detail.Variables).Names() {
				vars.Row(name, detail.Variables[name])
			}
			for _, name := range detail.Required {
				vars.Row(name, "(required, pass --var "+name+"=...)")
			}
			if vars.Len() > 0 {
				fmt.Fprintln(w, vars.String())
			}

			files := output.NewTable("FILE", "MODE")
			for _, f := range detail.Files {
				mode := "0644"
				if f.Executable {
					mode = "0755"
				}
				files.Row(f.Path, mode)
			}
			fmt.Fprintln(w, files.String())

			builtins := templates.BuiltinVariables("").Names()
			fmt.Fprintln(w, output.StyleDim.Render("Always available: "+strings.Join(builtins, ", ")))
			return nil
		},
	}

	addOutputFlag(c, &outputFlag)
	return c
}

// describeTemplate lists a template's defaults, the tokens it uses that no
// default or built-in variable binds, and its files.
func describeTemplate(t *templates.Template) templateDetail {
	d := templateDetail{
		Name:        t.Name,
		Description: t.Description,
		Source:      t.Source,
		Variables:   map[string]string{},
	}
	for name, value := range t.Variables {
		d.Variables[name] = value
	}

	builtins := templates.BuiltinVariables("")
	for _, name := range templates.Tokens(*t) {
		_, isDefault := t.Variables.Lookup(name)
		_, isBuiltin := builtins.Lookup(name)
		if !isDefault && !isBuiltin {
			d.Required = append(d.Required, name)
		}
	}
	slices.Sort(d.Required)

	for _, f := range t.Files {
		d.Files = append(d.Files, templateFile{Path: f.Path, Executable: f.Executable})
	}
	return d
}
