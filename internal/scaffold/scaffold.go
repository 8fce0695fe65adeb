// Package scaffold wires the template registry, the AI provider and the
// materializer together for each user-facing operation.
package scaffold

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	oerrors "github.com/nscaffold/n/internal/errors"
	"github.com/nscaffold/n/internal/fspath"
	"github.com/nscaffold/n/internal/materialize"
	"github.com/nscaffold/n/internal/output"
	"github.com/nscaffold/n/internal/plan"
	"github.com/nscaffold/n/internal/provider"
	"github.com/nscaffold/n/internal/structure"
	"github.com/nscaffold/n/internal/templates"
)

// Scaffolder runs scaffolding operations against one filesystem.
type Scaffolder struct {
	materializer *materialize.Materializer
	registry     *templates.Registry
}

// New returns a Scaffolder writing to fsys and reading templates from registry.
func New(fsys afero.Fs, registry *templates.Registry) *Scaffolder {
	return &Scaffolder{
		materializer: materialize.New(fsys),
		registry:     registry,
	}
}

// FileRequest describes "n <filename>".
type FileRequest struct {
	Name       string
	Executable bool
	Dir        string
	Policy     materialize.Policy
}

// WorkspaceRequest describes "n nw".
type WorkspaceRequest struct {
	Name string

	// Template is the template to render. Empty creates an empty directory.
	Template string

	// Vars override template defaults and built-in variables.
	Vars templates.Variables

	Dir    string
	Policy materialize.Policy
	DryRun bool
}

// PromptRequest describes "n nwc" and "n new".
type PromptRequest struct {
	Prompt string

	// Workspace wraps the structure in a directory named Name, or the
	// structure's own name when Name is empty.
	Workspace bool
	Name      string

	Dir    string
	Policy materialize.Policy
	DryRun bool
}

// Outcome reports what an operation did, or would do for a dry run.
type Outcome struct {
	// ID identifies the operation in log lines.
	ID string

	Source string

	// Root is the absolute destination directory.
	Root string

	// Target is the path the user asked for, relative to Root. Empty when the
	// plan was applied directly into Root.
	Target string

	DryRun  bool
	Steps   []materialize.Step
	Created []string
	Skipped []string
}

// CreateFile creates one empty file. Missing parent directories are created.
func (s *Scaffolder) CreateFile(ctx context.Context, req FileRequest) (*Outcome, error) {
	name, err := fspath.Clean(req.Name)
	if err != nil {
		return nil, err
	}
	p := plan.New("file:"+name, plan.CreateFile(name, "", req.Executable))
	return s.run(ctx, p, req.Dir, name, req.Policy, false)
}

// CreateWorkspace creates a directory named req.Name, populated from a
// template when one is given.
func (s *Scaffolder) CreateWorkspace(ctx context.Context, req WorkspaceRequest) (*Outcome, error) {
	name, err := fspath.Clean(req.Name)
	if err != nil {
		return nil, err
	}

	p := plan.New("workspace:" + name)
	if req.Template != "" {
		t, err := s.registry.Load(req.Template)
		if err != nil {
			return nil, err
		}
		vars := templates.BuiltinVariables(filepath.Base(name)).Merge(req.Vars)
		if p, err = templates.Render(*t, vars); err != nil {
			return nil, err
		}
	}

	p, err = p.Under(name)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, p, req.Dir, name, req.Policy, req.DryRun)
}

// CreateFromPrompt asks gen for a project structure and materializes it.
func (s *Scaffolder) CreateFromPrompt(ctx context.Context, gen provider.Generator, req PromptRequest) (*Outcome, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, oerrors.NewValidationError("prompt cannot be empty", "", "Describe the project, e.g. n new a go cli with a Makefile.", nil)
	}

	var ps *structure.ProjectStructure
	err := output.RunWithSpinner(ctx, "Asking the AI provider for a project layout...", func(ctx context.Context) error {
		var err error
		ps, err = gen.Generate(ctx, prompt)
		return err
	})
	if err != nil {
		return nil, err
	}

	p, err := structure.Normalize(ps)
	if err != nil {
		return nil, err
	}

	if !req.Workspace {
		return s.run(ctx, p, req.Dir, "", req.Policy, req.DryRun)
	}

	name := req.Name
	if name == "" {
		name = ps.Name
	}
	if p, err = p.Under(name); err != nil {
		return nil, fmt.Errorf("workspace name %q: %w", name, err)
	}
	return s.run(ctx, p, req.Dir, p.Entries[0].Path, req.Policy, req.DryRun)
}

func (s *Scaffolder) run(ctx context.Context, p *plan.Plan, dir, target string, policy materialize.Policy, dryRun bool) (*Outcome, error) {
	if dir == "" {
		dir = "."
	}

	out := &Outcome{
		ID:     uuid.NewString(),
		Source: p.Source,
		Target: target,
		DryRun: dryRun,
	}
	logger := operationLogger(out)
	logger.Debug("starting", "id", out.ID, "source", p.Source, "dir", dir, "entries", p.Len(), "on_conflict", policy)

	if dryRun {
		steps, err := s.materializer.Preview(p, dir, policy)
		if err != nil {
			logger.Debug("pre-flight failed", "id", out.ID, "error", err)
			return nil, err
		}
		root, err := filepath.Abs(dir)
		if err != nil {
			return nil, oerrors.WrapIO(err, "resolve", dir)
		}
		out.Root = root
		out.Steps = steps
		return out, nil
	}

	res, err := s.materializer.Apply(ctx, p, dir, policy)
	if err != nil {
		logger.Debug("apply failed", "id", out.ID, "error", err)
		return nil, err
	}

	out.Root = res.Root
	out.Steps = res.Steps
	out.Created = res.Created
	out.Skipped = res.Skipped
	logger.Info("done", "created", len(res.Created), "skipped", len(res.Skipped))
	return out, nil
}

func operationLogger(o *Outcome) *log.Logger {
	if o.Target != "" {
		return output.OperationLogger(o.Target)
	}
	return output.OperationLogger(o.Source)
}

// TreeEntries returns the plan entries relative to Root, annotated with what
// happened to each.
func (o *Outcome) TreeEntries() []output.TreeEntry {
	created := make(map[string]bool, len(o.Created))
	for _, p := range o.Created {
		created[p] = true
	}

	entries := make([]output.TreeEntry, 0, len(o.Steps))
	for _, step := range o.Steps {
		entries = append(entries, output.TreeEntry{
			Path:       filepath.ToSlash(step.Entry.Path),
			IsDir:      step.Entry.Kind == plan.KindDir,
			Annotation: o.status(step, created),
		})
	}
	return entries
}

func (o *Outcome) status(step materialize.Step, created map[string]bool) string {
	switch {
	case step.Action == materialize.ActionSkip:
		return output.StatusSkipped
	case step.Action == materialize.ActionExists:
		return output.StatusExists
	case o.DryRun:
		return output.StatusPlanned
	case created[step.Target]:
		return output.StatusCreated
	default:
		return ""
	}
}

// ParseVars parses repeated --var key=value flags.
func ParseVars(pairs []string) (templates.Variables, error) {
	vars := make(templates.Variables, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, oerrors.NewValidationError(fmt.Sprintf("invalid variable %q", pair), "--var", "Use --var key=value.", nil)
		}
		key = strings.TrimSpace(key)
		if err := templates.ValidateVariableName(key); err != nil {
			return nil, oerrors.NewValidationError(err.Error(), "--var", "", nil)
		}
		vars[key] = value
	}
	return vars, nil
}
