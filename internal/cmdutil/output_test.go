package cmdutil

import (
	"bytes"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/nscaffold/n/internal/errors"
	"github.com/nscaffold/n/internal/materialize"
	"github.com/nscaffold/n/internal/plan"
	"github.com/nscaffold/n/internal/scaffold"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripAnsi(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func step(e plan.Entry, target string, action materialize.Action) materialize.Step {
	return materialize.Step{Entry: e, Target: target, Action: action}
}

func TestWriteOutcome_SingleFile(t *testing.T) {
	tests := []struct {
		name   string
		action materialize.Action
		dryRun bool
		want   string
	}{
		{name: "created", action: materialize.ActionCreate, want: "✔ Created notes.txt\n"},
		{name: "skipped", action: materialize.ActionSkip, want: "Skipped notes.txt (already exists)\n"},
		{name: "dry run", action: materialize.ActionCreate, dryRun: true, want: "Would create notes.txt\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &scaffold.Outcome{
				Root:    "/work",
				Target:  "notes.txt",
				DryRun:  tt.dryRun,
				Steps:   []materialize.Step{step(plan.CreateFile("notes.txt", "", false), "/work/notes.txt", tt.action)},
				Created: []string{"/work/notes.txt"},
			}
			var buf bytes.Buffer
			WriteOutcome(&buf, o)
			assert.Equal(t, tt.want, stripAnsi(buf.String()))
		})
	}
}

func TestWriteOutcome_Workspace(t *testing.T) {
	o := &scaffold.Outcome{
		Root:   "/work",
		Target: "proj",
		Steps: []materialize.Step{
			step(plan.CreateDir("proj"), "/work/proj", materialize.ActionExists),
			step(plan.CreateFile("proj/README.md", "", false), "/work/proj/README.md", materialize.ActionSkip),
			step(plan.CreateFile("proj/main.go", "", false), "/work/proj/main.go", materialize.ActionCreate),
		},
		Created: []string{"/work/proj/main.go"},
	}

	var buf bytes.Buffer
	WriteOutcome(&buf, o)
	out := stripAnsi(buf.String())

	assert.Contains(t, out, "✔ Created proj in /work")
	assert.Contains(t, out, "proj/")
	assert.Regexp(t, `README\.md\s+skipped`, out)
	assert.Regexp(t, `main\.go\s+created`, out)
	assert.Contains(t, out, "1 created, 1 skipped, 1 exists")
}

func TestWriteOutcome_DryRun(t *testing.T) {
	o := &scaffold.Outcome{
		Root:   "/work",
		Source: "ai:demo",
		DryRun: true,
		Steps: []materialize.Step{
			step(plan.CreateDir("src"), "/work/src", materialize.ActionCreate),
			step(plan.CreateFile("src/main.go", "", false), "/work/src/main.go", materialize.ActionCreate),
		},
	}

	var buf bytes.Buffer
	WriteOutcome(&buf, o)
	out := stripAnsi(buf.String())

	assert.Contains(t, out, "Would create ai:demo in /work (dry run, nothing written)")
	assert.Contains(t, out, "2 planned")
}

func TestFormatError(t *testing.T) {
	detail := oerrors.NewValidationError("bad name", "--var", "Use key=value.", nil)
	assert.Equal(t, "Error: validation failed\n  Location: --var\n\n  bad name\n\nHint: Use key=value.", FormatError(detail))

	assert.Equal(t, "Error: boom", FormatError(errors.New("boom")))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	err := &materialize.FileExistsError{Path: "notes.txt", Target: "/work/notes.txt"}

	exitErr := PrintError(&buf, err)
	require.NotNil(t, exitErr)
	assert.Equal(t, oerrors.ExitConflict, exitErr.Code)
	assert.True(t, exitErr.Printed)
	assert.Equal(t, "Error: file exists: notes.txt\n", buf.String())

	buf.Reset()
	again := PrintError(&buf, exitErr)
	assert.Same(t, exitErr, again)
	assert.Empty(t, buf.String(), "printed errors are not repeated")
}

func TestTargetFlags_Policy(t *testing.T) {
	f := &TargetFlags{}
	p, err := f.Policy(materialize.SkipExisting)
	require.NoError(t, err)
	assert.Equal(t, materialize.SkipExisting, p)

	f.OnConflict = "fail"
	p, err = f.Policy(materialize.SkipExisting)
	require.NoError(t, err)
	assert.Equal(t, materialize.FailOnConflict, p)

	f.OnConflict = "overwrite"
	_, err = f.Policy(materialize.SkipExisting)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}

func TestJoinPrompt(t *testing.T) {
	assert.Equal(t, "a go cli", JoinPrompt([]string{"a", "go", " cli "}))
	assert.Empty(t, JoinPrompt(nil))
}
