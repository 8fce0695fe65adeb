package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.Color
		wantDim  bool
	}{
		{name: "created returns green", status: StatusCreated, wantFG: colorGreen},
		{name: "skipped returns yellow", status: StatusSkipped, wantFG: colorYellow},
		{name: "planned returns blue", status: StatusPlanned, wantFG: colorBlue},
		{name: "rolled back returns faint", status: StatusRolledBack, wantDim: true},
		{name: "failed returns bold red", status: StatusFailed, wantBold: true, wantFG: colorBoldRed},
		{name: "unknown returns default unstyled", status: "unknown-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := statusStyle(tt.status)
			if tt.wantBold {
				assert.True(t, style.GetBold(), "expected bold")
			}
			if tt.wantFG != "" {
				assert.Equal(t, tt.wantFG, style.GetForeground(), "foreground color mismatch")
			}
			if tt.wantDim {
				assert.True(t, style.GetFaint(), "expected faint")
			}
		})
	}
}

func TestFormatEntryLine(t *testing.T) {
	tests := []struct {
		name       string
		isDir      bool
		path       string
		status     string
		wantPrefix string
		wantPath   string
	}{
		{
			name:       "file",
			path:       "src/main.go",
			status:     StatusCreated,
			wantPrefix: "f:",
			wantPath:   "src/main.go",
		},
		{
			name:       "directory gets trailing slash",
			isDir:      true,
			path:       "src",
			status:     StatusSkipped,
			wantPrefix: "d:",
			wantPath:   "src/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stripped := stripAnsi(FormatEntryLine(tt.isDir, tt.path, tt.status))

			assert.True(t, strings.HasPrefix(stripped, tt.wantPrefix+tt.wantPath), stripped)
			assert.True(t, strings.HasSuffix(stripped, tt.status), stripped)
		})
	}

	t.Run("alignment consistency", func(t *testing.T) {
		line1 := stripAnsi(FormatEntryLine(false, "a.txt", StatusCreated))
		line2 := stripAnsi(FormatEntryLine(false, "deeper/path/file.txt", StatusCreated))

		assert.Equal(t, strings.Index(line1, StatusCreated), strings.Index(line2, StatusCreated),
			"status words should align to same column")
	})

	t.Run("long path keeps separation", func(t *testing.T) {
		long := strings.Repeat("x", 80)
		stripped := stripAnsi(FormatEntryLine(false, long, StatusCreated))
		assert.Contains(t, stripped, long+"  "+StatusCreated)
	})
}

func TestFormatCheckmark(t *testing.T) {
	result := FormatCheckmark("Workspace created")
	assert.Contains(t, result, "✔", "should contain checkmark")
	assert.Contains(t, result, "Workspace created", "should contain message")
}

// stripAnsi removes ANSI escape sequences for content assertions.
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if s[i] == 'm' {
				inEscape = false
			}
			continue
		}
		result.WriteByte(s[i])
	}
	return result.String()
}
