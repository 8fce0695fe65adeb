package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		want   string
		wantOK bool
	}{
		{
			name:   "bare object",
			reply:  `{"name":"a"}`,
			want:   `{"name":"a"}`,
			wantOK: true,
		},
		{
			name:   "fenced with language tag",
			reply:  "Sure!\n```json\n{\"name\":\"a\"}\n```\n",
			want:   `{"name":"a"}`,
			wantOK: true,
		},
		{
			name:   "fence without closing",
			reply:  "```\n{\"name\":\"a\"}",
			want:   `{"name":"a"}`,
			wantOK: true,
		},
		{
			name:   "prose around object",
			reply:  `The layout is {"name":"a","files":[{"path":"x","content":"{}"}]} as requested.`,
			want:   `{"name":"a","files":[{"path":"x","content":"{}"}]}`,
			wantOK: true,
		},
		{
			name:   "braces and quotes inside strings",
			reply:  `{"content":"func main() { fmt.Println(\"}\") }"} trailing {`,
			want:   `{"content":"func main() { fmt.Println(\"}\") }"}`,
			wantOK: true,
		},
		{
			name:   "fence without an object falls back to the whole reply",
			reply:  "```\nnothing here\n```\n{\"name\":\"b\"}",
			want:   `{"name":"b"}`,
			wantOK: true,
		},
		{
			name:  "no object",
			reply: "I can't do that.",
		},
		{
			name:  "unbalanced",
			reply: `{"name": "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSON(tt.reply)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
