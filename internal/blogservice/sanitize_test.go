package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMarkdown(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no script tag",
			input: "Hello, World!",
			want:  "Hello, World!",
		},
		{
			name:  "script tag",
			input: "<script>alert('Hello, World!');</script>",
			want:  "",
		},
		{
			name:  "multiple script tags",
			input: "Here is some text.\n<script>alert('Hello, world!');</script>\nMore text.\n<SCRIPT SRC=\"evil.js\"></SCRIPT>",
			want:  "Here is some text.\n\nMore text.\n",
		},
		{
			name:  "multiline script",
			input: "a<script>\nvar x = 1;\n</script>b",
			want:  "ab",
		},
		{
			name:  "iframe",
			input: "# Title\n<iframe src=\"https://evil.example\"></iframe>",
			want:  "# Title\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output := sanitizeMarkdown(tc.input)
			assert.Equal(t, tc.want, output)
		})
	}
}
