package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFilename(t *testing.T) {
	valid := []string{"essay.txt", "report.pdf", "notes (final).docx"}
	for _, name := range valid {
		assert.NoError(t, ValidateFilename(name), "name=%q", name)
	}

	invalid := []string{
		"",
		"../../etc/passwd",
		"dir/file.txt",
		`dir\file.txt`,
		"file..txt",
		strings.Repeat("a", 256),
	}
	for _, name := range invalid {
		assert.Error(t, ValidateFilename(name), "name=%q", name)
	}
}

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"null\x00byte", "nullbyte"},
		{"bell\x07char", "bellchar"},
		{"tabs\tand\nnewlines", "tabs\tand\nnewlines"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeString(tc.in), "in=%q", tc.in)
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 20, ValidateLimit(-5))
	assert.Equal(t, 1, ValidateLimit(1))
	assert.Equal(t, 50, ValidateLimit(50))
	assert.Equal(t, 100, ValidateLimit(100))
	assert.Equal(t, 100, ValidateLimit(1000))
}
