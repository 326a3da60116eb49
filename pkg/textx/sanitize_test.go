package textx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello\nworld\t!", SanitizeText("he\x00llo\nwo\x7frld\t!"))
	assert.Equal(t, "", SanitizeText(" \x07 "))
}

func TestSanitizeLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Thor\x07 ", "Thor"},
		{"Golden\n  Retriever", "Golden Retriever"},
		{"a\t\tb", "a b"},
		{"\r\n", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeLine(tt.in), "input %q", tt.in)
	}
}

func TestSanitizeList(t *testing.T) {
	got := SanitizeList([]string{" Calm", "", "Calm", "Brave\n", "\x00"})
	assert.Equal(t, []string{"Calm", "Brave"}, got)
	assert.NotNil(t, SanitizeList(nil))
}
