package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"short token kept", "abc", 6, "abc"},
		{"exact length kept", "abcdef", 6, "abcdef"},
		{"long token cut", "0123456789abcdef", 6, "012345..."},
		{"empty", "", 6, ""},
		{"zero limit", "secret", 0, "..."},
		{"negative limit", "secret", -1, "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateForLog(tt.in, tt.maxLen))
		})
	}
}
