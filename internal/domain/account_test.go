package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lower", "iris bank", "Iris Bank"},
		{"upper", "GRINGOTTS", "Gringotts"},
		{"mixed", "jOhN sMiTh", "John Smith"},
		{"multibyte initial", "édith piaf", "Édith Piaf"},
		{"extra spaces", "  jane   doe ", "Jane Doe"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleCase(tt.in))
		})
	}
}
