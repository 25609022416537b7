package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCustomShortcut(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"host only", "f:facebook.com", true},
		{"host and path", "gh:github.com/bnema/", true},
		{"host with port", "dev:localhost:8080", true},
		{"ip address", "r:192.168.1.1", true},
		{"missing colon", "facebook.com", false},
		{"token starts with digit", "1f:facebook.com", false},
		{"scheme in destination", "f:https://facebook.com", false},
		{"scheme with path", "f:http://facebook.com/groups", false},
		{"bad host label", "f:-bad-.com", false},
		{"whitespace in path", "gh:github.com/a b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCustomShortcut(tt.input)
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.NotEmpty(t, errs)
			}
		})
	}
}

func TestValidateShortcutToken(t *testing.T) {
	assert.Empty(t, ValidateShortcutToken("yt"))
	assert.Equal(t, []string{"shortcut token cannot be empty"}, ValidateShortcutToken("  "))
	assert.NotEmpty(t, ValidateShortcutToken("averyveryverylongtoken1"))
}
