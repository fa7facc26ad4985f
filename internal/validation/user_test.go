package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Minimum length", "abc123", false},
		{"Longer password", "correct horse battery staple", false},
		{"Too short", "abc12", true},
		{"Empty", "", true},
		{"Too long", strings.Repeat("a", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Simple", "wren", false},
		{"With digits and underscore", "wren_42", false},
		{"With hyphen", "wren-42", false},
		{"Too short", "ab", true},
		{"Too long", strings.Repeat("a", 31), true},
		{"Spaces", "wr en", true},
		{"Leading underscore", "_wren", true},
		{"Trailing hyphen", "wren-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "wren@example.com", false},
		{"Valid with plus", "wren+tag@example.co.uk", false},
		{"Missing at", "wrenexample.com", true},
		{"Missing domain", "wren@", true},
		{"Missing tld", "wren@example", true},
		{"Too long", strings.Repeat("a", 250) + "@x.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
