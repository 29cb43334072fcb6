package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "/dashboard"},
		{"/dashboard/books", "/dashboard/books"},
		{"//evil.com", "/dashboard"},
		{"/\\evil.com", "/dashboard"},
		{"https://evil.com", "/dashboard"},
		{"books", "/dashboard"},
		{"/dashboard/books?page=2", "/dashboard/books?page=2"},
		{"/\t/evil.com", "/dashboard"},
		{"/\n/evil.com", "/dashboard"},
		{"/\r\n//evil.com", "/dashboard"},
		{"/dashboard\\..\\evil", "/dashboard"},
		{"/\x7f/evil.com", "/dashboard"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeRedirect(tt.in, "/dashboard"), "input %q", tt.in)
	}
}

func TestStringValue(t *testing.T) {
	s := "bio"
	assert.Equal(t, "bio", StringValue(&s))
	assert.Equal(t, "", StringValue(nil))
}
