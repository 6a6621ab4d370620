package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"", RoleUser, true},
		{"USER", RoleUser, true},
		{"ADMIN", RoleAdmin, true},
		{"admin", "", false},
		{"ROOT", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
