package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"up", "down", "steps", "version", "force"}, names)
}

// Argument errors are reported before any database connection is attempted.
func TestRootCommand_ArgumentValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"steps needs an argument", []string{"steps"}, "accepts 1 arg(s)"},
		{"steps rejects text", []string{"steps", "two"}, "non-zero integer"},
		{"steps rejects zero", []string{"steps", "0"}, "non-zero integer"},
		{"force rejects text", []string{"force", "x"}, "integer >= -1"},
		{"force rejects below -1", []string{"force", "-2"}, "integer >= -1"},
		{"down needs confirmation", []string{"down"}, "--yes"},
		{"up takes no args", []string{"up", "extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCommand()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
