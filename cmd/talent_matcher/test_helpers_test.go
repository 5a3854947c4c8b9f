package main

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const (
	janeID    = "11111111-1111-4111-8111-111111111111"
	backendID = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	unknownID = "12345678-1234-4234-8234-123456789abc"
)

// testDataset returns the absolute path of the shared dataset fixture.
func testDataset(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "internal", "dataset", "testdata", "dataset.json"))
	require.NoError(t, err)
	return path
}

// execute runs rootCmd in-process with args and returns what the command wrote to stdout.
// Flag values are reset first because cobra keeps them on the package-level commands.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MATCHER_LOG_LEVEL", "error")
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func decodeOutput[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}
