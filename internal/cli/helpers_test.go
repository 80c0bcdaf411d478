package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// env is an isolated working area: a missing config file so defaults
// apply, and an empty snapshot directory.
type env struct {
	t       *testing.T
	config  string
	dir     string
	scratch string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	root := t.TempDir()
	return &env{
		t:       t,
		config:  filepath.Join(root, "snapmatch.yaml"),
		dir:     filepath.Join(root, "snapshots"),
		scratch: root,
	}
}

func (e *env) writeConfig(content string) {
	e.t.Helper()
	require.NoError(e.t, os.WriteFile(e.config, []byte(content), 0o644))
}

func (e *env) writeInput(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.scratch, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (e *env) snapshot(key string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, filepath.FromSlash(key)))
	require.NoError(e.t, err)
	return string(data)
}

// run executes the root command with stdin and returns stdout and the error.
func (e *env) run(stdin string, args ...string) (string, string, error) {
	e.t.Helper()
	cmd := NewRootCommand()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--config", e.config, "--dir", e.dir}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
