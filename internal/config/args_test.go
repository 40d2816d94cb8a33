package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func lookup(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestExpandArgs_InsertsFileArgumentsFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "args")
	content := "# defaults\n--sakura-css\n\n  -f  \nindent=tabs\r\n   # indented comment\n--lang=en\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	args, used := ExpandArgs(lookup(map[string]string{ArgsFileEnv: path}), []string{"-O", "out", "docs"})
	require.Equal(t, path, used)
	require.Equal(t, []string{"--sakura-css", "-f", "indent=tabs", "--lang=en", "-O", "out", "docs"}, args)
}

func TestExpandArgs_Unset(t *testing.T) {
	args, used := ExpandArgs(lookup(nil), []string{"a.md"})
	require.Empty(t, used)
	require.Equal(t, []string{"a.md"}, args)
}

func TestExpandArgs_UnreadableFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	args, used := ExpandArgs(lookup(map[string]string{ArgsFileEnv: missing}), []string{"a.md"})
	require.Empty(t, used)
	require.Equal(t, []string{"a.md"}, args)
}
