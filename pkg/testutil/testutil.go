package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewMemFS returns an empty in-memory filesystem
func NewMemFS() afero.Fs {
	return afero.NewMemMapFs()
}

// WriteFile creates path on fs with content, creating parent directories.
// It fails the test if the file cannot be written.
func WriteFile(t *testing.T, fs afero.Fs, path, content string) string {
	t.Helper()

	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755), "creating parent of %s", path)
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644), "writing %s", path)
	return path
}

// ReadFile returns the content of path on fs, failing the test if it is
// missing
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err, "reading %s", path)
	return string(data)
}

// FileExists checks if a file exists on fs and is not a directory
func FileExists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()

	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Unsetenv clears key for the test and restores it afterwards
func Unsetenv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		}
	})
}

// Dedent removes the indentation common to every non-blank line of s and a
// single leading newline, so fixtures can be indented with the test code.
// Tabs and spaces are both counted as one column.
func Dedent(s string) string {
	s = strings.TrimPrefix(s, "\n")
	lines := strings.Split(s, "\n")

	margin := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin <= 0 {
		return s
	}

	for i, line := range lines {
		if len(line) >= margin {
			lines[i] = line[margin:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
