package capability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCheckerCheck(t *testing.T) {
	sc := NewStaticChecker(map[string][]string{
		"frontmatter": {"metrics"},
		"themes":      {"metrics", "storage"},
	})

	tests := []struct {
		identity string
		cap      Capability
		want     bool
	}{
		{"frontmatter", CapabilityMetrics, true},
		{"themes", CapabilityMetrics, true},
		{"themes", Capability("storage"), true},
		{"frontmatter", Capability("storage"), false},
		{"unknown", CapabilityMetrics, false},
		{"", CapabilityMetrics, false},
	}

	for _, test := range tests {
		got, err := sc.Check(test.identity, test.cap)
		require.NoError(t, err)
		assert.Equal(t, test.want, got, "Check(%q, %q)", test.identity, test.cap)
	}
}

func TestStaticCheckerGrantsSnapshot(t *testing.T) {
	sc := NewStaticChecker(map[string][]string{
		"themes": {"storage", "metrics"},
	})

	grants := sc.Grants()
	assert.Equal(t, []string{"metrics", "storage"}, grants["themes"])
}

func TestFileChecker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
grants:
  frontmatter: [metrics]
`), 0o600))

	fc, err := NewFileChecker(path)
	require.NoError(t, err)

	ok, err := fc.Check("frontmatter", CapabilityMetrics)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fc.Check("themes", CapabilityMetrics)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCheckerReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grants:\n  a: [metrics]\n"), 0o600))

	fc, err := NewFileChecker(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("grants:\n  b: [metrics]\n"), 0o600))
	require.NoError(t, fc.Reload())

	ok, _ := fc.Check("a", CapabilityMetrics)
	assert.False(t, ok, "revoked identity should lose the grant after reload")
	ok, _ = fc.Check("b", CapabilityMetrics)
	assert.True(t, ok)
}

func TestFileCheckerReloadKeepsOldGrantsOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grants:\n  a: [metrics]\n"), 0o600))

	fc, err := NewFileChecker(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml ["), 0o600))
	require.Error(t, fc.Reload())

	ok, _ := fc.Check("a", CapabilityMetrics)
	assert.True(t, ok, "previous grants should survive a failed reload")
}

func TestFileCheckerMissingFile(t *testing.T) {
	_, err := NewFileChecker(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
