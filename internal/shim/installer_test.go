package shim

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/lvenv/internal/model"
)

// makeEnvLayout creates the given directories (relative to a fresh temp
// env root) and returns the root.
func makeEnvLayout(t *testing.T, root string, dirs ...string) string {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}
	return root
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	require.NotEmpty(t, tmpl)
	assert.Contains(t, string(tmpl), RecordStart)
	assert.Contains(t, string(tmpl), "***END RECORD***")
	assert.Contains(t, string(tmpl), "atexit.register(on_exit)")

	// Template hands out a copy.
	tmpl[0] = '#'
	assert.NotEqual(t, tmpl, Template())
}

func TestDigest(t *testing.T) {
	sum := sha256.Sum256(Template())
	assert.Equal(t, hex.EncodeToString(sum[:]), Digest())
	assert.Len(t, Digest(), 64)
}

// TestFindSitePackages checks that only lib/python*/site-packages
// directories are returned.
func TestFindSitePackages(t *testing.T) {
	root := makeEnvLayout(t, t.TempDir(),
		"lib/python3.11/site-packages",
		"lib/python3.12/site-packages",
		"lib/python3.12/other",
		"lib/pypy/site-packages",
		"lib64/python3.12/site-packages",
		"lib/python3.13",
	)
	// A file named site-packages is not a directory and must be ignored.
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib", "python3.13", "site-packages"), nil, 0o644))

	dirs, err := FindSitePackages(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "lib", "python3.11", "site-packages"),
		filepath.Join(root, "lib", "python3.12", "site-packages"),
	}, dirs)
}

func TestFindSitePackages_NoLayout(t *testing.T) {
	dirs, err := FindSitePackages(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

// TestFindSitePackages_MetacharsInEnvDir verifies that the env dir itself is
// matched literally.
func TestFindSitePackages_MetacharsInEnvDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("'*' and '?' are not valid in Windows file names")
	}
	base := t.TempDir()
	makeEnvLayout(t, filepath.Join(base, "envA"), "lib/python3.12/site-packages")
	root := makeEnvLayout(t, filepath.Join(base, "env[A]*?"), "lib/python3.12/site-packages")

	dirs, err := FindSitePackages(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "lib", "python3.12", "site-packages")}, dirs)
}

// TestInstall writes one byte-identical file per site-packages directory.
func TestInstall(t *testing.T) {
	root := makeEnvLayout(t, t.TempDir(),
		"lib/python3.11/site-packages",
		"lib/python3.12/site-packages",
	)

	written, err := Install(root)
	require.NoError(t, err)
	require.Len(t, written, 2)

	for _, p := range written {
		assert.Equal(t, FileName, filepath.Base(p))
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, Template(), data)
	}
}

// TestInstall_Overwrites replaces an existing sitecustomize.py and leaves
// other files alone.
func TestInstall_Overwrites(t *testing.T) {
	root := makeEnvLayout(t, t.TempDir(), "lib/python3.12/site-packages")
	sp := filepath.Join(root, "lib", "python3.12", "site-packages")
	require.NoError(t, os.WriteFile(filepath.Join(sp, FileName), []byte("print('old')\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sp, "keep.py"), []byte("x = 1\n"), 0o644))

	_, err := Install(root)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(sp, FileName))
	require.NoError(t, err)
	assert.Equal(t, Template(), data)

	kept, err := os.ReadFile(filepath.Join(sp, "keep.py"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(kept))
}

func TestInstall_NothingToDo(t *testing.T) {
	root := makeEnvLayout(t, t.TempDir(), "Lib/site-packages")

	written, err := Install(root)
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.NoFileExists(t, filepath.Join(root, "Lib", "site-packages", FileName))
}

func TestInstall_RelativeEnvDir(t *testing.T) {
	base := t.TempDir()
	makeEnvLayout(t, base, "rel-env/lib/python3.12/site-packages")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(base))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	written, err := Install("rel-env")
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.True(t, filepath.IsAbs(written[0]))
	assert.FileExists(t, filepath.Join(base, "rel-env", "lib", "python3.12", "site-packages", FileName))
}

// TestInstall_SymlinkEscape makes site-packages a link to a directory
// outside the env; nothing may be written there.
func TestInstall_SymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs extra privileges on Windows")
	}
	outside := t.TempDir()
	root := makeEnvLayout(t, t.TempDir(), "lib/python3.12")
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "lib", "python3.12", "site-packages")))

	_, err := Install(root)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitShimFailed, cliErr.Code)
	assert.NoFileExists(t, filepath.Join(outside, FileName))
}

// TestInstall_SymlinkInsideEnv follows an absolute site-packages link that
// stays inside the environment.
func TestInstall_SymlinkInsideEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs extra privileges on Windows")
	}
	root := makeEnvLayout(t, t.TempDir(), "lib/python3.12", "lib/real-site")
	link := filepath.Join(root, "lib", "python3.12", "site-packages")
	require.NoError(t, os.Symlink(filepath.Join(root, "lib", "real-site"), link))

	written, err := Install(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(link, FileName)}, written)

	data, err := os.ReadFile(filepath.Join(root, "lib", "real-site", FileName))
	require.NoError(t, err)
	assert.Equal(t, Template(), data)
}

// TestInstall_SymlinkedShimFile refuses to follow a sitecustomize.py that is
// itself a link out of the environment.
func TestInstall_SymlinkedShimFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs extra privileges on Windows")
	}
	outside := filepath.Join(t.TempDir(), "victim.py")
	require.NoError(t, os.WriteFile(outside, []byte("keep\n"), 0o644))

	root := makeEnvLayout(t, t.TempDir(), "lib/python3.12/site-packages")
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "lib", "python3.12", "site-packages", FileName)))

	_, _ = Install(root)

	data, err := os.ReadFile(outside)
	require.NoError(t, err)
	assert.Equal(t, "keep\n", string(data))
}
