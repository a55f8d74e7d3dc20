package shim

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/shinji-kodama/lvenv/internal/logging"
	"github.com/shinji-kodama/lvenv/internal/model"
)

// FindSitePackages returns every existing <envDir>/lib/python*/site-packages
// directory, in lexical order. Only the python* segment is a wildcard; any
// glob metacharacters in envDir are matched literally.
//
// An empty result is not an error: layouts without lib/python*/ (such as
// the Windows Lib/site-packages layout) simply have nothing to patch.
func FindSitePackages(envDir string) ([]string, error) {
	pattern := filepath.Join(escapeGlob(envDir), "lib", "python*", "site-packages")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid site-packages pattern %s: %w", pattern, err)
	}

	var dirs []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, m)
	}
	return dirs, nil
}

// Install writes the payload into every site-packages directory found under
// envDir, replacing any existing sitecustomize.py. It returns the paths
// written, as found by the glob.
//
// Symlinks are resolved first: a site-packages link into another directory
// of the environment is followed, one leading outside envDir is refused.
func Install(envDir string) ([]string, error) {
	root, err := filepath.Abs(envDir)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitShimFailed, "failed to resolve environment directory", err)
	}

	dirs, err := FindSitePackages(root)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitShimFailed, "failed to search for site-packages", err)
	}
	if len(dirs) == 0 {
		logging.Debug("no site-packages directory found, nothing to install", "env", root)
		return nil, nil
	}

	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitShimFailed, "failed to resolve environment directory", err)
	}

	written := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		target, err := resolveTarget(realRoot, dir)
		if err != nil {
			return written, model.WrapCLIError(model.ExitShimFailed, fmt.Sprintf("refusing to install shim in %s", dir), err)
		}

		if err := os.WriteFile(target, template, 0o644); err != nil {
			return written, model.WrapCLIError(model.ExitShimFailed, fmt.Sprintf("failed to write %s", target), err)
		}
		logging.Debug("installed shim", "path", target)
		written = append(written, filepath.Join(dir, FileName))
	}
	return written, nil
}

// resolveTarget returns the sitecustomize.py path for the site-packages
// directory dir. dir must resolve to a location inside realRoot (itself
// already free of symlinks); the final join is scoped to realRoot so that a
// symlinked sitecustomize.py cannot point the write elsewhere either.
func resolveTarget(realRoot, dir string) (string, error) {
	realDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(realRoot, realDir)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%s resolves outside the environment", realDir)
	}

	return securejoin.SecureJoin(realRoot, filepath.Join(rel, FileName))
}

// escapeGlob quotes the filepath.Match metacharacters in s. On Windows the
// backslash is a path separator, so only the other metacharacters can be
// quoted there and a '[' is replaced by a single-character class.
func escapeGlob(s string) string {
	if runtime.GOOS == "windows" {
		r := strings.NewReplacer("[", "[[]", "*", "[*]", "?", "[?]")
		return r.Replace(s)
	}
	r := strings.NewReplacer(`\`, `\\`, "[", `\[`, "*", `\*`, "?", `\?`)
	return r.Replace(s)
}
