package confkit

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const maxRootDepth = 8

// ancestors lists dir and its parents, nearest first, up to maxRootDepth.
func ancestors(dir string) []string {
	out := make([]string, 0, maxRootDepth)
	for i := 0; i < maxRootDepth; i++ {
		out = append(out, dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return out
}

func isModuleRoot(dir string) bool {
	return fileExists(filepath.Join(dir, "go.mod")) || fileExists(filepath.Join(dir, ".git"))
}

// ProjectRoot locates the module root by walking up from this source file.
// It falls back to the working directory, which is what a deployed binary
// without sources sees.
func ProjectRoot() (string, error) {
	if _, file, _, ok := runtime.Caller(0); ok {
		for _, dir := range ancestors(filepath.Dir(file)) {
			if isModuleRoot(dir) {
				return dir, nil
			}
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return ".", fmt.Errorf("getwd: %w", err)
	}
	return wd, nil
}

// MustProjectPath joins rel onto ProjectRoot and panics on failure.
func MustProjectPath(rel string) string {
	root, err := ProjectRoot()
	if err != nil {
		panic(err)
	}
	return filepath.Join(root, rel)
}
