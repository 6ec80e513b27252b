package loader

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"

	ixgoLoader "github.com/goplus/ixgo/load"
)

// resolver resolves Go module imports appearing in rules scripts by
// wrapping ixgo's ListDriver with a fallback to the go tool.
type resolver struct {
	listDriver *ixgoLoader.ListDriver
}

func newResolver() *resolver {
	return &resolver{listDriver: new(ixgoLoader.ListDriver)}
}

// Lookup resolves a Go module path to its directory location. It first
// tries the ListDriver cache, then falls back to go mod commands,
// initializing a module in root if none exists yet.
func (g *resolver) Lookup(root string, path string) (dir string, found bool) {
	dir, found = g.listDriver.Lookup(root, path)
	if found {
		return
	}
	if _, err := os.Stat(filepath.Join(root, "go.mod")); os.IsNotExist(err) {
		if _, err := execCommand(root, "go", "mod", "init", filepath.Base(root)); err != nil {
			return "", false
		}
	}
	if _, err := execCommand(root, "go", "get", path); err != nil {
		return "", false
	}

	ret, err := execCommand(root, "go", "mod", "download", "-json", path)
	if err != nil {
		return "", false
	}

	var modDownload struct {
		Dir string
	}
	json.Unmarshal(ret, &modDownload)

	if modDownload.Dir != "" {
		found = true
		dir = modDownload.Dir
	}

	return
}

func execCommand(dir, mainCmd string, subcmd ...string) ([]byte, error) {
	cmd := exec.Command(mainCmd, subcmd...)
	cmd.Dir = dir
	cmd.Stderr = os.Stderr
	return cmd.Output()
}
