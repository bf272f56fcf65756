package watch

import (
	"os"
	"path/filepath"
)

// filepathGlobPortDirs lists the immediate subdirectories of root, each
// expected to be one port's directory.
func filepathGlobPortDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	return dirs, nil
}
