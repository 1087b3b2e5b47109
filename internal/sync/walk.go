package sync

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/statichost/site-sync/structs"
)

// listLocalFiles walks root depth-first and returns every regular file with
// its bucket key: the path relative to root with forward slashes. Symlinks
// are not followed. Every file is visited exactly once; order between
// siblings is whatever the filesystem yields.
func listLocalFiles(root string) ([]structs.LocalFile, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", abs, err)
	}

	var files []structs.LocalFile

	if err := filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}

		files = append(files, structs.LocalFile{
			Path: path,
			Key:  filepath.ToSlash(rel),
		})

		return nil
	}); err != nil {
		return nil, err
	}

	return files, nil
}
