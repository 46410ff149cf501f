package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

var (
	ErrFileNotFound = fmt.Errorf("filesystem: file not found")
	ErrInvalidPath  = fmt.Errorf("filesystem: invalid path")
)

// Filesystem stores files by name below a single root directory. Names are
// slash separated and may never point outside of the root.
type Filesystem interface {
	Root() string

	ReadFile(name string) ([]byte, error)
	WriteFile(name string, content []byte) error
	FileExists(name string) (bool, error)
}

type localFileSystem struct {
	root string
}

func NewLocalFileSystem(root string) Filesystem {
	return &localFileSystem{root: filepath.Clean(root)}
}

func (filesystem *localFileSystem) Root() string {
	return filesystem.root
}

func (filesystem *localFileSystem) resolve(name string) (string, error) {
	name = filepath.FromSlash(name)
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	return filepath.Join(filesystem.root, name), nil
}

func (filesystem *localFileSystem) FileExists(name string) (bool, error) {
	path, err := filesystem.resolve(name)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	return !info.IsDir(), nil
}

func (filesystem *localFileSystem) ReadFile(name string) ([]byte, error) {
	exists, err := filesystem.FileExists(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	path, _ := filesystem.resolve(name)
	return os.ReadFile(path)
}

// WriteFile creates or truncates the named file, creating missing parent
// directories below the root.
func (filesystem *localFileSystem) WriteFile(name string, content []byte) error {
	path, err := filesystem.resolve(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Error("closing file error", "error", closeErr)
		}
	}()

	if _, err := file.Write(content); err != nil {
		return err
	}

	return file.Sync()
}
