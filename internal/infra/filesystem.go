package infra

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

// FileSystemManagerImpl implements domain.FileSystemManager.
type FileSystemManagerImpl struct {
	homeDir string
}

// NewFileSystemManager creates a new filesystem manager.
func NewFileSystemManager() domain.FileSystemManager {
	return &FileSystemManagerImpl{homeDir: GetRealUserHome()}
}

// NewFileSystemManagerWithHome creates a filesystem manager with custom home (for testing).
func NewFileSystemManagerWithHome(home string) domain.FileSystemManager {
	return &FileSystemManagerImpl{homeDir: home}
}

// Exists checks if a path exists.
func (fm *FileSystemManagerImpl) Exists(path string) bool {
	_, err := os.Stat(fm.ExpandHome(path))
	return err == nil
}

// ReadTrimmed reads a small text file and trims surrounding whitespace.
func (fm *FileSystemManagerImpl) ReadTrimmed(path string) (string, error) {
	data, err := os.ReadFile(fm.ExpandHome(path))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Glob expands a pattern after home expansion.
func (fm *FileSystemManagerImpl) Glob(pattern string) ([]string, error) {
	return filepath.Glob(fm.ExpandHome(pattern))
}

// WriteAtomic writes data to a temp file next to path and renames it into place,
// creating the parent directory if needed.
func (fm *FileSystemManagerImpl) WriteAtomic(path string, data []byte, perm os.FileMode) error {
	expanded := fm.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(expanded), 0755); err != nil {
		return err
	}
	return renameio.WriteFile(expanded, data, perm)
}

// ExpandHome expands ~ to the user's home directory.
func (fm *FileSystemManagerImpl) ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(fm.homeDir, path[2:])
	}
	if path == "~" {
		return fm.homeDir
	}
	return path
}

// Ensure FileSystemManagerImpl implements domain.FileSystemManager.
var _ domain.FileSystemManager = (*FileSystemManagerImpl)(nil)
