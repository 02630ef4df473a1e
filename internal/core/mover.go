package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jordanbtucker/video-clerk/internal/log"
)

// ErrDestinationExists is returned by Move when something already occupies
// the destination path.
var ErrDestinationExists = errors.New("destination already exists")

// Mover performs the filesystem side of a rename.
type Mover interface {
	// EnsureDir creates path and any missing parents. It is a no-op when
	// path is already a directory.
	EnsureDir(path string) error

	// Move renames src to dst. It never overwrites dst.
	Move(src, dst string) error
}

// FileMover implements Mover on the local filesystem and records every
// mutation in the current operation log session.
type FileMover struct{}

var _ Mover = FileMover{}

func (FileMover) EnsureDir(path string) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return nil
		}
		err := fmt.Errorf("%s is not a directory", path)
		log.LogCreateDir(path, err)
		return err
	}

	created := missingDirs(path)
	if err := os.MkdirAll(path, 0755); err != nil {
		log.LogCreateDir(path, err)
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	// Outermost first, so undo removes the innermost first
	for _, dir := range created {
		log.LogCreateDir(dir, nil)
	}
	return nil
}

func (FileMover) Move(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		log.LogRename(src, dst, ErrDestinationExists)
		return fmt.Errorf("rename %s: %w: %s", src, ErrDestinationExists, dst)
	}
	if err := os.Rename(src, dst); err != nil {
		log.LogRename(src, dst, err)
		return fmt.Errorf("failed to rename %s: %w", src, err)
	}
	log.LogRename(src, dst, nil)
	return nil
}

// missingDirs lists path and those of its parents that do not exist yet,
// outermost first.
func missingDirs(path string) []string {
	var dirs []string
	for dir := filepath.Clean(path); ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			break
		}
		dirs = append([]string{dir}, dirs...)
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}
	return dirs
}
