// Package fileremover removes the scratch files the step leaves behind.
package fileremover

import (
	"fmt"

	"github.com/spf13/afero"
)

// FileRemover ...
type FileRemover interface {
	RemoveAll(path string) error
}

type fileRemover struct {
	fs afero.Fs
}

// NewFileRemover ...
func NewFileRemover(fs afero.Fs) FileRemover {
	return fileRemover{fs: fs}
}

// RemoveAll succeeds when path does not exist.
func (r fileRemover) RemoveAll(path string) error {
	if err := r.fs.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
