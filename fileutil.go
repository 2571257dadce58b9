package wavfx

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// copyFile replaces dst with a byte copy of src.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	return out.Close()
}

// moveFile renames src to dst, copying when a rename is not possible
// (typically across file systems).
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return fmt.Errorf("failed to move %s to %s: %w", src, dst, err)
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}

	return os.Remove(src)
}

// removeIfExists deletes path, ignoring a missing file.
func removeIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}
