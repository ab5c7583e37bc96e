package installer

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"desktop-setup/internal/logger"
)

// prepareDestination makes sure dest can receive files: its parent must
// already exist, dest itself is created when missing.
func prepareDestination(dest string) error {
	parent := filepath.Dir(dest)
	info, err := os.Stat(parent)
	if err != nil {
		return fmt.Errorf("destination parent %s: %w", parent, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("destination parent %s is not a directory", parent)
	}
	if err := os.Mkdir(dest, 0755); err != nil && !os.IsExist(err) {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	return nil
}

// copyTree copies the contents of src into dest, the way "cp -r src/. dest" does.
// Existing files in dest are overwritten; files only in dest are left alone.
func copyTree(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("settings source: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("settings source %s is not a directory", src)
	}
	if err := prepareDestination(dest); err != nil {
		return err
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		switch {
		case d.IsDir():
			if rel == "." {
				return nil
			}
			return os.MkdirAll(target, 0755)
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
				return err
			}
			return os.Symlink(link, target)
		case d.Type().IsRegular():
			logger.Debug("[DEBUG] Copying %s -> %s\n", path, target)
			return copyFile(path, target, 0)
		default:
			logger.Warn("[WARN] Skipping special file %s\n", path)
			return nil
		}
	})
}

// copyFile copies a file from src to dst, preserving permissions unless
// modeOverride is non-zero. Missing parent directories are created.
func copyFile(src, dst string, modeOverride os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create target failed: %w", err)
	}
	defer func() {
		cerr := out.Close()
		if err == nil {
			err = cerr
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}

	// Use override if provided, otherwise preserve source mode
	if modeOverride != 0 {
		return os.Chmod(dst, modeOverride)
	}
	stat, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, stat.Mode())
}
