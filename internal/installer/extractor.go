package installer

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	"desktop-setup/internal/logger"
)

// archiveSuffixes lists the settings archive formats ExtractArchive understands.
var archiveSuffixes = []string{".zip", ".7z", ".tar", ".tar.gz", ".tgz", ".tar.bz2", ".tar.xz"}

// IsArchive reports whether src names a supported archive.
func IsArchive(src string) bool {
	lower := strings.ToLower(src)
	for _, ext := range archiveSuffixes {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ExtractArchive unpacks src into dest. dest's parent must exist; dest is
// created if missing. Entries nested under a top-level directory with the
// same name as dest (e.g. "User/Preferences.sublime-settings" extracted into
// ".../Packages/User") have that directory stripped.
func ExtractArchive(src, dest string) error {
	if err := prepareDestination(dest); err != nil {
		return err
	}

	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		logger.Debug("[DEBUG] compression type is zip\n")
		return extractZip(src, dest)
	case strings.HasSuffix(lower, ".7z"):
		logger.Debug("[DEBUG] compression type is .7z\n")
		return extract7z(src, dest)
	case strings.HasSuffix(lower, ".tar"), strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"),
		strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tar.xz"):
		logger.Debug("[DEBUG] compression type is .tar.*\n")
		return extractTarArchive(src, dest)
	default:
		return fmt.Errorf("unsupported archive format: %s", src)
	}
}

// entryTarget maps an archive entry name to its path under dest.
// It returns "" for entries that resolve to dest itself.
func entryTarget(dest, name string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(name))[1:]
	if first, rest, ok := strings.Cut(clean, "/"); ok && first == filepath.Base(dest) {
		clean = rest
	} else if clean == filepath.Base(dest) {
		clean = ""
	}
	if clean == "" || clean == "." {
		return "", nil
	}

	target := filepath.Join(dest, filepath.FromSlash(clean))
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes %s", name, dest)
	}
	return target, nil
}

// writeEntry copies r into target, creating parent directories.
func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if mode.Perm() == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// extractTarArchive handles tar and compressed tar variants
func extractTarArchive(src, dest string) error {
	logger.Debug("[DEBUG] uncompressing %s to %s\n", src, dest)
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(lower, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(lower, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break // End of archive
		}
		if err != nil {
			return err
		}

		target, err := entryTarget(dest, hdr.Name)
		if err != nil {
			return err
		}
		if target == "" {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		default:
			logger.Warn("[WARN] Skipping unsupported tar entry %s\n", hdr.Name)
		}
	}
	return nil
}

// extractZip extracts a .zip archive
func extractZip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := entryTarget(dest, f.Name)
		if err != nil {
			return err
		}
		if target == "" {
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeEntry(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// extract7z handles .7z extraction using the sevenzip library
func extract7z(src, dest string) error {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := entryTarget(dest, f.Name)
		if err != nil {
			return err
		}
		if target == "" {
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeEntry(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
