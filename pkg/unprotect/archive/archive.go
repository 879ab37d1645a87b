// Package archive unpacks OOXML packages into a directory tree and packs
// them back without touching entries that were not modified on disk.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrFormat indicates the input is not a readable zip container.
var ErrFormat = errors.New("not a valid zip package")

// ErrIntegrity indicates a produced archive failed checksum validation.
var ErrIntegrity = errors.New("archive integrity check failed")

// Extract writes every entry of the archive at archivePath under destDir,
// recreating intermediate directories. destDir is created if absent.
func Extract(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		if r != nil {
			_ = r.Close()
		}
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return fmt.Errorf("open %s: %w", archivePath, err)
		}
		return fmt.Errorf("%s: %w: %v", archivePath, ErrFormat, err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", destDir, err)
	}

	for _, f := range r.File {
		target, err := entryPath(destDir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", f.Name, err)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}

	return nil
}

// entryPath resolves a zip entry name below destDir, rejecting names that
// would land outside of it.
func entryPath(destDir, name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") || filepath.IsAbs(name) {
		return "", fmt.Errorf("entry %q: %w: absolute path", name, ErrFormat)
	}
	target := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q: %w: escapes destination", name, ErrFormat)
	}
	return target, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w: %v", f.Name, ErrFormat, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("write %s: %w", f.Name, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		if errors.Is(err, zip.ErrChecksum) || errors.Is(err, zip.ErrAlgorithm) {
			return fmt.Errorf("read entry %s: %w: %v", f.Name, ErrFormat, err)
		}
		return fmt.Errorf("write %s: %w", f.Name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write %s: %w", f.Name, err)
	}
	return nil
}

// Repack writes every regular file below sourceDir into a new archive at
// archivePath, overwriting it. Entry names are slash-separated paths
// relative to sourceDir, compressed with Deflate, in lexical walk order.
func Repack(sourceDir, archivePath string) (err error) {
	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", archivePath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", archivePath, cerr)
		}
	}()

	zw := zip.NewWriter(out)
	walkErr := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		return addFile(zw, path, filepath.ToSlash(rel), d)
	})
	if walkErr != nil {
		_ = zw.Close()
		return fmt.Errorf("pack %s: %w", sourceDir, walkErr)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", archivePath, err)
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}
	return nil
}

// Verify reads every entry of the archive so that each stored CRC-32 is
// checked against its content.
func Verify(archivePath string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", archivePath, ErrIntegrity, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := verifyEntry(f); err != nil {
			return fmt.Errorf("entry %s: %w: %v", f.Name, ErrIntegrity, err)
		}
	}
	return nil
}

func verifyEntry(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(io.Discard, rc)
	return err
}
