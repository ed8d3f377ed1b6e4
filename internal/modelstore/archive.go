package modelstore

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"

	"entityd/internal/common/fsutil"
)

// install unpacks archive into a staging directory next to target and renames
// it into place, so a partially unpacked model is never visible at target.
func install(archive, target string, log zerolog.Logger) error {
	mt, err := mimetype.DetectFile(archive)
	if err != nil {
		return fmt.Errorf("detect archive type: %w", err)
	}
	log.Debug().Str("mime", mt.String()).Msg("unpacking model archive")

	staging, err := os.MkdirTemp(filepath.Dir(target), ".staging-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(staging)

	switch {
	case mt.Is("application/gzip"):
		err = untarGzip(archive, staging)
	case mt.Is("application/x-tar"):
		err = untarFile(archive, staging)
	case mt.Is("application/zip"):
		err = unzip(archive, staging)
	default:
		err = fmt.Errorf("unsupported model archive type %s", mt.String())
	}
	if err != nil {
		return err
	}

	root, err := archiveRoot(staging)
	if err != nil {
		return err
	}
	if err := os.Rename(root, target); err != nil {
		// Another process may have installed it concurrently.
		if fsutil.DirExists(target) {
			return nil
		}
		return fmt.Errorf("install model: %w", err)
	}
	return nil
}

// archiveRoot flattens archives that wrap everything in one top-level directory.
func archiveRoot(staging string) (string, error) {
	entries, err := os.ReadDir(staging)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errors.New("model archive is empty")
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(staging, entries[0].Name()), nil
	}
	return staging, nil
}

func untarGzip(path, dst string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("gzip: %w", err)
	}
	defer zr.Close()
	return untar(zr, dst)
}

func untarFile(path, dst string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return untar(f, dst)
}

func untar(r io.Reader, dst string) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tar: %w", err)
		}
		target, err := fsutil.SafeJoin(dst, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		default:
			// links and special files are not part of a model
		}
	}
}

func unzip(path, dst string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("zip: %w", err)
	}
	defer zr.Close()
	for _, zf := range zr.File {
		target, err := fsutil.SafeJoin(dst, zf.Name)
		if err != nil {
			return err
		}
		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return err
		}
		err = writeFile(target, rc, zf.Mode().Perm())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFile(target string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0o644
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
