package source

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// Extract unpacks archive into dest. name selects the format by suffix
// (.tar.gz, .tgz, .tar.xz, .tar, .zip). With stripRoot the single top-level
// folder of the archive is removed from every path.
func Extract(archive, name, dest string, stripRoot bool) error {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return extractZip(archive, dest, stripRoot)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return extractTar(archive, dest, stripRoot, func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		})
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return extractTar(archive, dest, stripRoot, func(r io.Reader) (io.Reader, error) {
			return xz.NewReader(r)
		})
	case strings.HasSuffix(lower, ".tar"):
		return extractTar(archive, dest, stripRoot, func(r io.Reader) (io.Reader, error) {
			return r, nil
		})
	default:
		return fmt.Errorf("unsupported archive format: %s", name)
	}
}

func extractTar(archive, dest string, stripRoot bool, decompress func(io.Reader) (io.Reader, error)) error {
	file, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer file.Close()

	r, err := decompress(file)
	if err != nil {
		return fmt.Errorf("opening compressed stream: %w", err)
	}

	tr := tar.NewReader(r)
	root := ""

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading tar: %w", err)
		}

		// pax global headers carry no file
		if header.Typeflag == tar.TypeXGlobalHeader {
			continue
		}

		rel, skip, err := stripPath(header.Name, stripRoot, &root)
		if err != nil {
			return err
		}
		if skip {
			continue
		}

		target, err := securePath(dest, rel)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}

		case tar.TypeReg:
			if err := writeFile(target, tr, os.FileMode(header.Mode)); err != nil {
				return err
			}

		case tar.TypeLink:
			// hard links name an earlier entry by its archive path
			linkRel, _, err := stripPath(header.Linkname, stripRoot, &root)
			if err != nil {
				return err
			}
			src, err := securePath(dest, linkRel)
			if err != nil {
				return err
			}
			if err := copyLinked(src, target); err != nil {
				return fmt.Errorf("hard link %s -> %s: %w", header.Name, header.Linkname, err)
			}

		case tar.TypeSymlink:
			if filepath.IsAbs(header.Linkname) {
				return fmt.Errorf("refusing absolute symlink %s -> %s", header.Name, header.Linkname)
			}
			if _, err := securePath(dest, filepath.Join(filepath.Dir(rel), header.Linkname)); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}
			os.Remove(target)
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("creating symlink: %w", err)
			}
		}
	}

	return nil
}

func extractZip(archive, dest string, stripRoot bool) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer zr.Close()

	root := ""
	for _, f := range zr.File {
		rel, skip, err := stripPath(f.Name, stripRoot, &root)
		if err != nil {
			return err
		}
		if skip {
			continue
		}

		target, err := securePath(dest, rel)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening %s: %w", f.Name, err)
		}
		err = writeFile(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// stripPath removes the common root folder from name. The first entry fixes
// the root; an entry outside it is an error.
func stripPath(name string, stripRoot bool, root *string) (string, bool, error) {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	if !stripRoot {
		return name, name == "", nil
	}

	first, rest, _ := strings.Cut(name, "/")
	if *root == "" {
		*root = first
	} else if first != *root {
		return "", false, fmt.Errorf("cannot strip root: archive has several top-level entries (%s, %s)", *root, first)
	}

	rest = strings.TrimSuffix(rest, "/")
	return rest, rest == "", nil
}

// securePath joins rel onto dest, rejecting paths that escape it
func securePath(dest, rel string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(rel))
	cleanDest := filepath.Clean(dest)
	if target != cleanDest && !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
		return "", errors.New("illegal file path in archive: " + rel)
	}
	return target, nil
}

// copyLinked materialises a hard link as a copy of the already extracted
// src, so patching one path never changes the other
func copyLinked(src, target string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}
	return writeFile(target, in, info.Mode())
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	if mode&0600 == 0 {
		mode |= 0644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("writing file: %w", err)
	}

	return out.Close()
}
