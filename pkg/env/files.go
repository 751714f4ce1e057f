package env

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyLicenses copies the license files found at the top of srcDir into
// the package license directory. It returns the copied paths.
func (e *Environment) CopyLicenses(srcDir string) ([]string, error) {
	dst := e.LicenseDir()

	var copied []string
	for _, name := range LicenseNames {
		src := filepath.Join(srcDir, name)
		if !fileExists(src) {
			continue
		}
		if err := os.MkdirAll(dst, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dst, err)
		}
		target := filepath.Join(dst, name)
		if err := copyFile(src, target); err != nil {
			return nil, fmt.Errorf("copying %s: %w", name, err)
		}
		copied = append(copied, target)
	}

	if len(copied) == 0 {
		return nil, fmt.Errorf("no license file in %s", srcDir)
	}
	return copied, nil
}

// RemoveFiles deletes every file under the package folder whose name
// matches pattern and returns how many were removed
func (e *Environment) RemoveFiles(pattern string) (int, error) {
	removed := 0
	err := filepath.WalkDir(e.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
