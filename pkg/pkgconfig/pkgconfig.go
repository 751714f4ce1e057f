// Package pkgconfig writes pkg-config files describing resolved dependencies
// so the Meson build finds the host's packages through dependency().
package pkgconfig

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/sync/errgroup"

	"github.com/arc-language/spralpkg/pkg/logging"
	"github.com/arc-language/spralpkg/pkg/registry"
)

var pcTemplate = template.Must(template.New("pc").Parse(`prefix={{.Prefix}}
{{- range $i, $d := .LibDirs}}
libdir{{if $i}}{{$i}}{{end}}=${prefix}/{{$d}}
{{- end}}
{{- range $i, $d := .IncludeDirs}}
includedir{{if $i}}{{$i}}{{end}}=${prefix}/{{$d}}
{{- end}}

Name: {{.Name}}
Description: {{.Description}}
Version: {{.Version}}
Libs: {{.Libs}}
Cflags: {{.Cflags}}
{{- if .Requires}}
Requires: {{.Requires}}
{{- end}}
`))

type pcData struct {
	Prefix      string
	Name        string
	Description string
	Version     string
	LibDirs     []string
	IncludeDirs []string
	Libs        string
	Cflags      string
	Requires    string
}

// FileName returns the .pc file name for entry
func FileName(e *registry.Entry) string {
	return e.PkgConfig() + ".pc"
}

// Render produces the pkg-config file content for entry
func Render(e *registry.Entry) (string, error) {
	d := pcData{
		Prefix:      filepath.ToSlash(e.Root),
		Name:        e.PkgConfig(),
		Description: e.Description,
		Version:     e.Version,
		LibDirs:     orDefault(e.LibDirs, "lib"),
		IncludeDirs: orDefault(e.IncludeDirs, "include"),
	}
	if d.Description == "" {
		d.Description = "Package " + e.Ref()
	}

	var libs []string
	for i := range d.LibDirs {
		libs = append(libs, fmt.Sprintf(`-L"${%s}"`, dirVar("libdir", i)))
	}
	for _, l := range e.Libs {
		libs = append(libs, "-l"+l)
	}
	for _, l := range e.SystemLibs {
		libs = append(libs, "-l"+l)
	}
	d.Libs = strings.Join(libs, " ")

	var cflags []string
	for i := range d.IncludeDirs {
		cflags = append(cflags, fmt.Sprintf(`-I"${%s}"`, dirVar("includedir", i)))
	}
	for _, def := range e.Defines {
		cflags = append(cflags, "-D"+def)
	}
	d.Cflags = strings.Join(cflags, " ")

	reqs := make([]string, 0, len(e.Requires))
	for _, r := range e.Requires {
		reqs = append(reqs, ModuleName(r))
	}
	d.Requires = strings.Join(reqs, " ")

	var buf bytes.Buffer
	if err := pcTemplate.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("rendering %s: %w", FileName(e), err)
	}
	return buf.String(), nil
}

// ModuleName converts a "pkg::component" requirement into a pkg-config module
// name: "openblas::openblas" -> "openblas", "boost::headers" -> "boost-headers"
func ModuleName(req string) string {
	pkg, comp, ok := strings.Cut(req, "::")
	if !ok || comp == pkg {
		return pkg
	}
	return pkg + "-" + comp
}

// Generate writes one .pc file per entry into dir and returns the paths in
// entry order
func Generate(ctx context.Context, entries []*registry.Entry, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating generators folder: %w", err)
	}

	logger := logging.FromContext(ctx)
	paths := make([]string, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	for i, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := Render(e)
			if err != nil {
				return err
			}

			path := filepath.Join(dir, FileName(e))
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			logger.Debug("generated pkg-config file", "package", e.Ref(), "path", path)
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func dirVar(base string, i int) string {
	if i == 0 {
		return base
	}
	return fmt.Sprintf("%s%d", base, i)
}

func orDefault(dirs []string, def string) []string {
	if len(dirs) == 0 {
		return []string{def}
	}
	return dirs
}
