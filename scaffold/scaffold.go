// Package scaffold writes project boilerplate from embedded template
// trees. Templates use {% %} delimiters so GitHub Actions ${{ }} syntax
// survives untouched; file names ending in .tmplt lose the suffix on the
// way out.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/mod/modfile"
)

type (
	WriteHook func(io.Writer) error

	// PythonData feeds the Python template tree.
	PythonData struct {
		ProjectName    string
		Description    string
		RequiresPython string
		Deps           []Dependency
	}

	// GoData feeds the Go template tree.
	GoData struct {
		ProjectName string
		Description string
		ModulePath  string
		GoVersion   string
	}
)

var (
	//go:embed "all:.python/*"
	pythonFS embed.FS

	//go:embed "all:.go/*"
	goFS embed.FS

	tmpltExt = ".tmplt"
)

// WritePython lays down the Python project skeleton in dir: templated
// files, the src package directory, and empty test/config placeholders.
func WritePython(dir string, data *PythonData) (err error) {
	if err = writeTree(dir, pythonFS, ".python", data); err != nil {
		return err
	}

	pkg := dashLower(data.ProjectName)

	srcDir := filepath.Clean(filepath.Join(dir, "src", pkg))
	if err = os.MkdirAll(srcDir, 0750); err != nil {
		return fmt.Errorf("failed to create the 'src/%s' directory: %w", pkg, err)
	}

	if err = touch(filepath.Join(srcDir, "__init__.py")); err != nil {
		return err
	}

	if err = touch(filepath.Join(srcDir, "py.typed")); err != nil {
		return err
	}

	return touch(filepath.Join(dir, "tests", "__init__.py"))
}

// WriteGo lays down the Go project skeleton in dir, including a starter
// go.mod built with x/mod.
func WriteGo(dir string, data *GoData) (err error) {
	if err = writeTree(dir, goFS, ".go", data); err != nil {
		return err
	}

	return WriteToFile(dir, "go.mod", ToModFile(data.ModulePath, data.GoVersion))
}

func ToModFile(modulePath, goVersion string) WriteHook {
	return func(fd io.Writer) error {
		goModFile := new(modfile.File)

		err := goModFile.AddModuleStmt(modulePath)
		if err != nil {
			return fmt.Errorf("failed to add module statement to go.mod file: %w", err)
		}

		err = goModFile.AddGoStmt(goVersion)
		if err != nil {
			return fmt.Errorf("failed to add go statement to go.mod file: %w", err)
		}

		contents, err := goModFile.Format()
		if err != nil {
			return fmt.Errorf("failed to format starter go.mod file: %w", err)
		}

		_, err = fd.Write(contents)

		return err
	}
}

func WriteToFile(dir, name string, hook WriteHook) (err error) {
	fd, err := os.Create(filepath.Clean(filepath.Join(dir, name)))
	if err != nil {
		return fmt.Errorf("failed to create %q file: %w", name, err)
	}

	defer func() { _ = fd.Close() }()

	err = hook(fd)
	if err != nil {
		return fmt.Errorf("failed to write to %q: %w", name, err)
	}

	return nil
}

func dashLower(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", "_"))
}

func touch(path string) error {
	fd, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create empty file %q: %w", path, err)
	}

	defer func() { _ = fd.Close() }()

	return nil
}

// listTree walks srcFS under srcPrefix, creating each directory under
// dest and returning the template file paths found.
func listTree(dest string, srcFS embed.FS, srcPrefix string) (srcFiles []string, err error) {
	if _, err = srcFS.ReadDir(srcPrefix); err != nil {
		return nil, fmt.Errorf("%q is not a directory of data files: %w", srcPrefix, err)
	}

	pending := []string{srcPrefix}

	for len(pending) > 0 {
		srcDir := pending[0]
		pending = pending[1:]

		items, err := srcFS.ReadDir(srcDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open the relative directory %q in data files tree: %w", srcDir, err)
		}

		for _, item := range items {
			full := filepath.Clean(filepath.Join(srcDir, item.Name()))

			if !item.IsDir() {
				srcFiles = append(srcFiles, full)

				continue
			}

			pending = append(pending, full)

			rel, err := filepath.Rel(srcPrefix, full)
			if err != nil {
				return nil, fmt.Errorf("erroneous directory %q from data files tree: %w", full, err)
			}

			if err = os.MkdirAll(filepath.Clean(filepath.Join(dest, rel)), 0750); err != nil {
				return nil, fmt.Errorf("failed to create directory %q in destination folder: %w", rel, err)
			}
		}
	}

	return srcFiles, nil
}

func writeTree(dest string, srcFS embed.FS, srcPrefix string, data any) (err error) {
	srcFiles, err := listTree(dest, srcFS, srcPrefix)
	if err != nil {
		return err
	}

	tmplt, err := template.New("entry").Delims("{%", "%}").Funcs(template.FuncMap{"DashLower": dashLower}).ParseFS(srcFS, srcFiles...)
	if err != nil {
		return fmt.Errorf("failed to parse data files as templates: %w", err)
	}

	var wg sync.WaitGroup

	semaphore := make(chan struct{}, 7)
	errs := make([]error, len(srcFiles))

	for i, srcFile := range srcFiles {
		wg.Add(1)

		go func() {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			destItem, err1 := filepath.Rel(srcPrefix, srcFile)
			if err1 != nil {
				errs[i] = fmt.Errorf("name of the data file %q does not start with prefix %q: %w", srcFile, srcPrefix, err1)

				return
			}

			err1 = WriteToFile(dest, strings.TrimSuffix(destItem, tmpltExt), func(fd io.Writer) error {
				return tmplt.ExecuteTemplate(fd, filepath.Base(srcFile), data)
			})
			if err1 != nil {
				errs[i] = fmt.Errorf("failed to create new file from template %q: %w", srcFile, err1)
			}
		}()
	}

	wg.Wait()

	return errors.Join(errs...)
}
