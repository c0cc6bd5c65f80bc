// Package catalog lists matching files from a shallow directory walk.
package catalog

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

type (
	Cmd struct {
		root string
		out  io.Writer

		Suffix string `name:"suffix" default:".py" help:"File suffix to record."`
		Output string `name:"output" default:"python_files.txt" help:"Name of the listing file, overwritten on each run."`
		Watch  bool   `name:"watch" help:"Stay alive and rebuild the listing when the tree changes."`
	}
)

// Files deeper than this many path segments are not recorded.
const maxDepth = 2

func (c *Cmd) AfterApply() (err error) {
	c.root, err = os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}

	c.out = os.Stdout

	return nil
}

func (c *Cmd) Run() error {
	err := c.write()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Recorded %s files in %s.\n", c.Suffix, c.Output)

	if !c.Watch {
		return nil
	}

	return c.watch()
}

// write rebuilds the listing file: one relative path per line, files at
// the root and one subdirectory down only.
func (c *Cmd) write() error {
	var lines []string

	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(c.root, path)
		if err != nil || rel == "." {
			return err
		}

		depth := strings.Count(rel, string(filepath.Separator)) + 1

		if d.IsDir() {
			if depth >= maxDepth {
				return fs.SkipDir
			}

			return nil
		}

		if depth <= maxDepth && strings.HasSuffix(d.Name(), c.Suffix) {
			lines = append(lines, filepath.ToSlash(rel))
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk %q: %w", c.root, err)
	}

	contents := strings.Join(lines, "\n")
	if len(lines) > 0 {
		contents += "\n"
	}

	err = os.WriteFile(filepath.Clean(filepath.Join(c.root, c.Output)), []byte(contents), 0600)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", c.Output, err)
	}

	return nil
}

// watch rebuilds the listing whenever anything under the recorded depth
// changes. Runs until the process is interrupted.
func (c *Cmd) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	defer func() { _ = watcher.Close() }()

	err = c.addWatchDirs(watcher)
	if err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Rewriting the listing file fires an event of its own.
			if filepath.Base(event.Name) == c.Output {
				continue
			}

			if err = c.write(); err != nil {
				return err
			}

			if event.Has(fsnotify.Create) {
				// A new first-level directory needs its own watch.
				_ = c.addWatchDirs(watcher)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func (c *Cmd) addWatchDirs(watcher *fsnotify.Watcher) error {
	err := watcher.Add(c.root)
	if err != nil {
		return fmt.Errorf("failed to watch %q: %w", c.root, err)
	}

	entries, err := os.ReadDir(c.root)
	if err != nil {
		return fmt.Errorf("failed to list %q: %w", c.root, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			_ = watcher.Add(filepath.Join(c.root, entry.Name()))
		}
	}

	return nil
}
