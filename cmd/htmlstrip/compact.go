package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/mnightingale/htmlstrip"
	"github.com/mnightingale/htmlstrip/internal/logger"
)

var errTerminalInput = errors.New("refusing to read HTML from a terminal, pass files or pipe the input")

func runCompact(c *cli.Context) error {
	files := c.Args().Slice()
	bufSize := c.Int(compactBufferSize)

	if len(files) == 0 {
		if isTerminal(os.Stdin) {
			return errTerminalInput
		}
		_, err := compactStream(os.Stdout, os.Stdin, bufSize)
		return err
	}

	if c.Bool(compactInPlace) {
		return compactFiles(c.Context, files, c.Int(compactConcurrency))
	}

	// Every file is a document of its own.
	for _, path := range files {
		if err := compactFileTo(os.Stdout, path, bufSize); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func compactStream(w io.Writer, r io.Reader, bufSize int) (*htmlstrip.Reader, error) {
	cr := htmlstrip.NewReader(r, htmlstrip.WithBufferSize(bufSize))
	if _, err := io.Copy(w, cr); err != nil {
		return cr, err
	}
	return cr, nil
}

func compactFileTo(w io.Writer, path string, bufSize int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr, err := compactStream(w, f, bufSize)
	if err != nil {
		return fmt.Errorf("cannot compact %q: %w", path, err)
	}
	if cr.Aborted() {
		logger.Logger.Warn("unclassifiable markup, rest of file copied unchanged", "path", path)
	}
	return nil
}

// compactFiles rewrites files in place, at most concurrency at a time.
func compactFiles(ctx context.Context, files []string, concurrency int) error {
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for _, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return compactFile(path)
		})
	}

	return g.Wait()
}

func compactFile(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	n, err := htmlstrip.CompactAll(data, data)
	if err != nil {
		return fmt.Errorf("cannot compact %q: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data[:n]); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(fi.Mode().Perm()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}

	logger.Logger.Debug("compacted file", "path", path, "before", len(data), "after", n)
	return nil
}
