// Package source expands FASTA sources (files and directories) into an
// ordered, deduplicated list of canonical file paths.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a source is neither a file nor a directory.
var ErrNotFound = errors.New("invalid or non-existent source for fasta files")

// NotFoundError names the offending source.
type NotFoundError struct {
	Source string
}

func (e *NotFoundError) Error() string { return e.Source + ": " + ErrNotFound.Error() }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// FileSuffixes are the conventional FASTA extensions.
var FileSuffixes = []string{".fa", ".fasta", ".faa", ".fna"}

// CompressionSuffixes are the extensions accepted for BGZF data. Plain
// gzip shares ".gz" and is rejected when opened.
var CompressionSuffixes = []string{".bgz", ".gz"}

// DefaultSuffixes returns every file suffix, bare and combined with each
// compression suffix.
func DefaultSuffixes() []string {
	out := append([]string(nil), FileSuffixes...)
	for _, f := range FileSuffixes {
		for _, c := range CompressionSuffixes {
			out = append(out, f+c)
		}
	}
	return out
}

// NormalizeSuffixes prefixes a dot where missing and drops empty entries.
func NormalizeSuffixes(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		out = append(out, s)
	}
	return out
}

// Resolve expands sources in order. Files are taken as given; directories
// are walked recursively, following symlinks, visiting each directory's
// files in lexicographic order before its subdirectories, and keeping only
// names ending in one of suffixes. Paths are canonicalized and the first
// occurrence of each wins.
func Resolve(sources, suffixes []string) ([]string, error) {
	r := resolver{
		suffixes: suffixes,
		seen:     make(map[string]struct{}),
		visited:  make(map[string]struct{}),
	}
	for _, s := range sources {
		info, err := os.Stat(s)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Source: s}
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", s, err)
		}
		switch {
		case info.Mode().IsRegular():
			if err := r.add(s); err != nil {
				return nil, err
			}
		case info.IsDir():
			if err := r.walk(s); err != nil {
				return nil, err
			}
		default:
			return nil, &NotFoundError{Source: s}
		}
	}
	return r.paths, nil
}

// Canonical returns the absolute path of p with symlinks resolved.
func Canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

type resolver struct {
	suffixes []string
	seen     map[string]struct{}
	visited  map[string]struct{} // canonical directories, cuts symlink loops
	paths    []string
}

func (r *resolver) add(p string) error {
	canon, err := Canonical(p)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", p, err)
	}
	if _, dup := r.seen[canon]; dup {
		return nil
	}
	r.seen[canon] = struct{}{}
	r.paths = append(r.paths, canon)
	return nil
}

func (r *resolver) walk(dir string) error {
	canon, err := Canonical(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	if _, done := r.visited[canon]; done {
		return nil
	}
	r.visited[canon] = struct{}{}

	entries, err := os.ReadDir(dir) // sorted by name
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	var subdirs []string
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		isDir := e.IsDir()
		if e.Type()&fs.ModeSymlink != 0 {
			// A dangling link is treated as a file and fails to resolve.
			if info, err := os.Stat(p); err == nil {
				isDir = info.IsDir()
			}
		}
		if isDir {
			subdirs = append(subdirs, p)
			continue
		}
		if !r.matches(e.Name()) {
			continue
		}
		if err := r.add(p); err != nil {
			return err
		}
	}
	for _, d := range subdirs {
		if err := r.walk(d); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) matches(name string) bool {
	for _, s := range r.suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
