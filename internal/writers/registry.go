package writers

import (
	"fmt"
	"io"
	"sort"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatFASTA = "fasta"
)

// Registry maps a format to the writer for one kind of value.
// Register in init() blocks beside each writer.
type Registry[T any] struct {
	kind string
	fns  map[string]func(io.Writer, []T) error
}

func newRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, fns: map[string]func(io.Writer, []T) error{}}
}

// Register adds or replaces the writer for format.
func (r *Registry[T]) Register(format string, fn func(io.Writer, []T) error) { r.fns[format] = fn }

// Formats lists registered formats in lexical order.
func (r *Registry[T]) Formats() []string {
	out := make([]string, 0, len(r.fns))
	for f := range r.fns {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Supports reports whether format is registered.
func (r *Registry[T]) Supports(format string) bool {
	_, ok := r.fns[format]
	return ok
}

// Write renders list in format.
func (r *Registry[T]) Write(format string, w io.Writer, list []T) error {
	fn, ok := r.fns[format]
	if !ok {
		return fmt.Errorf("unknown %s format %q (no writer registered)", r.kind, format)
	}
	return fn(w, list)
}
