// Package model defines the data structures shared by the patch validation pipeline.
package model

import (
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// Join appends path elements to p.
func (p Path) Join(elem ...string) Path {
	return Path(filepath.Join(append([]string{string(p)}, elem...)...))
}

// ProjectContext supplies path resolution for every mutant of one project
// checkout. It is read-only for the duration of a pipeline run.
type ProjectContext struct {
	Root            Path
	Name            string
	SourceClassRoot string // relative to Root, e.g. "source"
	BinClassRoot    string // relative to Root, e.g. "build"
}

// SourceFile resolves a source-root relative path (org/x/Y.java) inside the checkout.
func (p ProjectContext) SourceFile(rel string) Path {
	return p.Root.Join(p.SourceClassRoot, rel)
}

// ReplacePath is the checkout-relative path of a source file, the form used in
// metadata rows and reranked keys.
func (p ProjectContext) ReplacePath(rel string) string {
	return filepath.ToSlash(filepath.Join(p.SourceClassRoot, rel))
}

// ClassFile resolves the compiled artifact that corresponds to a source-root
// relative path.
func (p ProjectContext) ClassFile(rel string) Path {
	return p.Root.Join(p.BinClassRoot, ClassName(rel))
}

// ClassName swaps the source extension of rel for ".class".
func ClassName(rel string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ".class"
}
