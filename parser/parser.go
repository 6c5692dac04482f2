/*
Package parser defines the front-end contract (C7): the interfaces a
language front-end implements so the core can consume its output
without depending on any particular language toolchain. The core ships
no implementation of this package; front-ends are external
collaborators (§4.7).
*/
package parser

import (
	"context"
	"time"

	"github.com/anvanster/codegraph/ir"
)

/*
FileMetrics reports one front-end's outcome for a single file (§4.7).
*/
type FileMetrics struct {
	Path          string
	Attempted     bool
	Succeeded     bool
	Failed        bool
	Error         error
	Entities      int
	Relationships int
	Elapsed       time.Duration
}

/*
ProjectSummary aggregates FileMetrics across every file a front-end
processed, for upper-layer reporting (§4.7).
*/
type ProjectSummary struct {
	Files []FileMetrics
}

/*
Attempted returns the number of files the front-end attempted to parse.
*/
func (p ProjectSummary) Attempted() int {
	return len(p.Files)
}

/*
Succeeded returns the number of files the front-end parsed successfully.
*/
func (p ProjectSummary) Succeeded() int {
	n := 0
	for _, f := range p.Files {
		if f.Succeeded {
			n++
		}
	}
	return n
}

/*
Failed returns the metrics of every file that did not parse, for
reporting in a failed-files list (§7).
*/
func (p ProjectSummary) Failed() []FileMetrics {
	var out []FileMetrics
	for _, f := range p.Files {
		if f.Failed {
			out = append(out, f)
		}
	}
	return out
}

/*
SourceParser parses source text already read into memory, tagged with
the logical file path it came from (so front-ends that pre-read files,
or synthesize sources, don't need a real filesystem entry).
*/
type SourceParser interface {
	ParseSource(ctx context.Context, path string, source []byte) (ir.FileIR, error)
}

/*
FileParser parses one file from the filesystem into an IR.
*/
type FileParser interface {
	ParseFile(ctx context.Context, path string) (ir.FileIR, error)
}

/*
DirectoryParser is the optional recursive-directory entry point a
front-end may implement; it walks root, parses every file it recognizes
(via Language.Extensions), and returns a ProjectSummary alongside the
per-file IRs it produced.
*/
type DirectoryParser interface {
	ParseDirectory(ctx context.Context, root string) ([]ir.FileIR, ProjectSummary, error)
}

/*
Language identifies one front-end: its language name and the file
extensions it claims (§4.7). A front-end implements Language alongside
SourceParser and FileParser (and, optionally, DirectoryParser).
*/
type Language interface {
	Name() string
	Extensions() []string
}

/*
FrontEnd is the complete contract the core expects from a language
front-end. DirectoryParser is not embedded: a front-end may additionally
satisfy it, which callers detect with a type assertion
(`fe.(DirectoryParser)`).
*/
type FrontEnd interface {
	Language
	SourceParser
	FileParser
}
