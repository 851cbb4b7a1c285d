package valchain

import (
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(msg string) Issue
}

// Root returns an empty PathRef ("/").
func Root() PathRef { return &pathRef{parts: nil} }

// At parses a JSON Pointer into a PathRef. Segments are kept as written.
func At(path string) PathRef {
	if path == "" || path == "/" {
		return Root()
	}
	parts := []string{}
	for _, p := range strings.Split(path, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return &pathRef{parts: parts}
}

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return &pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Issue(msg string) Issue {
	return Issue{Path: p.Pointer(), Message: msg}
}

// refFor extends base with the node's field name and, for indexed nodes, its
// element position. An indexed node whose name repeats its parent's (the
// EachIndexed shape) only contributes the position.
func refFor(base PathRef, parent string, v Violation) PathRef {
	i, indexed := v.Index()
	if !indexed {
		return base.Field(v.Field())
	}
	if v.Field() != parent {
		base = base.Field(v.Field())
	}
	return base.Index(i)
}
