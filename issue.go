package valchain

import (
	"fmt"
	"strings"
)

// Issue is a single violation message addressed by JSON Pointer. It is the
// flat rendition of a leaf in the violation tree.
type Issue struct {
	Path    string `json:"path" yaml:"path"` // JSON Pointer (for example: /address/city).
	Message string `json:"message" yaml:"message"`
}

// Issues is a flat collection of violation messages that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. /age: must be at least 18
		fmt.Fprintf(b, "%s: %s", it.Path, it.Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Paths returns the distinct pointers in first-seen order.
func (iss Issues) Paths() []string {
	var out []string
	seen := map[string]struct{}{}
	for _, it := range iss {
		if _, ok := seen[it.Path]; ok {
			continue
		}
		seen[it.Path] = struct{}{}
		out = append(out, it.Path)
	}
	return out
}

// Get returns the messages reported at the given pointer.
func (iss Issues) Get(path string) []string {
	var out []string
	for _, it := range iss {
		if it.Path == path {
			out = append(out, it.Message)
		}
	}
	return out
}

// Flatten walks the violation tree and emits one Issue per leaf message, in
// declaration order.
func Flatten(vs []Violation) Issues {
	var out Issues
	flatten(Root(), "", vs, &out)
	return out
}

func flatten(base PathRef, parent string, vs []Violation, out *Issues) {
	for _, v := range vs {
		ref := refFor(base, parent, v)
		if v.IsLeaf() {
			for _, msg := range v.errors {
				*out = append(*out, ref.Issue(msg))
			}
			continue
		}
		flatten(ref, v.Field(), v.violations, out)
	}
}
