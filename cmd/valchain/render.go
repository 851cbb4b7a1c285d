package main

import (
	"fmt"
	"strings"

	"github.com/reoring/valchain"
)

// renderTree prints the report as an indented tree, one message per line:
//
//	address
//	  city
//	    - may not be null
//	items
//	  #2
//	    - must be odd
func renderTree(vs []valchain.Violation) string {
	b := &strings.Builder{}
	if len(vs) == 0 {
		b.WriteString(successStyle.Render("no violations"))
		b.WriteByte('\n')
		return b.String()
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d violation(s), %d message(s)", len(vs), len(valchain.Flatten(vs)))))
	b.WriteByte('\n')
	writeNodes(b, "", vs, 0)
	return b.String()
}

func writeNodes(b *strings.Builder, parent string, vs []valchain.Violation, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, v := range vs {
		b.WriteString(indent)
		b.WriteString(nodeLabel(parent, v))
		b.WriteByte('\n')
		if v.IsLeaf() {
			for _, msg := range v.Errors() {
				b.WriteString(indent)
				b.WriteString("  - ")
				b.WriteString(messageStyle.Render(msg))
				b.WriteByte('\n')
			}
			continue
		}
		writeNodes(b, v.Field(), v.Violations(), depth+1)
	}
}

// nodeLabel names a node; an indexed child repeating its parent's name shows
// only the position.
func nodeLabel(parent string, v valchain.Violation) string {
	i, ok := v.Index()
	switch {
	case !ok:
		return fieldStyle.Render(v.Field())
	case v.Field() == parent:
		return indexStyle.Render(fmt.Sprintf("#%d", i))
	default:
		return fieldStyle.Render(v.Field()) + indexStyle.Render(fmt.Sprintf("#%d", i))
	}
}
