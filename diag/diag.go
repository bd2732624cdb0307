// Package diag accumulates structured validation diagnostics for a single
// card read.
//
// A [Sink] never aborts control flow: validators report into it and keep
// going with a best-effort placeholder. One Sink serves exactly one read
// session; the resulting list is ordered by traversal order and never
// deduplicated.
package diag

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Category classifies a diagnostic by the kind of rule it violates.
type Category int

const (
	// Structure covers wrong, missing, duplicate or misordered elements.
	Structure Category = iota
	// Attribute covers missing mandatory attributes, forbidden extras and
	// type-conversion failures.
	Attribute
	// Content covers forbidden characters, disallowed nested tags and
	// illegal geometry (leaning lines, disallowed curve commands or
	// rotation angles).
	Content
	// Reference covers dangling or mismatched marker and symbol references.
	Reference
	// Consistency covers numeric cross-checks: image dimensions, font
	// size, confusion shape/text counts.
	Consistency
)

func (c Category) String() string {
	switch c {
	case Structure:
		return "structure"
	case Attribute:
		return "attribute"
	case Content:
		return "content"
	case Reference:
		return "reference"
	case Consistency:
		return "consistency"
	default:
		return "unknown"
	}
}

// Diagnostic is one recorded rule violation.
type Diagnostic struct {
	Category Category
	Message  string
}

func (d Diagnostic) String() string {
	return d.Category.String() + ": " + d.Message
}

// Sink collects diagnostics in traversal order.
type Sink struct {
	diags []Diagnostic
}

// NewSink creates an empty sink for one read session.
func NewSink() *Sink {
	return &Sink{}
}

// Report records a formatted diagnostic located at n. The node may be nil
// when no better location exists.
func (s *Sink) Report(cat Category, n *html.Node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if loc := Location(n); loc != "" {
		msg = loc + ": " + msg
	}
	s.diags = append(s.diags, Diagnostic{Category: cat, Message: msg})
}

// Structuralf reports a Structure diagnostic.
func (s *Sink) Structuralf(n *html.Node, format string, args ...any) {
	s.Report(Structure, n, format, args...)
}

// Attributef reports an Attribute diagnostic.
func (s *Sink) Attributef(n *html.Node, format string, args ...any) {
	s.Report(Attribute, n, format, args...)
}

// Contentf reports a Content diagnostic.
func (s *Sink) Contentf(n *html.Node, format string, args ...any) {
	s.Report(Content, n, format, args...)
}

// Referencef reports a Reference diagnostic.
func (s *Sink) Referencef(n *html.Node, format string, args ...any) {
	s.Report(Reference, n, format, args...)
}

// Consistencyf reports a Consistency diagnostic.
func (s *Sink) Consistencyf(n *html.Node, format string, args ...any) {
	s.Report(Consistency, n, format, args...)
}

// Errors returns the accumulated diagnostics in report order.
func (s *Sink) Errors() []Diagnostic {
	return s.diags
}

// Len returns the number of accumulated diagnostics.
func (s *Sink) Len() int {
	return len(s.diags)
}

// Location renders a human-readable position for a node: the tag name plus
// id or class for elements, a trimmed excerpt for text nodes.
func Location(n *html.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case html.ElementNode:
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "id" {
				return fmt.Sprintf("tag <%s#%s>", n.Data, a.Val)
			}
		}
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "class" {
				return fmt.Sprintf("tag <%s.%s>", n.Data, strings.Join(strings.Fields(a.Val), "."))
			}
		}
		return fmt.Sprintf("tag <%s>", n.Data)
	case html.TextNode:
		excerpt := strings.Join(strings.Fields(n.Data), " ")
		if runes := []rune(excerpt); len(runes) > 40 {
			excerpt = string(runes[:40]) + "..."
		}
		return fmt.Sprintf("near %q", excerpt)
	}
	return ""
}
