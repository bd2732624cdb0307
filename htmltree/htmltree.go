// Package htmltree provides validation helpers over parsed HTML trees.
//
// The helpers are pure functions on *html.Node: they report problems into
// a diag.Sink, never return errors and never panic, so a failing check
// lets the caller continue with whatever could be extracted.
package htmltree

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/planktonid/taxocard/diag"
)

// AttrKey returns the qualified name of an attribute, e.g. "xlink:href"
// for foreign attributes adjusted by the HTML parser.
func AttrKey(a html.Attribute) string {
	if a.Namespace != "" {
		return a.Namespace + ":" + a.Key
	}
	return a.Key
}

// Attr returns the value of the named attribute. Qualified names like
// "xlink:href" are matched against the attribute namespace.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if AttrKey(a) == name {
			return a.Val, true
		}
	}
	return "", false
}

// ID returns the element's id attribute, or "".
func ID(n *html.Node) string {
	v, _ := Attr(n, "id")
	return v
}

// Classes returns the whitespace-separated class values of n.
func Classes(n *html.Node) []string {
	v, ok := Attr(n, "class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// isBlank reports whether a node carries no visible content: comments and
// whitespace-only text.
func isBlank(n *html.Node) bool {
	switch n.Type {
	case html.CommentNode:
		return true
	case html.TextNode:
		return strings.TrimSpace(n.Data) == ""
	}
	return false
}

// Children returns the non-blank children of n in document order.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isBlank(c) {
			out = append(out, c)
		}
	}
	return out
}

// NthChild returns the i-th (0-based) non-blank child of n, or nil.
func NthChild(n *html.Node, i int) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBlank(c) {
			continue
		}
		if i == 0 {
			return c
		}
		i--
	}
	return nil
}

// IsElement reports whether n is an element with the given tag name.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

// Find returns the first descendant element with the given tag name, or
// nil.
func Find(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// Text returns the concatenated text content of n and its descendants.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// CheckAttrs verifies that the attribute keys of n are exactly the
// mandatory set, reporting missing and forbidden ones. It returns the
// values in the order the names were given (empty for missing ones) and
// whether the check passed.
func CheckAttrs(n *html.Node, sink *diag.Sink, mandatory ...string) ([]string, bool) {
	return checkAttrs(n, sink, mandatory, nil)
}

// CheckAttrsOpt verifies that every mandatory attribute is present and
// that no attribute outside mandatory and optional is.
func CheckAttrsOpt(n *html.Node, sink *diag.Sink, mandatory, optional []string) bool {
	_, ok := checkAttrs(n, sink, mandatory, optional)
	return ok
}

func checkAttrs(n *html.Node, sink *diag.Sink, mandatory, optional []string) ([]string, bool) {
	present := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		present[AttrKey(a)] = a.Val
	}
	ok := true
	values := make([]string, len(mandatory))
	var missing []string
	for i, name := range mandatory {
		v, found := present[name]
		if !found {
			missing = append(missing, name)
			continue
		}
		values[i] = v
	}
	if len(missing) > 0 {
		sink.Attributef(n, "mandatory attribute(s) missing: %v", missing)
		ok = false
	}
	allowed := make(map[string]bool, len(mandatory)+len(optional))
	for _, name := range mandatory {
		allowed[name] = true
	}
	for _, name := range optional {
		allowed[name] = true
	}
	var forbidden []string
	for _, a := range n.Attr {
		if !allowed[AttrKey(a)] {
			forbidden = append(forbidden, AttrKey(a))
		}
	}
	if len(forbidden) > 0 {
		sink.Attributef(n, "forbidden attribute(s): %v", forbidden)
		ok = false
	}
	return values, ok
}

// CheckSingleClass verifies that n carries exactly one attribute, class,
// with exactly one value equal to expected.
func CheckSingleClass(n *html.Node, sink *diag.Sink, expected string) bool {
	if len(n.Attr) != 1 || AttrKey(n.Attr[0]) != "class" {
		keys := make([]string, 0, len(n.Attr))
		for _, a := range n.Attr {
			keys = append(keys, AttrKey(a))
		}
		sink.Attributef(n, "attributes should be just [class], not %v", keys)
		return false
	}
	classes := Classes(n)
	if len(classes) != 1 {
		sink.Attributef(n, "there should be a single class, not %d", len(classes))
		return false
	}
	if classes[0] != expected {
		sink.Attributef(n, "class should be %q, not %q", expected, classes[0])
		return false
	}
	return true
}

// SingleChildOfTag verifies that n has exactly one non-blank child, an
// element of the required tag. Extra or missing children and wrong tags
// are reported, but a best-effort matching element is still returned when
// one exists anywhere among the children.
func SingleChildOfTag(n *html.Node, sink *diag.Sink, tag string) *html.Node {
	children := Children(n)
	if len(children) != 1 {
		sink.Structuralf(n, "should contain exactly one <%s>, found %d children", tag, len(children))
	} else if !IsElement(children[0], tag) {
		sink.Structuralf(n, "only child should be a <%s>", tag)
	}
	for _, c := range children {
		if IsElement(c, tag) {
			return c
		}
	}
	return nil
}

// TaggedChildren returns the children of n whose tag is in allowed,
// reporting every free text node and disallowed element.
func TaggedChildren(n *html.Node, sink *diag.Sink, allowed ...string) []*html.Node {
	var out []*html.Node
	for _, c := range Children(n) {
		if c.Type != html.ElementNode {
			sink.Contentf(c, "unexpected free text, only %v are allowed here", allowed)
			continue
		}
		found := false
		for _, tag := range allowed {
			if c.Data == tag {
				found = true
				break
			}
		}
		if !found {
			sink.Structuralf(c, "element not allowed, should be one of %v", allowed)
			continue
		}
		out = append(out, c)
	}
	return out
}
