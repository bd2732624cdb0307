package svgdom

import (
	"errors"
	"strings"

	"golang.org/x/net/html"

	"github.com/planktonid/taxocard/htmltree"
)

// Resolution errors.
var (
	ErrUnresolvedRef = errors.New("svgdom: reference does not resolve to a symbol")
	ErrNotGroup      = errors.New("svgdom: symbol expansion is not a group")
)

// Defs indexes the reusable elements of a card (markers, symbols) by id.
type Defs struct {
	byID map[string]*html.Node
}

// CollectDefs walks the given defs root and indexes every element
// carrying an id. A nil root yields an empty, usable index.
func CollectDefs(root *html.Node) *Defs {
	d := &Defs{byID: make(map[string]*html.Node)}
	if root == nil {
		return d
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := htmltree.ID(n); id != "" {
				if _, dup := d.byID[id]; !dup {
					d.byID[id] = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return d
}

// ByID returns the definition with the given id, or nil.
func (d *Defs) ByID(id string) *html.Node {
	return d.byID[id]
}

// ByURL resolves a url(#id) or #id reference, or returns nil.
func (d *Defs) ByURL(ref string) *html.Node {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "url(") && strings.HasSuffix(ref, ")") {
		ref = strings.Trim(ref[4:len(ref)-1], `'" `)
	}
	if !strings.HasPrefix(ref, "#") {
		return nil
	}
	return d.byID[ref[1:]]
}

// ResolveUse resolves a <use> element to its referenced symbol and the
// symbol's expanded group. The symbol is returned even when its expansion
// is not a group, so callers can still derive a label from it.
func (d *Defs) ResolveUse(use *html.Node) (symbol, group *html.Node, err error) {
	href, ok := htmltree.Attr(use, "xlink:href")
	if !ok {
		href, ok = htmltree.Attr(use, "href")
	}
	if !ok {
		return nil, nil, ErrUnresolvedRef
	}
	ref := href
	if !strings.HasPrefix(ref, "#") {
		return nil, nil, ErrUnresolvedRef
	}
	symbol = d.byID[ref[1:]]
	if symbol == nil || !htmltree.IsElement(symbol, "symbol") {
		return nil, nil, ErrUnresolvedRef
	}
	children := htmltree.Children(symbol)
	if len(children) != 1 || !htmltree.IsElement(children[0], "g") {
		return symbol, nil, ErrNotGroup
	}
	return symbol, children[0], nil
}
