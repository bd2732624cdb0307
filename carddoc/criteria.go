package carddoc

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/rangetable"

	"github.com/planktonid/taxocard/htmltree"
	"github.com/planktonid/taxocard/model"
)

// forbiddenRunes covers pictographic characters that have no place in the
// criteria prose: miscellaneous symbols, dingbats and the emoji planes.
var forbiddenRunes = rangetable.Merge(
	&unicode.RangeTable{R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1},
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1},
	}},
	&unicode.RangeTable{R32: []unicode.Range32{
		{Lo: 0x1F000, Hi: 0x1FAFF, Stride: 1},
	}},
)

// readCriteria validates the identification criteria article and returns
// its text. The text is collected even from a malformed article so the
// card keeps whatever prose was written.
func (r *Reader) readCriteria(article *html.Node) model.IdentificationCriteria {
	htmltree.CheckSingleClass(article, r.sink, criteriaClass)
	for _, child := range htmltree.TaggedChildren(article, r.sink, "p", "ul") {
		switch child.Data {
		case "p":
			r.checkParagraph(child)
		case "ul":
			r.checkList(child)
		}
	}
	return model.IdentificationCriteria{Text: strings.TrimSpace(htmltree.Text(article))}
}

// checkParagraph accepts plain text with <em> and <strong> emphasis, and
// nothing else.
func (r *Reader) checkParagraph(p *html.Node) {
	for _, content := range htmltree.Children(p) {
		switch {
		case content.Type == html.TextNode:
			r.checkPlainText(content, content.Data)
		case htmltree.IsElement(content, "em") || htmltree.IsElement(content, "strong"):
			r.checkPlainText(content, htmltree.Text(content))
		default:
			r.sink.Structuralf(content, "only text, <em> and <strong> are allowed in a paragraph")
		}
	}
}

// checkList validates a non-empty bullet list, each entry holding
// paragraph-grade content.
func (r *Reader) checkList(ul *html.Node) {
	items := htmltree.TaggedChildren(ul, r.sink, "li")
	if len(items) == 0 {
		r.sink.Structuralf(ul, "list should have at least one <li>")
	}
	for _, li := range items {
		r.checkParagraph(li)
	}
}

func (r *Reader) checkPlainText(n *html.Node, text string) {
	for _, ru := range text {
		if unicode.Is(forbiddenRunes, ru) {
			r.sink.Contentf(n, "pictographic character %q is not allowed in criteria text", ru)
		}
	}
}
