package carddoc

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/planktonid/taxocard/diag"
	"github.com/planktonid/taxocard/htmltree"
	"github.com/planktonid/taxocard/model"
	"github.com/planktonid/taxocard/svgdoc"
	"github.com/planktonid/taxocard/svgdom"
)

// Identity attributes of the card body.
const (
	taxoIDAttr       = "data-taxoid"
	instrumentIDAttr = "data-instrumentid"
)

// Section classes, in the order the body must present them.
const (
	templatesClass      = "svg-templates"
	criteriaClass       = "morpho-criteria"
	schemasClass        = "descriptive-schemas"
	moreExamplesClass   = "more-examples"
	photosClass         = "photos-and-figures"
	confusionsClass     = "possible-confusions"
	confusionPairClass  = "confusion-pair"
	confusionSelfClass  = "confusion-self"
	confusionOtherClass = "confusion-other"
)

// Per-schema attributes.
const (
	viewNameAttr = "data-view-name"
	instanceAttr = "data-instance"
	objectIDAttr = "data-object-id"
)

// ReadOptions holds the configuration of one read.
type ReadOptions struct {
	// SVG are the numeric rules applied to every schema region.
	SVG svgdoc.Options
}

// DefaultReadOptions returns the rules of the current card revision.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{SVG: svgdoc.DefaultOptions()}
}

// Reader reads one card document. Each call to Read produces its own
// isolated card and diagnostic list.
type Reader struct {
	doc  *html.Node
	opts ReadOptions

	// read-pass state, reset by Read
	sink *diag.Sink
	defs *svgdom.Defs
}

// Open reads and parses an HTML card file. The file handle is released
// before validation begins.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening card: %w", err)
	}
	defer f.Close()
	return OpenReader(f)
}

// OpenReader parses an HTML card from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	decoded, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("decoding card: %w", err)
	}
	doc, err := html.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("parsing card: %w", err)
	}
	return &Reader{doc: doc, opts: DefaultReadOptions()}, nil
}

// SetOptions replaces the read configuration.
func (r *Reader) SetOptions(opts ReadOptions) {
	r.opts = opts
}

// Read validates the document and assembles the card. The returned card
// is always usable; callers decide whether the diagnostics make it an
// unacceptable document.
func (r *Reader) Read() (*model.Card, []diag.Diagnostic) {
	r.sink = diag.NewSink()
	r.defs = svgdom.CollectDefs(nil)
	card := model.NewCard()

	body := htmltree.Find(r.doc, "body")
	if body == nil {
		r.sink.Structuralf(nil, "card has no <body>")
		return card, r.sink.Errors()
	}
	r.readMeta(body, card)
	r.readBody(body, card)
	return card, r.sink.Errors()
}

// readMeta extracts the card identity from the body attributes.
func (r *Reader) readMeta(body *html.Node, card *model.Card) {
	values, ok := htmltree.CheckAttrs(body, r.sink, taxoIDAttr, instrumentIDAttr)
	if !ok {
		return
	}
	card.TaxoID = r.intAttr(body, taxoIDAttr, values[0])
	card.InstrumentID = values[1]
}

// readBody validates the fixed section order and dispatches each section
// to its reader. A wrong tag at a required position is reported and the
// slot is treated as missing.
func (r *Reader) readBody(body *html.Node, card *model.Card) {
	children := htmltree.Children(body)
	if len(children) < 3 {
		r.sink.Structuralf(body, "card body should have at least 3 sections, found %d", len(children))
	}

	if n := childAt(children, 0); n != nil {
		if htmltree.IsElement(n, "svg") {
			r.readTemplates(n)
		} else {
			r.sink.Structuralf(n, "first element in <body> should be a <svg>")
		}
	}
	if n := childAt(children, 1); n != nil {
		if htmltree.IsElement(n, "article") {
			card.Criteria = r.readCriteria(n)
		} else {
			r.sink.Structuralf(n, "second element in <body> should be an <article>")
		}
	}
	if n := childAt(children, 2); n != nil {
		if htmltree.IsElement(n, "div") {
			r.readDescriptiveSchemas(n, card)
		} else {
			r.sink.Structuralf(n, "third element in <body> should be a <div>")
		}
	}

	// Optional sections follow in a fixed relative order; absent ones
	// are skipped, out-of-order or unknown ones are reported.
	expected := []string{moreExamplesClass, photosClass, confusionsClass}
	pos := 0
	for i := 3; i < len(children); i++ {
		section := children[i]
		if !htmltree.IsElement(section, "div") {
			r.sink.Structuralf(section, "unexpected element after the main sections")
			continue
		}
		classes := htmltree.Classes(section)
		if len(classes) != 1 {
			r.sink.Attributef(section, "section <div> should carry exactly one class, not %d", len(classes))
			continue
		}
		offset := indexOf(expected[pos:], classes[0])
		if offset < 0 {
			r.sink.Structuralf(section, "unexpected section class %q, expected one of %v", classes[0], expected[pos:])
			continue
		}
		pos += offset
		switch expected[pos] {
		case moreExamplesClass:
			r.readMoreExamples(section, card)
		case photosClass:
			r.readPhotosAndFigures(section, card)
		case confusionsClass:
			r.readConfusions(section, card)
		}
		pos++
	}
}

// readTemplates indexes the document-level defs so marker and symbol
// references resolve in every schema.
func (r *Reader) readTemplates(templates *html.Node) {
	htmltree.CheckSingleClass(templates, r.sink, templatesClass)
	if defs := htmltree.SingleChildOfTag(templates, r.sink, "defs"); defs != nil {
		r.defs = svgdom.CollectDefs(defs)
	}
}

// readSchemaDiv hands the single <svg> child of a schema div to the SVG
// reader. Schemas must not carry their own defs.
func (r *Reader) readSchemaDiv(div *html.Node) *svgdoc.Region {
	svg := htmltree.SingleChildOfTag(div, r.sink, "svg")
	if svg == nil {
		return nil
	}
	if defs := htmltree.Find(svg, "defs"); defs != nil {
		r.sink.Structuralf(defs, "<defs> should be grouped in the document-level <svg>")
	}
	return svgdoc.NewReader(svg, r.defs, r.sink, r.opts.SVG).Read()
}

// intAttr converts an attribute value to an integer, reporting failures
// and substituting -1.
func (r *Reader) intAttr(n *html.Node, name, value string) int {
	id, err := strconv.Atoi(value)
	if err != nil {
		r.sink.Attributef(n, "%s should be an integer, not %q", name, value)
		return -1
	}
	return id
}

func childAt(children []*html.Node, i int) *html.Node {
	if i >= len(children) {
		return nil
	}
	return children[i]
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}
