package carddoc

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/planktonid/taxocard/htmltree"
	"github.com/planktonid/taxocard/model"
)

// readConfusions reads the possible-confusions section: one pair div per
// confused taxon, each pair holding the card's own side then the other
// taxon's side.
func (r *Reader) readConfusions(section *html.Node, card *model.Card) {
	for _, pair := range htmltree.TaggedChildren(section, r.sink, "div") {
		htmltree.CheckSingleClass(pair, r.sink, confusionPairClass)
		sides := htmltree.TaggedChildren(pair, r.sink, "div")
		if len(sides) != 2 {
			r.sink.Structuralf(pair, "confusion should have exactly 2 sides, found %d", len(sides))
			continue
		}
		confusion := &model.Confusion{OtherTaxoID: -1, OtherInstrumentID: "?"}

		htmltree.CheckSingleClass(sides[0], r.sink, confusionSelfClass)
		confusion.Self = r.confusionSide(sides[0])

		values, ok := htmltree.CheckAttrs(sides[1], r.sink, "class", taxoIDAttr, instrumentIDAttr)
		if ok {
			if values[0] != confusionOtherClass {
				r.sink.Attributef(sides[1], "class should be %q, not %q", confusionOtherClass, values[0])
			}
			confusion.OtherTaxoID = r.intAttr(sides[1], taxoIDAttr, values[1])
			confusion.OtherInstrumentID = values[2]
		}
		confusion.Other = r.confusionSide(sides[1])

		card.Confusions = append(card.Confusions, confusion)
	}
}

// confusionSide reads one side of a pair: an annotated schema followed by
// the numbered explanations, one per marked line.
func (r *Reader) confusionSide(side *html.Node) *model.ConfusionSchema {
	schema := &model.ConfusionSchema{}
	children := htmltree.Children(side)
	if len(children) != 2 {
		r.sink.Structuralf(side, "confusion side should contain a schema <div> and an <ol>, found %d children", len(children))
	}

	var schemaDiv, list *html.Node
	for _, c := range children {
		switch {
		case htmltree.IsElement(c, "div") && schemaDiv == nil:
			schemaDiv = c
		case htmltree.IsElement(c, "ol") && list == nil:
			list = c
		default:
			r.sink.Structuralf(c, "element not allowed in a confusion side")
		}
	}

	if schemaDiv != nil {
		values, ok := htmltree.CheckAttrs(schemaDiv, r.sink, instanceAttr, objectIDAttr)
		if ok {
			schema.Instance = values[0]
			schema.ObjectID = r.intAttr(schemaDiv, objectIDAttr, values[1])
		}
		if region := r.readSchemaDiv(schemaDiv); region != nil {
			schema.Image = region.Image
			schema.Crop = region.Crop
			for _, shape := range region.Shapes {
				switch s := shape.(type) {
				case *model.Line:
					schema.Lines = append(schema.Lines, s)
				case *model.Number:
					schema.Numbers = append(schema.Numbers, s)
				default:
					r.sink.Structuralf(schemaDiv, "confusion schemas should only draw lines and numbers")
				}
			}
			if len(region.Segments) > 0 || len(region.Zooms) > 0 {
				r.sink.Structuralf(schemaDiv, "segments and zoom areas are not allowed in confusion schemas")
			}
		}
	}

	if list != nil {
		for _, li := range htmltree.TaggedChildren(list, r.sink, "li") {
			r.checkParagraph(li)
			schema.Texts = append(schema.Texts, strings.TrimSpace(htmltree.Text(li)))
		}
	}

	if len(schema.Lines) != len(schema.Texts) {
		r.sink.Consistencyf(side, "%d marked line(s) but %d explanation(s)", len(schema.Lines), len(schema.Texts))
	}
	return schema
}
