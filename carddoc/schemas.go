package carddoc

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/planktonid/taxocard/htmltree"
	"github.com/planktonid/taxocard/model"
)

// readDescriptiveSchemas reads the per-view schemas, one child div per
// view. A repeated view name is reported and its last schema wins,
// keeping the original view position.
func (r *Reader) readDescriptiveSchemas(section *html.Node, card *model.Card) {
	htmltree.CheckSingleClass(section, r.sink, schemasClass)
	for _, div := range htmltree.TaggedChildren(section, r.sink, "div") {
		values, ok := htmltree.CheckAttrs(div, r.sink, viewNameAttr, instanceAttr, objectIDAttr)
		if !ok {
			continue
		}
		view := values[0]
		if _, seen := card.Schemas.Get(view); seen {
			r.sink.Structuralf(div, "view %q appears more than once", view)
		}
		schema := &model.DescriptiveSchema{}
		schema.Instance = values[1]
		schema.ObjectID = r.intAttr(div, objectIDAttr, values[2])
		if region := r.readSchemaDiv(div); region != nil {
			schema.Image = region.Image
			schema.Crop = region.Crop
			schema.Shapes = region.Shapes
			schema.Segments = region.Segments
			schema.Zooms = region.Zooms
		}
		card.Schemas.Set(view, schema)
	}
	if card.Schemas.Len() == 0 {
		r.sink.Structuralf(section, "card should describe at least one view")
	}
}

// readMoreExamples reads the extra annotated images. The view name is
// optional here since an example may not map to a canonical view.
func (r *Reader) readMoreExamples(section *html.Node, card *model.Card) {
	for _, div := range htmltree.TaggedChildren(section, r.sink, "div") {
		if !htmltree.CheckAttrsOpt(div, r.sink, []string{instanceAttr, objectIDAttr}, []string{viewNameAttr}) {
			continue
		}
		example := &model.AnnotatedSchema{}
		example.View, _ = htmltree.Attr(div, viewNameAttr)
		instance, _ := htmltree.Attr(div, instanceAttr)
		example.Instance = instance
		objectID, _ := htmltree.Attr(div, objectIDAttr)
		example.ObjectID = r.intAttr(div, objectIDAttr, objectID)
		if region := r.readSchemaDiv(div); region != nil {
			example.Image = region.Image
			example.Crop = region.Crop
			example.Shapes = region.Shapes
			example.Segments = region.Segments
			if len(region.Zooms) > 0 {
				r.sink.Structuralf(div, "zoom areas are only allowed in descriptive schemas")
			}
		}
		card.MoreExamples = append(card.MoreExamples, example)
	}
}

// readPhotosAndFigures reads the external photo links with their free
// text comments.
func (r *Reader) readPhotosAndFigures(section *html.Node, card *model.Card) {
	links := htmltree.TaggedChildren(section, r.sink, "a")
	if len(links) == 0 {
		r.sink.Structuralf(section, "section should contain at least one link")
	}
	for _, a := range links {
		if !htmltree.CheckAttrsOpt(a, r.sink, []string{"href"}, []string{"target"}) {
			continue
		}
		href, _ := htmltree.Attr(a, "href")
		card.PhotosAndFigures = append(card.PhotosAndFigures, model.CommentedLink{
			URL:     href,
			Comment: strings.TrimSpace(htmltree.Text(a)),
		})
	}
}
