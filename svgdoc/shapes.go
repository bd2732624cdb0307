package svgdoc

import (
	"math"
	"strings"

	"golang.org/x/net/html"

	"github.com/planktonid/taxocard/htmltree"
	"github.com/planktonid/taxocard/model"
	"github.com/planktonid/taxocard/svgdom"
)

// readShapes classifies and extracts the drawn shapes, in index order so
// the output list keeps the document order. Background and use entries
// are handled elsewhere.
func (r *Reader) readShapes(index *shapeIndex) []model.Shape {
	var shapes []model.Shape
	for _, id := range index.ids {
		node := index.nodes[id]
		var shape model.Shape
		switch node.Data {
		case "line":
			shape = r.lineShape(node)
		case "circle":
			shape = r.circleShape(node)
		case "path":
			shape = r.curvesShape(node)
		case "text":
			shape = r.numberShape(node)
		default:
			continue
		}
		shapes = append(shapes, shape)
	}
	return shapes
}

func (r *Reader) lineShape(node *html.Node) *model.Line {
	htmltree.CheckAttrsOpt(node, r.sink, lineAttrs, arrowOptional)
	label, _ := htmltree.Attr(node, labelAttr)
	arrow := r.arrowType(node, label)
	coords, err := svgdom.Floats(node, "x1", "y1", "x2", "y2")
	if err != nil {
		r.sink.Attributef(node, "line coordinates are invalid: %v", err)
		coords = []float64{0, 0, 0, 0}
	}
	from := model.Point{X: coords[0], Y: coords[1]}
	to := model.Point{X: coords[2], Y: coords[3]}
	// A leaning line has a bounding box of non-zero area.
	if math.Abs(from.X-to.X)*math.Abs(from.Y-to.Y) != 0 {
		r.sink.Contentf(node, "<line> should be horizontal or vertical")
	}
	return &model.Line{Label: label, Arrow: arrow, From: from, To: to}
}

func (r *Reader) circleShape(node *html.Node) *model.Circle {
	htmltree.CheckAttrs(node, r.sink, circleAttrs...)
	label, _ := htmltree.Attr(node, labelAttr)
	coords, err := svgdom.Floats(node, "cx", "cy", "r")
	if err != nil {
		r.sink.Attributef(node, "circle coordinates are invalid: %v", err)
		coords = []float64{0, 0, 0}
	}
	return &model.Circle{
		Label:  label,
		Center: model.Point{X: coords[0], Y: coords[1]},
		Radius: coords[2],
	}
}

func (r *Reader) curvesShape(node *html.Node) *model.Curves {
	htmltree.CheckAttrsOpt(node, r.sink, curveAttrs, arrowOptional)
	label, _ := htmltree.Attr(node, labelAttr)
	arrow := r.arrowType(node, label)
	pathData, _ := htmltree.Attr(node, "d")

	origin := model.Point{}
	commands, err := svgdom.ParsePath(pathData)
	switch {
	case err != nil:
		r.sink.Contentf(node, "path data cannot be parsed: %v", err)
	case len(commands) == 0 || !commands[0].IsMove():
		r.sink.Contentf(node, "curve should start with a move")
	default:
		origin = model.Point{X: commands[0].Args[0], Y: commands[0].Args[1]}
		parts := 0
		for _, command := range commands[1:] {
			switch {
			case command.IsLine():
				r.sink.Contentf(node, "curve contains a straight line command %q", string(command.Verb))
			case command.IsClose():
				r.sink.Contentf(node, "curve is closed")
			case command.IsMove():
				r.sink.Contentf(node, "curve is not continuous")
			case command.IsArc():
				r.sink.Contentf(node, "curve contains an arc")
			}
			if !command.Relative {
				r.sink.Contentf(node, "curve contains an absolute command %q", strings.ToUpper(string(command.Verb)))
			}
			parts++
		}
		if parts > r.opts.MaxCurveParts {
			r.sink.Contentf(node, "curve has too many parts: %d (max %d)", parts, r.opts.MaxCurveParts)
		}
	}
	return &model.Curves{Label: label, Arrow: arrow, Origin: origin, Moves: pathData}
}

func (r *Reader) numberShape(node *html.Node) *model.Number {
	htmltree.CheckAttrs(node, r.sink, numberAttrs...)
	coords, err := svgdom.Floats(node, "x", "y")
	if err != nil {
		r.sink.Attributef(node, "text coordinates are invalid: %v", err)
		coords = []float64{0, 0}
	}
	glyph := strings.TrimSpace(htmltree.Text(node))
	if !circledDigits[glyph] {
		r.sink.Contentf(node, "<text> content should be a circled digit, not %q", glyph)
	}
	return &model.Number{At: model.Point{X: coords[0], Y: coords[1]}, Glyph: glyph}
}

// arrowType derives the arrow decoration from the optional marker
// references, checking each referenced marker on the way.
func (r *Reader) arrowType(node *html.Node, label string) model.ArrowType {
	arrow := model.NoArrow
	if ref, ok := htmltree.Attr(node, "marker-start"); ok {
		arrow = model.ArrowStart
		r.checkMarker(node, label, ref)
	}
	if ref, ok := htmltree.Attr(node, "marker-end"); ok {
		if arrow == model.NoArrow {
			arrow = model.ArrowEnd
		} else {
			arrow = model.ArrowBoth
		}
		r.checkMarker(node, label, ref)
	}
	return arrow
}

// checkMarker verifies that the marker reference resolves and that the
// marker id is the shape label plus the triangle suffix.
func (r *Reader) checkMarker(node *html.Node, label, ref string) {
	marker := r.defs.ByURL(ref)
	if marker == nil {
		r.sink.Referencef(node, "marker reference %q is invalid", ref)
		return
	}
	if id := htmltree.ID(marker); id != label+markerSuffix {
		r.sink.Referencef(node, "marker id %q should be the shape label plus %q", id, markerSuffix)
	}
}
