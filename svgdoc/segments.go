package svgdoc

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/planktonid/taxocard/htmltree"
	"github.com/planktonid/taxocard/model"
	"github.com/planktonid/taxocard/svgdom"
)

// readSegments extracts a segment from every <use> entry of the index.
// The label comes from the referenced symbol; the rectangle comes from
// the markup attributes, since the use indirection carries no resolved
// coordinates.
func (r *Reader) readSegments(index *shapeIndex) []model.Segment {
	var segments []model.Segment
	for _, id := range index.ids {
		node := index.nodes[id]
		if !htmltree.IsElement(node, "use") {
			continue
		}
		segments = append(segments, r.segment(node))
	}
	return segments
}

func (r *Reader) segment(node *html.Node) model.Segment {
	htmltree.CheckAttrsOpt(node, r.sink, segmentAttrs, segmentOptional)

	symbol, _, err := r.defs.ResolveUse(node)
	if err != nil {
		r.sink.Referencef(node, "cannot resolve <use> reference: %v", err)
	}
	label := "?"
	if symbol != nil {
		symbolID := htmltree.ID(symbol)
		if strings.HasSuffix(symbolID, segmentSuffix) {
			label = strings.TrimSuffix(symbolID, segmentSuffix)
		} else {
			r.sink.Referencef(node, "symbol id %q should end with %q", symbolID, segmentSuffix)
		}
	}

	coords, err := svgdom.Floats(node, "x", "y", "width", "height")
	if err != nil {
		r.sink.Attributef(node, "segment coordinates are invalid: %v", err)
		coords = []float64{0, 0, 0, 0}
	}
	box := model.NewRect(coords[0], coords[1], coords[2], coords[3])
	rotation := r.segmentRotation(node, box)
	return model.Segment{Label: label, Box: box, Rotation: rotation}
}

// segmentRotation validates the transform attribute: at most one rotate,
// nothing else, with an allowed angle pivoting on the rectangle center.
func (r *Reader) segmentRotation(node *html.Node, box model.Rect) float64 {
	transform, ok := htmltree.Attr(node, "transform")
	if !ok {
		return 0
	}
	ops, err := svgdom.ParseTransform(transform)
	if err != nil {
		r.sink.Contentf(node, "transform cannot be parsed: %v", err)
		return 0
	}
	angle := 0.0
	seenRotate := false
	for _, op := range ops {
		if op.Name != "rotate" {
			r.sink.Contentf(node, "transform operation %q is not allowed, only rotate is", op.Name)
			continue
		}
		opAngle, center, ok := op.Rotation()
		if !ok {
			r.sink.Contentf(node, "rotate should have 1 or 3 parameters, not %d", len(op.Args))
			continue
		}
		if seenRotate {
			r.sink.Contentf(node, "transform should contain at most one rotate")
			continue
		}
		seenRotate = true
		angle = opAngle
		if opAngle != 0 {
			if !r.angleAllowed(opAngle) {
				r.sink.Contentf(node, "rotate angle should be one of %v, not %g", r.opts.AllowedAngles, opAngle)
			}
			if expected := box.Center(); center != expected {
				r.sink.Contentf(node, "rotate center should be (%g,%g), not (%g,%g)",
					expected.X, expected.Y, center.X, center.Y)
			}
		}
	}
	return angle
}

func (r *Reader) angleAllowed(angle float64) bool {
	for _, allowed := range r.opts.AllowedAngles {
		if angle == allowed {
			return true
		}
	}
	return false
}
