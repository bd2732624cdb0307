package svgdoc

import (
	"golang.org/x/net/html"

	"github.com/planktonid/taxocard/htmltree"
	"github.com/planktonid/taxocard/model"
	"github.com/planktonid/taxocard/svgdom"
)

// readImage locates the background image of the region, decodes it and
// checks that the declared and physical dimensions agree. It returns the
// raw bytes and the image pixel height, the base of the coordinate
// system. On unrecoverable failure both come back zero.
func (r *Reader) readImage(index *shapeIndex, crop model.CropArea) ([]byte, int) {
	var nested []*html.Node
	for _, id := range index.ids {
		if node := index.nodes[id]; htmltree.IsElement(node, "svg") {
			nested = append(nested, node)
		}
	}
	if len(nested) != 1 {
		r.sink.Structuralf(r.svg, "exactly one background <svg> is expected, found %d", len(nested))
		return nil, 0
	}
	background := nested[0]
	htmltree.CheckAttrs(background, r.sink, bgSVGAttrs...)
	if class, ok := htmltree.Attr(background, "class"); ok && class != backgroundClass {
		r.sink.Attributef(background, "background <svg> class should be %q, not %q", backgroundClass, class)
	}

	imageElem := htmltree.SingleChildOfTag(background, r.sink, "image")
	if imageElem == nil {
		return nil, 0
	}
	htmltree.CheckAttrsOpt(imageElem, r.sink, imageAttrs, imageOptional)

	raster, err := svgdom.DecodeImageElement(imageElem)
	if err != nil {
		r.sink.Contentf(imageElem, "embedded image cannot be decoded: %v", err)
		return nil, 0
	}
	imgW, imgH := float64(raster.Width), float64(raster.Height)

	// Declared <image> size must match the physical pixels.
	declW, errW := svgdom.Float(imageElem, "width")
	declH, errH := svgdom.Float(imageElem, "height")
	if errW != nil || errH != nil {
		r.sink.Attributef(imageElem, "image dimensions are invalid")
	} else if declW != imgW || declH != imgH {
		r.sink.Consistencyf(imageElem, "size differs between <image> (%gx%g) and physical image (%gx%g)",
			declW, declH, imgW, imgH)
	}

	// The image anchors the coordinate system at the origin, unrotated.
	x, errX := svgdom.FloatOr(imageElem, "x", 0)
	y, errY := svgdom.FloatOr(imageElem, "y", 0)
	if errX == nil && errY == nil && (x != 0 || y != 0) {
		r.sink.Consistencyf(imageElem, "image should be at (0,0), not (%g,%g)", x, y)
	}
	if transform, ok := htmltree.Attr(imageElem, "transform"); ok {
		if ops, err := svgdom.ParseTransform(transform); err == nil {
			for _, op := range ops {
				if angle, _, isRotate := op.Rotation(); isRotate && angle != 0 {
					r.sink.Consistencyf(imageElem, "image should not be rotated")
					break
				}
			}
		}
	}

	// A non-zero crop offset means the wrapping <svg> was enlarged to
	// accommodate it; otherwise it matches the bare image size.
	expectedW, expectedH := imgW, imgH
	if crop.X != 0 || crop.Y != 0 {
		expectedW, expectedH = imgW+crop.X, imgH+crop.Y
	}
	bgW, errW := svgdom.Float(background, "width")
	bgH, errH := svgdom.Float(background, "height")
	if errW != nil || errH != nil {
		r.sink.Attributef(background, "background dimensions are invalid")
	} else if bgW != expectedW || bgH != expectedH {
		r.sink.Consistencyf(background, "size differs between background <svg> (%gx%g) and image plus crop offset (%gx%g)",
			bgW, bgH, expectedW, expectedH)
	}

	if crop.Width > imgW || crop.Height > imgH {
		r.sink.Consistencyf(r.svg, "crop area %gx%g exceeds the image size %gx%g",
			crop.Width, crop.Height, imgW, imgH)
	}
	return raster.Data, raster.Height
}
