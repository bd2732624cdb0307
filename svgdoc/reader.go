package svgdoc

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/planktonid/taxocard/diag"
	"github.com/planktonid/taxocard/htmltree"
	"github.com/planktonid/taxocard/model"
	"github.com/planktonid/taxocard/svgdom"
)

// Attribute and class names of the schema dialect.
const (
	labelAttr       = "data-label"
	backgroundClass = "background"
	shapesClass     = "shapes"
	zoomsClass      = "zooms"
	markerSuffix    = "_triangle"
	segmentSuffix   = "_segment"
)

// Attribute contracts, one per element kind.
var (
	topSVGAttrs = []string{"xmlns", "viewBox", "font-size", "xmlns:xlink", "version", "baseProfile"}

	bgSVGAttrs    = []string{"class", "id", "width", "height"}
	imageAttrs    = []string{"width", "height", "xlink:href"}
	imageOptional = []string{"x", "y", "transform"}

	lineAttrs     = []string{"id", labelAttr, "x1", "y1", "x2", "y2"}
	circleAttrs   = []string{"id", labelAttr, "r", "cx", "cy"}
	curveAttrs    = []string{"id", labelAttr, "d"}
	numberAttrs   = []string{"id", "x", "y"}
	arrowOptional = []string{"marker-start", "marker-end"}

	segmentAttrs    = []string{"id", "x", "y", "width", "height", "xlink:href"}
	segmentOptional = []string{"transform"}

	zoomAttrs = []string{"id", "x", "y", "width", "height"}
)

// circledDigits is the glyph allow-list for Number shapes.
var circledDigits = map[string]bool{
	"①": true, "②": true, "③": true,
	"④": true, "⑤": true, "⑥": true,
	"⑦": true, "⑧": true, "⑨": true,
}

// Region is the extracted content of one schema <svg>.
type Region struct {
	Crop        model.CropArea
	Image       []byte
	ImageHeight int
	Shapes      []model.Shape
	Segments    []model.Segment
	Zooms       []model.ZoomArea
}

// Reader validates one SVG schema region.
type Reader struct {
	svg  *html.Node
	defs *svgdom.Defs
	sink *diag.Sink
	opts Options
}

// NewReader creates a reader for the given <svg> element. Marker and
// symbol references resolve against the document-level defs index.
func NewReader(svg *html.Node, defs *svgdom.Defs, sink *diag.Sink, opts Options) *Reader {
	return &Reader{svg: svg, defs: defs, sink: sink, opts: opts.clone()}
}

// Read validates the whole region and returns its extracted content.
func (r *Reader) Read() *Region {
	region := &Region{Crop: model.CropArea(model.NewRect(0, 0, 100, 100))}
	crop, ok := r.readCrop()
	if !ok {
		// Without the mandatory top-level attributes the coordinate
		// system is unusable, keep the default crop and give up on the
		// rest of the region.
		return region
	}
	region.Crop = crop
	fontSize := r.readFontSize()
	shapesGroup, zoomsGroup := r.readGroups()
	if shapesGroup != nil {
		index := r.indexShapes(shapesGroup)
		region.Image, region.ImageHeight = r.readImage(index, crop)
		r.checkFontSize(fontSize, region.ImageHeight)
		region.Shapes = r.readShapes(index)
		region.Segments = r.readSegments(index)
	}
	if zoomsGroup != nil {
		region.Zooms = r.readZooms(zoomsGroup)
	}
	return region
}

// readCrop checks the top-level attribute contract and parses the
// viewBox into the crop area.
func (r *Reader) readCrop() (model.CropArea, bool) {
	fallback := model.CropArea(model.NewRect(0, 0, 100, 100))
	values, ok := htmltree.CheckAttrs(r.svg, r.sink, topSVGAttrs...)
	if !ok {
		return fallback, false
	}
	viewBox, err := svgdom.ParseViewBox(values[1])
	if err != nil {
		r.sink.Attributef(r.svg, "viewBox is invalid: %v", err)
		return fallback, false
	}
	return model.CropArea(viewBox), true
}

// readFontSize parses the declared font size. Non-numeric values yield
// zero, flagged later by the consistency check.
func (r *Reader) readFontSize() int {
	value, _ := htmltree.Attr(r.svg, "font-size")
	size, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return size
}

// readGroups validates the group layout: exactly one or two <g>, the
// first classed "shapes", the second (if any) "zooms". A missing or
// misclassified group comes back nil and its output list stays empty.
func (r *Reader) readGroups() (shapesGroup, zoomsGroup *html.Node) {
	children := htmltree.Children(r.svg)
	if len(children) < 1 || len(children) > 2 {
		r.sink.Structuralf(r.svg, "schema <svg> should contain one or two <g>, found %d children", len(children))
	}
	if len(children) >= 1 {
		if htmltree.IsElement(children[0], "g") {
			if htmltree.CheckSingleClass(children[0], r.sink, shapesClass) {
				shapesGroup = children[0]
			}
		} else {
			r.sink.Structuralf(children[0], "first child of schema <svg> should be a <g>")
		}
	}
	if len(children) >= 2 {
		if htmltree.IsElement(children[1], "g") {
			if htmltree.CheckSingleClass(children[1], r.sink, zoomsClass) {
				zoomsGroup = children[1]
			}
		} else {
			r.sink.Structuralf(children[1], "second child of schema <svg> should be a <g>")
		}
	}
	return shapesGroup, zoomsGroup
}

// shapeIndex is the ordered id-to-element index of a shapes group.
type shapeIndex struct {
	ids   []string
	nodes map[string]*html.Node
}

// indexShapes builds the id index of the shapes group. Children must be
// one of the allowed tags and carry a unique id; titles are skipped.
// Offending entries are reported and excluded without stopping siblings.
func (r *Reader) indexShapes(group *html.Node) *shapeIndex {
	index := &shapeIndex{nodes: make(map[string]*html.Node)}
	for _, child := range htmltree.Children(group) {
		if child.Type != html.ElementNode {
			r.sink.Contentf(child, "unexpected free text in the shapes group")
			continue
		}
		switch child.Data {
		case "title":
			continue
		case "line", "path", "circle", "svg", "use", "text":
			id := htmltree.ID(child)
			if id == "" {
				r.sink.Attributef(child, "id= is missing")
				continue
			}
			if _, dup := index.nodes[id]; dup {
				r.sink.Structuralf(child, "duplicate id %q", id)
				continue
			}
			index.ids = append(index.ids, id)
			index.nodes[id] = child
		default:
			r.sink.Structuralf(child, "unexpected tag in the shapes group")
		}
	}
	return index
}

// checkFontSize verifies the declared font size against the background
// image height. Skipped when no image height is available, the missing
// image is already reported.
func (r *Reader) checkFontSize(fontSize, imageHeight int) {
	if imageHeight == 0 {
		return
	}
	expected := int(math.Round(float64(imageHeight) / r.opts.FontSizeDivisor))
	if fontSize != expected {
		r.sink.Consistencyf(r.svg, "font-size should be %d for an image height of %d, not %d",
			expected, imageHeight, fontSize)
	}
}

// readZooms extracts the zoom areas from the zooms group.
func (r *Reader) readZooms(group *html.Node) []model.ZoomArea {
	var zooms []model.ZoomArea
	for _, child := range htmltree.Children(group) {
		if !htmltree.IsElement(child, "rect") {
			r.sink.Structuralf(child, "zoom should be a <rect>")
			continue
		}
		htmltree.CheckAttrs(child, r.sink, zoomAttrs...)
		coords, err := svgdom.Floats(child, "x", "y", "width", "height")
		if err != nil {
			r.sink.Attributef(child, "zoom coordinates are invalid: %v", err)
			coords = []float64{0, 0, 0, 0}
		}
		zooms = append(zooms, model.ZoomArea(model.NewRect(coords[0], coords[1], coords[2], coords[3])))
	}
	return zooms
}
