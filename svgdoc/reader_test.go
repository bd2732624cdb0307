package svgdoc

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/planktonid/taxocard/diag"
	"github.com/planktonid/taxocard/htmltree"
	"github.com/planktonid/taxocard/model"
	"github.com/planktonid/taxocard/svgdom"
)

// pngDataURI encodes a blank PNG of the given size as a base64 data URI.
func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

const templatesSVG = `<svg class="svg-templates"><defs>
	<marker id="rostrum_triangle"><path d="M0,0 L4,2 L0,4"/></marker>
	<marker id="antenna_triangle"><path d="M0,0 L4,2 L0,4"/></marker>
	<symbol id="antenna_segment"><g><line x1="0" y1="0" x2="1" y2="0"/></g></symbol>
</defs></svg>`

// fixture assembles one schema region document. Empty fields fall back to
// a fully valid 360x720 region.
type fixture struct {
	svgAttrs string // top-level <svg> attributes
	body     string // content of the shapes group
	zooms    string // zooms group, including the <g>
	imageURI string
}

func (f fixture) build(t *testing.T) string {
	t.Helper()
	if f.imageURI == "" {
		f.imageURI = pngDataURI(t, 360, 720)
	}
	if f.svgAttrs == "" {
		f.svgAttrs = `xmlns="http://www.w3.org/2000/svg" viewBox="0 0 360 720" font-size="20"` +
			` xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1" baseProfile="tiny"`
	}
	if f.body == "" {
		f.body = `<line id="s1" data-label="rostrum" x1="10" y1="40" x2="200" y2="40" marker-end="url(#rostrum_triangle)"/>`
	}
	background := fmt.Sprintf(
		`<svg class="background" id="bg1" width="360" height="720"><image width="360" height="720" xlink:href=%q/></svg>`,
		f.imageURI)
	return `<html><body>` + templatesSVG +
		`<div><svg ` + f.svgAttrs + `><g class="shapes">` + background + f.body + `</g>` + f.zooms + `</svg></div>` +
		`</body></html>`
}

// read parses the fixture and runs the region reader against the
// document templates.
func (f fixture) read(t *testing.T) (*Region, []diag.Diagnostic) {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(f.build(t)))
	require.NoError(t, err)
	defs := svgdom.CollectDefs(htmltree.Find(doc, "defs"))
	div := htmltree.Find(doc, "div")
	require.NotNil(t, div)
	svg := htmltree.Find(div, "svg")
	require.NotNil(t, svg)

	sink := diag.NewSink()
	region := NewReader(svg, defs, sink, DefaultOptions()).Read()
	return region, sink.Errors()
}

func TestRead_ValidRegion(t *testing.T) {
	f := fixture{
		body: `<line id="s1" data-label="rostrum" x1="10" y1="40" x2="200" y2="40" marker-end="url(#rostrum_triangle)"/>` +
			`<circle id="s2" data-label="eye" r="12" cx="80" cy="90"/>` +
			`<path id="s3" data-label="antenna" d="m 10,10 c 5,5 10,5 15,0 q 3,-3 6,0"/>` +
			`<text id="s4" x="30" y="50">①</text>` +
			`<use id="s5" x="50" y="60" width="40" height="10" xlink:href="#antenna_segment" transform="rotate(45,70,65)"/>`,
		zooms: `<g class="zooms"><rect id="z1" x="0" y="0" width="180" height="360"/></g>`,
	}
	region, diags := f.read(t)
	assert.Empty(t, diags)

	assert.Equal(t, model.CropArea(model.NewRect(0, 0, 360, 720)), region.Crop)
	assert.Equal(t, 720, region.ImageHeight)
	assert.NotEmpty(t, region.Image)
	require.Len(t, region.Shapes, 4)
	require.Len(t, region.Segments, 1)
	require.Len(t, region.Zooms, 1)

	line, ok := region.Shapes[0].(*model.Line)
	require.True(t, ok)
	assert.Equal(t, "rostrum", line.Label)
	assert.Equal(t, model.ArrowEnd, line.Arrow)

	curves, ok := region.Shapes[2].(*model.Curves)
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 10, Y: 10}, curves.Origin)

	number, ok := region.Shapes[3].(*model.Number)
	require.True(t, ok)
	assert.Equal(t, "①", number.Glyph)

	segment := region.Segments[0]
	assert.Equal(t, "antenna", segment.Label)
	assert.Equal(t, 45.0, segment.Rotation)
	assert.Equal(t, model.NewRect(50, 60, 40, 10), segment.Box)
}

func TestRead_ShapeOrderFollowsDocument(t *testing.T) {
	f := fixture{
		body: `<circle id="a" data-label="eye" r="12" cx="80" cy="90"/>` +
			`<line id="b" data-label="head" x1="0" y1="10" x2="0" y2="90"/>` +
			`<circle id="c" data-label="gut" r="5" cx="10" cy="10"/>`,
	}
	region, diags := f.read(t)
	assert.Empty(t, diags)
	require.Len(t, region.Shapes, 3)
	labels := []string{region.Shapes[0].ShapeLabel(), region.Shapes[1].ShapeLabel(), region.Shapes[2].ShapeLabel()}
	assert.Equal(t, []string{"eye", "head", "gut"}, labels)
}

func TestRead_LeaningLine(t *testing.T) {
	f := fixture{body: `<line id="s1" data-label="rostrum" x1="10" y1="40" x2="200" y2="60"/>`}
	region, diags := f.read(t)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Content, diags[0].Category)
	// the shape is still extracted
	assert.Len(t, region.Shapes, 1)
}

func TestRead_SegmentRotation(t *testing.T) {
	use := func(transform string) string {
		return fmt.Sprintf(
			`<use id="s1" x="50" y="60" width="40" height="10" xlink:href="#antenna_segment" transform=%q/>`,
			transform)
	}
	tests := []struct {
		name      string
		transform string
		wantDiags int
		wantAngle float64
	}{
		{"allowed angle on center", "rotate(45,70,65)", 0, 45},
		{"negative allowed angle", "rotate(-90,70,65)", 0, -90},
		{"zero angle skips the center check", "rotate(0,1,2)", 0, 0},
		{"disallowed angle", "rotate(30,70,65)", 1, 30},
		{"wrong center", "rotate(45,0,0)", 1, 45},
		{"not a rotate", "translate(3,4)", 1, 0},
		{"two rotates", "rotate(45,70,65) rotate(45,70,65)", 1, 45},
		{"two parameters", "rotate(45,70)", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, diags := fixture{body: use(tt.transform)}.read(t)
			assert.Len(t, diags, tt.wantDiags, "diags: %v", diags)
			require.Len(t, region.Segments, 1)
			assert.Equal(t, tt.wantAngle, region.Segments[0].Rotation)
		})
	}
}

func TestRead_SegmentSymbolMismatch(t *testing.T) {
	f := fixture{body: `<use id="s1" x="50" y="60" width="40" height="10" xlink:href="#rostrum_triangle"/>`}
	region, diags := f.read(t)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Reference, diags[0].Category)
	require.Len(t, region.Segments, 1)
	assert.Equal(t, "?", region.Segments[0].Label)
}

func TestRead_MarkerChecks(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		count int
		cat   diag.Category
	}{
		{"dangling marker",
			`<line id="s1" data-label="rostrum" x1="0" y1="0" x2="9" y2="0" marker-end="url(#missing)"/>`,
			1, diag.Reference},
		{"label mismatch",
			`<line id="s1" data-label="rostrum" x1="0" y1="0" x2="9" y2="0" marker-start="url(#antenna_triangle)"/>`,
			1, diag.Reference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := fixture{body: tt.body}.read(t)
			require.Len(t, diags, tt.count, "diags: %v", diags)
			assert.Equal(t, tt.cat, diags[0].Category)
		})
	}
}

func TestRead_ArrowBoth(t *testing.T) {
	f := fixture{body: `<line id="s1" data-label="rostrum" x1="0" y1="0" x2="9" y2="0"` +
		` marker-start="url(#rostrum_triangle)" marker-end="url(#rostrum_triangle)"/>`}
	region, diags := f.read(t)
	assert.Empty(t, diags)
	require.Len(t, region.Shapes, 1)
	assert.Equal(t, model.ArrowBoth, region.Shapes[0].(*model.Line).Arrow)
}

func TestRead_CurveRules(t *testing.T) {
	path := func(d string) string {
		return fmt.Sprintf(`<path id="s1" data-label="antenna" d=%q/>`, d)
	}
	tests := []struct {
		name string
		d    string
		cat  diag.Category
	}{
		{"absolute command", "m 10,10 C 5,5 10,5 15,0", diag.Content},
		{"straight line part", "m 10,10 l 5,5", diag.Content},
		{"closed", "m 10,10 c 5,5 10,5 15,0 z", diag.Content},
		{"second subpath", "m 10,10 c 5,5 10,5 15,0 m 3,3", diag.Content},
		{"arc part", "m 10,10 a 5,5 0 0 1 10,0", diag.Content},
		{"missing leading move", "c 5,5 10,5 15,0", diag.Content},
		{"unparseable", "m 10,10 c x", diag.Content},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := fixture{body: path(tt.d)}.read(t)
			require.Len(t, diags, 1, "diags: %v", diags)
			assert.Equal(t, tt.cat, diags[0].Category)
		})
	}
}

func TestRead_CurvePartBudget(t *testing.T) {
	var b strings.Builder
	b.WriteString("m 0,0")
	for i := 0; i < 17; i++ {
		b.WriteString(" c 1,1 2,2 3,3")
	}
	f := fixture{body: fmt.Sprintf(`<path id="s1" data-label="antenna" d=%q/>`, b.String())}
	_, diags := f.read(t)
	require.Len(t, diags, 1, "diags: %v", diags)
	assert.Contains(t, diags[0].Message, "too many parts")
}

func TestRead_NumberGlyph(t *testing.T) {
	f := fixture{body: `<text id="s1" x="30" y="50">7</text>`}
	region, diags := f.read(t)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Content, diags[0].Category)
	require.Len(t, region.Shapes, 1)
	assert.Equal(t, "7", region.Shapes[0].(*model.Number).Glyph)
}

func TestRead_DuplicateID(t *testing.T) {
	f := fixture{
		body: `<circle id="s1" data-label="eye" r="12" cx="80" cy="90"/>` +
			`<circle id="s1" data-label="gut" r="5" cx="10" cy="10"/>`,
	}
	region, diags := f.read(t)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Structure, diags[0].Category)
	// the first occurrence survives
	require.Len(t, region.Shapes, 1)
	assert.Equal(t, "eye", region.Shapes[0].ShapeLabel())
}

func TestRead_MissingID(t *testing.T) {
	f := fixture{body: `<circle data-label="eye" r="12" cx="80" cy="90"/>`}
	region, diags := f.read(t)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Attribute, diags[0].Category)
	assert.Empty(t, region.Shapes)
}

func TestRead_FontSizeMismatch(t *testing.T) {
	f := fixture{
		svgAttrs: `xmlns="http://www.w3.org/2000/svg" viewBox="0 0 360 720" font-size="14"` +
			` xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1" baseProfile="tiny"`,
	}
	_, diags := f.read(t)
	require.Len(t, diags, 1, "diags: %v", diags)
	assert.Equal(t, diag.Consistency, diags[0].Category)
	assert.Contains(t, diags[0].Message, "font-size should be 20")
}

func TestRead_TopAttributeFailureAborts(t *testing.T) {
	// font-size missing: the region is abandoned with the default crop.
	f := fixture{
		svgAttrs: `xmlns="http://www.w3.org/2000/svg" viewBox="0 0 360 720"` +
			` xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1" baseProfile="tiny"`,
	}
	region, diags := f.read(t)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Attribute, diags[0].Category)
	assert.Equal(t, model.CropArea(model.NewRect(0, 0, 100, 100)), region.Crop)
	assert.Empty(t, region.Shapes)
	assert.Empty(t, region.Image)
}

func TestRead_CropLargerThanImage(t *testing.T) {
	f := fixture{
		svgAttrs: `xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400 800" font-size="20"` +
			` xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1" baseProfile="tiny"`,
	}
	_, diags := f.read(t)
	require.Len(t, diags, 1, "diags: %v", diags)
	assert.Equal(t, diag.Consistency, diags[0].Category)
	assert.Contains(t, diags[0].Message, "crop area")
}

func TestRead_PhysicalImageMismatch(t *testing.T) {
	// The physical image is 100x100 while everything else declares
	// 360x720: declared <image> size, background size, crop area and
	// font-size all disagree with it.
	f := fixture{imageURI: pngDataURI(t, 100, 100)}
	_, diags := f.read(t)
	require.Len(t, diags, 4, "diags: %v", diags)
	for _, d := range diags {
		assert.Equal(t, diag.Consistency, d.Category)
	}
}

func TestRead_ZoomShape(t *testing.T) {
	f := fixture{zooms: `<g class="zooms"><circle id="z1" r="5" cx="1" cy="1"/></g>`}
	region, diags := f.read(t)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Structure, diags[0].Category)
	assert.Empty(t, region.Zooms)
}

func TestRead_MisclassifiedGroups(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<html><body><div><svg xmlns="x" viewBox="0 0 360 720" font-size="20" xmlns:xlink="x" version="1.1" baseProfile="tiny">` +
			`<g class="wrong"></g></svg></div></body></html>`))
	require.NoError(t, err)
	svg := htmltree.Find(htmltree.Find(doc, "div"), "svg")
	require.NotNil(t, svg)

	sink := diag.NewSink()
	region := NewReader(svg, svgdom.CollectDefs(nil), sink, DefaultOptions()).Read()
	require.Len(t, sink.Errors(), 1)
	assert.Empty(t, region.Shapes)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, []float64{-90, -45, 0, 45, 90}, opts.AllowedAngles)
	assert.Equal(t, 16, opts.MaxCurveParts)
	assert.Equal(t, 36.0, opts.FontSizeDivisor)
}
