package model

// ArrowType tells which ends of a line or curve carry an arrow head.
// Arrows are realized as SVG markers referencing a per-label triangle
// definition in the document templates.
type ArrowType int

const (
	NoArrow ArrowType = iota
	ArrowStart
	ArrowEnd
	ArrowBoth
)

func (a ArrowType) String() string {
	switch a {
	case ArrowStart:
		return "ArrowStart"
	case ArrowEnd:
		return "ArrowEnd"
	case ArrowBoth:
		return "ArrowBoth"
	default:
		return "NoArrow"
	}
}

// ShapeKind represents the concrete type of a drawn shape
type ShapeKind int

const (
	ShapeKindUnknown ShapeKind = iota
	ShapeKindLine
	ShapeKindCircle
	ShapeKindCurves
	ShapeKindNumber
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeKindLine:
		return "Line"
	case ShapeKindCircle:
		return "Circle"
	case ShapeKindCurves:
		return "Curves"
	case ShapeKindNumber:
		return "Number"
	default:
		return "Unknown"
	}
}

// Shape is the interface for all annotations drawn onto a schema image
type Shape interface {
	Kind() ShapeKind
	ShapeLabel() string
}

// Line is a straight measurement line. Valid lines are horizontal or
// vertical; the reader reports leaning ones.
type Line struct {
	Label string
	Arrow ArrowType
	From  Point
	To    Point
}

func (l *Line) Kind() ShapeKind    { return ShapeKindLine }
func (l *Line) ShapeLabel() string { return l.Label }

// Circle rings a feature of the organism
type Circle struct {
	Label  string
	Center Point
	Radius float64
}

func (c *Circle) Kind() ShapeKind    { return ShapeKindCircle }
func (c *Circle) ShapeLabel() string { return c.Label }

// Curves is a free-form annotation made of relative bezier commands.
// Moves keeps the raw path data verbatim; round-tripping the decomposed
// geometry is not attempted.
type Curves struct {
	Label  string
	Arrow  ArrowType
	Origin Point
	Moves  string
}

func (c *Curves) Kind() ShapeKind    { return ShapeKindCurves }
func (c *Curves) ShapeLabel() string { return c.Label }

// Number is a circled-digit callout, e.g. pointing at an interest point
// in a confusion schema. The glyph doubles as the label.
type Number struct {
	At    Point
	Glyph string
}

func (n *Number) Kind() ShapeKind    { return ShapeKindNumber }
func (n *Number) ShapeLabel() string { return n.Glyph }

// Segment is a labeled bracket annotation parallel to a measured feature,
// realized via symbol indirection so a single rotation edit moves the
// whole drawing. Rotation is in degrees around the rectangle center.
type Segment struct {
	Label    string
	Box      Rect
	Rotation float64
}

// ZoomArea is a zoomable sub-rectangle of the schema.
type ZoomArea Rect

// CropArea is the visible region of interest of the background image,
// expressed in image pixel space (from the SVG viewBox).
type CropArea Rect
