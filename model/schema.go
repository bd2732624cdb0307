package model

// SchemaFromImage is the part shared by every annotated image of a card:
// the reference of the source image and the optional crop applied to it.
type SchemaFromImage struct {
	// Instance is the source instance identifier, kept un-normalized.
	Instance string
	// ObjectID is the image reference inside the instance.
	ObjectID int
	// Image is the raw encoded image, exactly as embedded in the card.
	Image []byte
	// Crop is the zoomed region of interest, in image pixel space.
	Crop CropArea
}

// DescriptiveSchema is the annotated image backing one view of the
// organism: drawn shapes, segments and zoomable areas.
type DescriptiveSchema struct {
	SchemaFromImage
	Shapes   []Shape
	Segments []Segment
	Zooms    []ZoomArea
}

// AnnotatedSchema is an extra example image, logically linked to a view
// but not part of the per-view schema map.
type AnnotatedSchema struct {
	SchemaFromImage
	View     string
	Shapes   []Shape
	Segments []Segment
}

// ConfusionSchema illustrates one side of a confusion: the lines showing
// where the organisms are easy to mistake, numbered interest points, and
// one explanation text per line.
type ConfusionSchema struct {
	SchemaFromImage
	Lines   []*Line
	Numbers []*Number
	Texts   []string
}

// SchemaMap maps view names to their descriptive schema, preserving
// insertion order. Setting an existing view overwrites the schema but
// keeps the view's original position.
type SchemaMap struct {
	views  []string
	byView map[string]*DescriptiveSchema
}

// NewSchemaMap creates an empty schema map
func NewSchemaMap() *SchemaMap {
	return &SchemaMap{byView: make(map[string]*DescriptiveSchema)}
}

// Set adds or replaces the schema for a view
func (m *SchemaMap) Set(view string, schema *DescriptiveSchema) {
	if _, ok := m.byView[view]; !ok {
		m.views = append(m.views, view)
	}
	m.byView[view] = schema
}

// Get returns the schema for a view
func (m *SchemaMap) Get(view string) (*DescriptiveSchema, bool) {
	s, ok := m.byView[view]
	return s, ok
}

// Views returns the view names in insertion order
func (m *SchemaMap) Views() []string {
	out := make([]string, len(m.views))
	copy(out, m.views)
	return out
}

// Len returns the number of views
func (m *SchemaMap) Len() int {
	return len(m.views)
}
