// Package model defines the in-memory representation of a taxonomic
// identification card.
//
// All types here are populated by the carddoc and svgdoc readers during a
// single read pass and are never mutated afterwards. Ownership is a strict
// tree rooted at [Card]: no entity is shared between owners; identifiers
// (taxonomy id, instrument id) are plain values.
//
// # Card Structure
//
// The [Card] type is the root document:
//
//   - [IdentificationCriteria] - the validated morphological criteria text
//   - [SchemaMap] - insertion-ordered view name to [DescriptiveSchema]
//   - [AnnotatedSchema] - extra example schemas
//   - [CommentedLink] - photos and figures
//   - [Confusion] - pairs of easily-mistaken organisms
//
// # Shapes
//
// Annotations drawn on a schema image all implement the [Shape] interface.
// The concrete types are:
//
//   - [Line] - axis-aligned measurement line, optionally arrowed
//   - [Circle] - circled feature
//   - [Curves] - free-form relative bezier annotation
//   - [Number] - circled-digit callout
//
// [Segment] is not a [Shape]: it is a bracket-like annotation realized
// through symbol indirection and carries its own rectangle and rotation.
//
// # Geometry
//
// Geometric primitives support the reader's consistency checks:
//
//   - [Rect] - rectangle with center and containment calculations
//   - [Point] - 2D point with distance calculation
//   - [CropArea], [ZoomArea] - rectangles in background-image pixel space
package model
