// Package svgdoc validates and extracts the content of one SVG schema
// region of a taxonomic card.
//
// A [Reader] walks a single <svg> element and produces a [Region]: the
// crop area, the raw background image, and the drawn shapes, segments and
// zoom areas, in document order.
//
// Every check is independent and non-fatal. A failing check reports into
// the shared diagnostics sink and substitutes a safe placeholder (empty
// list, zero rectangle, no arrow, default label) so later checks of the
// same region still run.
package svgdoc
