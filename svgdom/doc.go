// Package svgdom is the small vector-geometry engine behind the card
// readers.
//
// It works directly on the SVG fragments of the parsed HTML tree: viewBox
// parsing, numeric attribute reading, path-data decomposition, transform
// parsing, id-indexed definition lookup ([Defs]) with use/symbol
// indirection, and embedded raster decoding with pixel dimensions.
//
// Unlike the readers built on top of it, this package reports problems as
// ordinary errors; callers translate them into diagnostics.
package svgdom
