// Package carddoc reads a taxonomic identification card from its HTML
// serialization into memory.
//
// A [Reader] parses the whole file up front, releases the file handle,
// then validates the document in a single synchronous pass: metadata,
// body structure, identification criteria, descriptive schemas, extra
// examples, photo links and confusions. Content problems never abort the
// read; they accumulate in an ordered diagnostic list returned next to
// the (possibly partially default-filled) card. Only an unreadable file
// is a Go error.
package carddoc
