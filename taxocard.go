// Package taxocard reads taxonomic identification cards: HTML documents
// pairing an organism's identification criteria with annotated SVG
// schemas of its anatomy.
//
// The package validates as it reads. Malformed content does not abort
// the read; every problem found is returned as an ordered diagnostic
// next to the best-effort card, so authoring tools can show all defects
// of a card in one pass.
package taxocard

import (
	"github.com/planktonid/taxocard/carddoc"
	"github.com/planktonid/taxocard/diag"
	"github.com/planktonid/taxocard/model"
)

// ReadFile reads and validates a card file. The error is non-nil only
// when the file cannot be read at all; content problems come back as
// diagnostics.
func ReadFile(filename string) (*model.Card, []diag.Diagnostic, error) {
	r, err := carddoc.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	card, diags := r.Read()
	return card, diags, nil
}

// ReadFileOptions is ReadFile with explicit read options.
func ReadFileOptions(filename string, opts carddoc.ReadOptions) (*model.Card, []diag.Diagnostic, error) {
	r, err := carddoc.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	r.SetOptions(opts)
	card, diags := r.Read()
	return card, diags, nil
}
