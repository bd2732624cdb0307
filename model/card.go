package model

// Card is the root taxonomic identification document. The taxonomy id and
// the instrument id together uniquely identify a card.
type Card struct {
	// TaxoID is the taxonomy identifier, -1 when unreadable.
	TaxoID int
	// InstrumentID names the imaging instrument.
	InstrumentID string
	// Criteria holds the morphological identification criteria.
	Criteria IdentificationCriteria
	// Schemas maps each view name to its descriptive schema, in document
	// order. A valid card has at least one entry.
	Schemas *SchemaMap
	// MoreExamples are extra example schemas.
	MoreExamples []*AnnotatedSchema
	// PhotosAndFigures are commented links to photos or figures.
	PhotosAndFigures []CommentedLink
	// Confusions documents organisms easily mistaken for this one.
	Confusions []*Confusion
}

// NewCard creates an empty card with the identifiers readers use as
// placeholders until the metadata is validated.
func NewCard() *Card {
	return &Card{
		TaxoID:       -1,
		InstrumentID: "?",
		Schemas:      NewSchemaMap(),
	}
}

// IdentificationCriteria is restricted rich text: paragraphs and bullet
// lists only, bold and italics only, no pictographic characters. The text
// is stored raw, as concatenated from the document.
type IdentificationCriteria struct {
	Text string
}

// CommentedLink points to a web-hosted photo or figure with its comment.
type CommentedLink struct {
	URL     string
	Comment string
}

// Confusion documents a pair of organisms that are visually easy to
// mistake for one another, each side illustrated and explained. The same
// instrument is assumed for the other taxon but not checked.
type Confusion struct {
	Self *ConfusionSchema
	// OtherTaxoID identifies the taxon not to confuse with this card's.
	OtherTaxoID       int
	OtherInstrumentID string
	Other             *ConfusionSchema
}
