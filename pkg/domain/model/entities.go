package model

import "encoding/json"

// ModelType distinguishes the two recognition passes
type ModelType string

const (
	// ModelTypeNamedEntity finds entities in free text
	ModelTypeNamedEntity ModelType = "named_entity"
	// ModelTypeRefPart decomposes citation spans into reference parts
	ModelTypeRefPart ModelType = "ref_part"
)

// RecognizeRequest is the body of POST /recognize-entities. Text is a pointer
// so a missing key can be told apart from an empty text, which is valid input.
type RecognizeRequest struct {
	Text *string `json:"text"`
	Lang string  `json:"lang"`
}

// BulkRecognizeRequest is the body of POST /bulk-recognize-entities
type BulkRecognizeRequest struct {
	Texts []string `json:"texts"`
	Lang  string   `json:"lang"`
}

// Entity is the wire representation of a recognized span. Citation entities
// carry the reference parts found within them; Parts is non-nil exactly on
// citations, so the parts key appears on every citation even when empty.
type Entity struct {
	Start int      `json:"start"`
	End   int      `json:"end"`
	Label string   `json:"label"`
	Text  string   `json:"text,omitempty"`
	Parts []Entity `json:"parts,omitempty"`
}

// MarshalJSON emits the parts key whenever Parts was populated, including as
// an empty list. omitempty alone cannot tell an empty citation from a
// non-citation entity.
func (e Entity) MarshalJSON() ([]byte, error) {
	type entity Entity
	if e.Parts == nil {
		return json.Marshal(entity(e))
	}
	return json.Marshal(struct {
		entity
		Parts []Entity `json:"parts"`
	}{entity(e), e.Parts})
}

// EntityList is the response of POST /recognize-entities
type EntityList struct {
	Entities []Entity `json:"entities"`
}

// BulkEntityList is the response of POST /bulk-recognize-entities, one entry
// per input text in order
type BulkEntityList struct {
	Results []EntityList `json:"results"`
}
