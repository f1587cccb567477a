package domain

// Entity is one extracted entity handed over by the NLU layer. Only the
// fields the extractor produced are set; Detail is nil for plain NER hits
// such as PERSON.
type Entity struct {
	Type   string       // dimension: "amount-of-money", "time", "number", "PERSON"
	Text   string       // surface text as the user typed it
	Detail *EntityDetail
}

// EntityDetail carries the structured resolution of a duckling entity.
type EntityDetail struct {
	Number *float64 // numeric amount for money/number dimensions
	Unit   string   // currency marker, empty when the user named none
	Time   string   // ISO-8601 instant for a point value
	From   string   // ISO-8601 interval start
	To     string   // ISO-8601 interval end
	Grain  Grain
}

// Entities is the ordered entity list of one user message.
type Entities []Entity

// First returns the first entity of the given dimension, nil when absent.
func (e Entities) First(dimension string) *Entity {
	for i := range e {
		if e[i].Type == dimension {
			return &e[i]
		}
	}
	return nil
}
