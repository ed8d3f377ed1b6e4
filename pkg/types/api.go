package types

// ExtractionRequest is the body of POST /extract_entities.
type ExtractionRequest struct {
	// Text to analyze. Required; the empty string is accepted.
	// example: Apple was founded by Steve Jobs in California.
	Text *string `json:"text" validate:"required" example:"Apple was founded by Steve Jobs in California."`
	// Whether to return common nouns.
	// example: true
	ExtractNouns bool `json:"extract_nouns" example:"true"`
	// Whether to return noun chunks.
	// example: false
	ExtractNounChunks bool `json:"extract_noun_chunks" example:"false"`
}

// Entity is a named-entity span recognized in the input text.
type Entity struct {
	// Surface text of the entity.
	// example: Steve Jobs
	Text string `json:"text" example:"Steve Jobs"`
	// Label from the model's tag vocabulary.
	// example: PERSON
	Label string `json:"label" example:"PERSON"`
}

// ExtractionResponse is returned by POST /extract_entities.
// Nouns and NounChunks are null unless requested.
type ExtractionResponse struct {
	// Entities in order of appearance.
	Entities []Entity `json:"entities"`
	// Common nouns in order of appearance (if requested).
	Nouns []string `json:"nouns" swaggertype:"array,string"`
	// Noun chunks in order of appearance (if requested).
	NounChunks []string `json:"noun_chunks" swaggertype:"array,string"`
}

// ErrorResponse is the JSON error payload for non-validation failures.
type ErrorResponse struct {
	// Error message.
	// example: backend unavailable: connection refused
	Detail string `json:"detail" example:"backend unavailable: connection refused"`
}

// ValidationIssue describes one request validation failure.
type ValidationIssue struct {
	// Location of the offending value, starting with "body".
	Loc []any `json:"loc" swaggertype:"array,string"`
	// Human readable message.
	// example: field required
	Msg string `json:"msg" example:"field required"`
	// Machine readable error type.
	// example: value_error.missing
	Type string `json:"type" example:"value_error.missing"`
}

// ValidationErrorResponse is returned with 422 when the body fails validation.
type ValidationErrorResponse struct {
	Detail []ValidationIssue `json:"detail"`
}
