package domain

// Advice is the result of one advisor turn.
type Advice struct {
	// Answer is the generated response, with the citation block appended
	// when sources were retrieved and requested.
	Answer string

	// Sources are the retrieved documents the answer is grounded in,
	// in retrieval order. May be empty; an empty result is not an error.
	Sources []Document

	// Context is the formatted context string that was sent to the
	// generation model, kept for diagnostics.
	Context string
}
