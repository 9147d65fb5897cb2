package domain

import "fmt"

// Document is the indexed, embeddable form of a Course. Content is the
// denormalised text blob that gets vectorised; Course keeps the structured
// fields for filtering and display. The mapping to catalog entries is 1:1
// and preserves catalog load order.
type Document struct {
	// ID is the course code, unique across the index.
	ID string

	// Content is the text that gets embedded for semantic search.
	Content string

	// Course holds the structured metadata for filtering and display.
	Course Course
}

// NewDocument derives the indexed document for a course.
func NewDocument(c Course) Document {
	content := fmt.Sprintf(`Course: %s - %s

Description: %s

Prerequisites: %s

Department: %s
Level: %s
Credits: %g`,
		c.Code, c.Title, c.Description, c.Prerequisites, c.Department, c.Level, c.Credits)

	return Document{
		ID:      c.Code,
		Content: content,
		Course:  c,
	}
}

// NewDocuments derives indexed documents for all courses, preserving order.
func NewDocuments(courses []Course) []Document {
	docs := make([]Document, len(courses))
	for i, c := range courses {
		docs[i] = NewDocument(c)
	}
	return docs
}

// ScoredDocument pairs a document with its similarity score.
// Higher scores mean more similar.
type ScoredDocument struct {
	Document   Document
	Similarity float64
}
