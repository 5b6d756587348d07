package models

// Document represents a chunk of source text stored in the vector
// collection.
type Document struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Source   string            `json:"source"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
