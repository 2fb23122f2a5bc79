package repo

import "strings"

// Topic is a value object representing the free-text search filter
type Topic struct {
	value string
}

// NewTopic wraps the text exactly as typed
func NewTopic(raw string) Topic {
	return Topic{value: raw}
}

// IsEmpty reports whether the topic holds only whitespace
func (t Topic) IsEmpty() bool {
	return strings.TrimSpace(t.value) == ""
}

// String returns the topic as typed, untrimmed
func (t Topic) String() string {
	return t.value
}
