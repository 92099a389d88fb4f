package domain

import "errors"

var ErrEntryNotFound = errors.New("entry not found")
var ErrEmptyContents = errors.New("contents must not be empty")

// EntryKind tags which collection an identifier resolved to.
type EntryKind string

const (
	KindPost EntryKind = "post"
	KindTodo EntryKind = "todo"
)

// Post is a dated journal entry.
type Post struct {
	ID       string `json:"id"`
	Date     string `json:"date"` // calendar day, YYYY-MM-DD
	Contents string `json:"contents"`
	Check    bool   `json:"check"`
}

// Todo is a dated task item. Label plays the same role Contents does
// on a Post.
type Todo struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Label string `json:"todo"`
	Check bool   `json:"check"`
}
