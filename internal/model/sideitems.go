package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Comment is a plain-text note attached to a task in a column.
// Comments are append-only; ID gives list rows a stable identity.
type Comment struct {
	ID   string `json:"id" db:"id"`
	Text string `json:"text" db:"text"`
}

// NewComment builds a comment with a fresh ID.
func NewComment(text string) Comment {
	return Comment{ID: uuid.New().String(), Text: text}
}

// Attachment describes an uploaded file. Only metadata is kept.
type Attachment struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Size int64  `json:"size" db:"size"`
}

// NewAttachment builds an attachment with a fresh ID.
func NewAttachment(name string, size int64) Attachment {
	return Attachment{ID: uuid.New().String(), Name: name, Size: size}
}

// AttachmentFromFile stats path and returns its name and size as an
// attachment. Directories are rejected.
func AttachmentFromFile(path string) (Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("reading attachment %s: %w", path, err)
	}
	if info.IsDir() {
		return Attachment{}, fmt.Errorf("attachment %s is a directory", path)
	}
	return NewAttachment(filepath.Base(path), info.Size()), nil
}

// HumanSize formats a byte count for display (e.g. "1.5 KB").
func (a Attachment) HumanSize() string {
	const unit = 1024
	if a.Size < unit {
		return fmt.Sprintf("%d B", a.Size)
	}
	div, exp := int64(unit), 0
	for n := a.Size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(a.Size)/float64(div), "KMGTPE"[exp])
}

// NormalizeLabel trims surrounding whitespace from a label.
func NormalizeLabel(label string) string {
	return strings.TrimSpace(label)
}

// SameLabel reports whether two labels are equal ignoring case.
func SameLabel(a, b string) bool {
	return strings.EqualFold(NormalizeLabel(a), NormalizeLabel(b))
}
