package models

import (
	"strings"
	"time"
)

// DefaultFolderColor is applied when a folder is created without a color.
const DefaultFolderColor = "#4F46E5"

// PathSeparator joins folder IDs into the materialized path.
const PathSeparator = ","

// Folder is a node in the folder forest. Path and Level are derived from
// ParentID and are maintained by the folder service on every create and
// move; they are never accepted from a client.
//
// Path is the comma-joined chain of folder IDs from a root down to and
// including this folder, so Level == number of separators in Path.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	ParentID  *string   `json:"parent_id"` // NULL = root level
	Path      string    `json:"path"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PathIDs returns the materialized path as a slice of folder IDs in
// root-to-leaf order.
func (f *Folder) PathIDs() []string {
	if f.Path == "" {
		return nil
	}
	return strings.Split(f.Path, PathSeparator)
}

// PathContains reports whether id appears as a segment of the
// materialized path. Segment comparison, not substring: one UUID being a
// prefix of another must not count.
func (f *Folder) PathContains(id string) bool {
	for _, seg := range f.PathIDs() {
		if seg == id {
			return true
		}
	}
	return false
}

// JoinPath builds a materialized path from folder IDs.
func JoinPath(ids []string) string {
	return strings.Join(ids, PathSeparator)
}
