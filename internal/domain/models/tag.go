package models

import "time"

// DefaultTagColor is applied when a tag is created without a color.
const DefaultTagColor = "#6B7280"

// Tag is a flat label attachable to conversations.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
