package models

import "time"

// FolderTreeNode is a folder with its children nested, as returned by the
// tree endpoint. Conversations carry title and placement only.
type FolderTreeNode struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Color         string                  `json:"color"`
	ParentID      *string                 `json:"parent_id"`
	Level         int                     `json:"level"`
	CreatedAt     time.Time               `json:"created_at"`
	Folders       []*FolderTreeNode       `json:"folders"`
	Conversations []ConversationPlacement `json:"conversations"`
}

// Tree is the forest of root folders plus the conversations filed nowhere.
type Tree struct {
	Folders       []*FolderTreeNode       `json:"folders"`
	Conversations []ConversationPlacement `json:"conversations"`
}
