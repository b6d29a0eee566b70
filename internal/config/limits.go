package config

const (
	// MaxFolderNameLength is the maximum length for folder names
	MaxFolderNameLength = 255

	// MaxTagNameLength is the maximum length for tag names
	MaxTagNameLength = 100

	// MaxConversationTitleLength is the maximum length for conversation titles
	MaxConversationTitleLength = 255
)
