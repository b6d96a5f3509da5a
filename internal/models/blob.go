package models

import "time"

// BlobMeta describes a stored object.
type BlobMeta struct {
	Filename     string            `json:"filename"`
	ContentType  string            `json:"content_type"`
	Size         int64             `json:"size"`
	LastModified time.Time         `json:"last_modified"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type BlobUpload struct {
	Filename    string            `json:"filename"`
	ContentType string            `json:"content_type"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type BlogMetaInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image,omitempty"`
}

type BlogData struct {
	Meta    BlogMetaInput `json:"meta"`
	Content string        `json:"content"`
}

type BlogMeta struct {
	Name        string    `json:"name"`
	Lang        Lang      `json:"lang"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Image       string    `json:"image,omitempty"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}
