package model

// CreatePostDTO carries a new post. A nil Published means the caller did not
// set the flag and the post is published by default.
type CreatePostDTO struct {
	AuthorID  int64  `json:"author_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published *bool  `json:"published,omitempty"`
}
