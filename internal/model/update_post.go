package model

// UpdatePostDTO is a full overwrite of the mutable post fields.
type UpdatePostDTO struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}
