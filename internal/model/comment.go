package model

import "time"

type Comment struct {
	ID        int64         `json:"id"`
	Content   string        `json:"content"`
	AuthorID  int64         `json:"authorId"`
	Author    CommentAuthor `json:"author"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type CommentAuthor struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
