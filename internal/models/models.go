package models

import (
	"time"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"passwordHash" db:"password_hash"`
	RefreshToken           string    `json:"refreshToken" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"refreshTokenExpiryTime" db:"refresh_token_expiry_time"`
}

// Author создается явным хуком при регистрации пользователя
type Author struct {
	AuthorID  string    `json:"authorId" db:"author_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Category struct {
	CategoryID int64  `json:"categoryId" db:"category_id"`
	Title      string `json:"title" db:"title"`
}

type Tag struct {
	TagID int64  `json:"tagId" db:"tag_id"`
	Title string `json:"title" db:"title"`
}

type Post struct {
	PostID       int64      `json:"postId" db:"post_id"`
	Title        string     `json:"title" db:"title"`
	Slug         string     `json:"slug" db:"slug"`
	Overview     string     `json:"overview" db:"overview"`
	Content      string     `json:"content" db:"content"`
	ThumbnailURL string     `json:"thumbnailUrl" db:"thumbnail_url"`
	Featured     bool       `json:"featured" db:"featured"`
	AuthorID     string     `json:"authorId" db:"author_id"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	Categories   []Category `json:"categories" db:"-"`
	Tags         []Tag      `json:"tags" db:"-"`
}

type Comment struct {
	CommentID int64     `json:"commentId" db:"comment_id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	UserEmail string    `json:"userEmail" db:"user_email"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PostView - уникальный просмотр поста авторизованным пользователем
type PostView struct {
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Signup struct {
	SignupID  int64     `json:"signupId" db:"signup_id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// TitleCount - количество постов на рубрику или тег
type TitleCount struct {
	Title string `json:"title" db:"title"`
	Count int    `json:"count" db:"count"`
}
