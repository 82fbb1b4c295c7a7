package models

import (
	"time"
)

type Release struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	Username   string    `json:"username" db:"username"`
	Title      string    `json:"title" db:"title"`
	Artist     string    `json:"artist" db:"artist"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
	Tags       []string  `json:"tags"`
	Tracks     []Track   `json:"tracks"`
}

type Track struct {
	ID          int    `json:"id" db:"id"`
	ReleaseID   int    `json:"release_id" db:"release_id"`
	Title       string `json:"title" db:"title"`
	TrackNumber int    `json:"track_number" db:"track_number"`
}

type Song struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	Username   string    `json:"username" db:"username"`
	Title      string    `json:"title" db:"title"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
	Tags       []string  `json:"tags"`
}

type Tag struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
