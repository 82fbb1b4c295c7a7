package database

import (
	"log"
)

// CreateTables creates all required tables in the database
func CreateTables() {
	createUsersTable()
	createPasswordResetTokensTable()
	createFollowsTable()
	createReleasesTable()
	createReleaseTracksTable()
	createSongsTable()
	createTagsTables()
}

func createUsersTable() {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		username VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL DEFAULT '',
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := DB.Exec(query); err != nil {
		log.Fatal("Failed to create users table:", err)
	}

	// Emails are matched case-insensitively on lookup.
	if _, err := DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users(lower(email))`); err != nil {
		log.Fatal("Failed to ensure users lowercase email index:", err)
	}
}

func createPasswordResetTokensTable() {
	query := `
	CREATE TABLE IF NOT EXISTS password_reset_tokens (
		id SERIAL PRIMARY KEY,
		token VARCHAR(64) UNIQUE NOT NULL,
		email VARCHAR(255) NOT NULL,
		expires_at TIMESTAMP NOT NULL,
		used BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := DB.Exec(query); err != nil {
		log.Fatal("Failed to create password_reset_tokens table:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS password_reset_tokens_email_idx ON password_reset_tokens(email)`); err != nil {
		log.Fatal("Failed to ensure password_reset_tokens email index:", err)
	}
}

func createFollowsTable() {
	query := `
	CREATE TABLE IF NOT EXISTS follows (
		id SERIAL PRIMARY KEY,
		follower_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		following_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(follower_id, following_id)
	);
	`

	if _, err := DB.Exec(query); err != nil {
		log.Fatal("Failed to create follows table:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS follows_follower_created_idx ON follows(follower_id, created_at DESC)`); err != nil {
		log.Fatal("Failed to ensure follows follower/created index:", err)
	}
}

func createReleasesTable() {
	query := `
	CREATE TABLE IF NOT EXISTS releases (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		artist VARCHAR(255) NOT NULL DEFAULT '',
		uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := DB.Exec(query); err != nil {
		log.Fatal("Failed to create releases table:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS releases_user_uploaded_idx ON releases(user_id, uploaded_at DESC)`); err != nil {
		log.Fatal("Failed to ensure releases user/uploaded index:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS releases_uploaded_idx ON releases(uploaded_at DESC, id DESC)`); err != nil {
		log.Fatal("Failed to ensure releases uploaded index:", err)
	}
}

func createReleaseTracksTable() {
	query := `
	CREATE TABLE IF NOT EXISTS release_tracks (
		id SERIAL PRIMARY KEY,
		release_id INTEGER NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		track_number INTEGER NOT NULL,
		UNIQUE(release_id, track_number)
	);
	`

	if _, err := DB.Exec(query); err != nil {
		log.Fatal("Failed to create release_tracks table:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS release_tracks_release_number_idx ON release_tracks(release_id, track_number)`); err != nil {
		log.Fatal("Failed to ensure release_tracks release/number index:", err)
	}
}

func createSongsTable() {
	query := `
	CREATE TABLE IF NOT EXISTS songs (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := DB.Exec(query); err != nil {
		log.Fatal("Failed to create songs table:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS songs_user_uploaded_idx ON songs(user_id, uploaded_at DESC, id DESC)`); err != nil {
		log.Fatal("Failed to ensure songs user/uploaded index:", err)
	}
}

func createTagsTables() {
	tagsQuery := `
	CREATE TABLE IF NOT EXISTS tags (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) UNIQUE NOT NULL
	);
	`

	if _, err := DB.Exec(tagsQuery); err != nil {
		log.Fatal("Failed to create tags table:", err)
	}

	releaseTagsQuery := `
	CREATE TABLE IF NOT EXISTS release_tags (
		id SERIAL PRIMARY KEY,
		release_id INTEGER NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
		tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		UNIQUE(release_id, tag_id)
	);
	`

	if _, err := DB.Exec(releaseTagsQuery); err != nil {
		log.Fatal("Failed to create release_tags table:", err)
	}

	songTagsQuery := `
	CREATE TABLE IF NOT EXISTS song_tags (
		id SERIAL PRIMARY KEY,
		song_id INTEGER NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
		tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		UNIQUE(song_id, tag_id)
	);
	`

	if _, err := DB.Exec(songTagsQuery); err != nil {
		log.Fatal("Failed to create song_tags table:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS release_tags_release_idx ON release_tags(release_id)`); err != nil {
		log.Fatal("Failed to ensure release_tags release index:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS song_tags_song_idx ON song_tags(song_id)`); err != nil {
		log.Fatal("Failed to ensure song_tags song index:", err)
	}
}
