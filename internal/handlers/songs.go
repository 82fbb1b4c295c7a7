package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"wavehub/internal/database"
	"wavehub/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// GetUserSongs returns the authenticated caller's own uploaded songs,
// newest first, with owner username and tags.
func GetUserSongs(c *gin.Context) {
	userIDValue, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userID, ok := userIDValue.(int)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return
	}

	db := database.DB
	rows, err := db.Query(
		`SELECT s.id, s.user_id, s.title, s.uploaded_at, u.username
		 FROM songs s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.user_id = $1
		 ORDER BY s.uploaded_at DESC, s.id DESC`,
		userID,
	)
	if err != nil {
		log.Printf("Error retrieving user songs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving songs"})
		return
	}
	defer rows.Close()

	songs := []models.Song{}
	var songIDs []int
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.ID, &song.UserID, &song.Title, &song.UploadedAt, &song.Username); err != nil {
			log.Printf("Error scanning song: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving songs"})
			return
		}
		song.Tags = []string{}
		songs = append(songs, song)
		songIDs = append(songIDs, song.ID)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating user songs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving songs"})
		return
	}

	if len(songs) > 0 {
		tagsBySong, err := loadSongTags(db, songIDs)
		if err != nil {
			log.Printf("Error loading song tags: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving songs"})
			return
		}
		for i := range songs {
			if tags, ok := tagsBySong[songs[i].ID]; ok {
				songs[i].Tags = tags
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

func loadSongTags(db *sql.DB, songIDs []int) (map[int][]string, error) {
	rows, err := db.Query(
		`SELECT st.song_id, t.name
		 FROM song_tags st
		 JOIN tags t ON t.id = st.tag_id
		 WHERE st.song_id = ANY($1)
		 ORDER BY t.name ASC`,
		pq.Array(songIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tagsBySong := make(map[int][]string)
	for rows.Next() {
		var songID int
		var name string
		if err := rows.Scan(&songID, &name); err != nil {
			return nil, err
		}
		tagsBySong[songID] = append(tagsBySong[songID], name)
	}

	return tagsBySong, rows.Err()
}
