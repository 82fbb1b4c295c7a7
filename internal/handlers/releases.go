package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"wavehub/internal/database"
	"wavehub/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// ListReleases returns the release feed, newest first. With following=true
// it requires a session and restricts the feed to followed accounts.
func ListReleases(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	filterFollowing := false
	if raw := strings.TrimSpace(c.Query("following")); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			filterFollowing = parsed
		}
	}

	db := database.DB

	var followedIDs []int
	if filterFollowing {
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

		rows, err := db.Query(`SELECT following_id FROM follows WHERE follower_id = $1`, userID)
		if err != nil {
			log.Printf("Error loading follow edges: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving releases"})
			return
		}
		defer rows.Close()

		for rows.Next() {
			var followingID int
			if err := rows.Scan(&followingID); err != nil {
				log.Printf("Error scanning follow edge: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving releases"})
				return
			}
			followedIDs = append(followedIDs, followingID)
		}
		if err := rows.Err(); err != nil {
			log.Printf("Error iterating follow edges: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving releases"})
			return
		}

		// Nobody followed means an empty feed; skip the release query.
		if len(followedIDs) == 0 {
			c.JSON(http.StatusOK, gin.H{"releases": []models.Release{}})
			return
		}
	}

	query := `
		SELECT r.id, r.user_id, r.title, r.artist, r.uploaded_at, u.username
		FROM releases r
		JOIN users u ON u.id = r.user_id
	`
	var args []interface{}
	if filterFollowing {
		args = append(args, pq.Array(followedIDs))
		query += fmt.Sprintf(` WHERE r.user_id = ANY($%d)`, len(args))
	}
	query += ` ORDER BY r.uploaded_at DESC, r.id DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		log.Printf("Error retrieving releases: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving releases"})
		return
	}
	defer rows.Close()

	releases := []models.Release{}
	var releaseIDs []int
	for rows.Next() {
		var release models.Release
		if err := rows.Scan(
			&release.ID,
			&release.UserID,
			&release.Title,
			&release.Artist,
			&release.UploadedAt,
			&release.Username,
		); err != nil {
			log.Printf("Error scanning release: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving releases"})
			return
		}
		release.Tags = []string{}
		release.Tracks = []models.Track{}
		releases = append(releases, release)
		releaseIDs = append(releaseIDs, release.ID)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating releases: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving releases"})
		return
	}

	if len(releases) > 0 {
		tagsByRelease, err := loadReleaseTags(db, releaseIDs)
		if err != nil {
			log.Printf("Error loading release tags: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving releases"})
			return
		}
		tracksByRelease, err := loadReleaseTracks(db, releaseIDs)
		if err != nil {
			log.Printf("Error loading release tracks: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving releases"})
			return
		}

		for i := range releases {
			if tags, ok := tagsByRelease[releases[i].ID]; ok {
				releases[i].Tags = tags
			}
			if tracks, ok := tracksByRelease[releases[i].ID]; ok {
				releases[i].Tracks = tracks
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"releases": releases})
}

func loadReleaseTags(db *sql.DB, releaseIDs []int) (map[int][]string, error) {
	rows, err := db.Query(
		`SELECT rt.release_id, t.name
		 FROM release_tags rt
		 JOIN tags t ON t.id = rt.tag_id
		 WHERE rt.release_id = ANY($1)
		 ORDER BY t.name ASC`,
		pq.Array(releaseIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tagsByRelease := make(map[int][]string)
	for rows.Next() {
		var releaseID int
		var name string
		if err := rows.Scan(&releaseID, &name); err != nil {
			return nil, err
		}
		tagsByRelease[releaseID] = append(tagsByRelease[releaseID], name)
	}

	return tagsByRelease, rows.Err()
}

func loadReleaseTracks(db *sql.DB, releaseIDs []int) (map[int][]models.Track, error) {
	rows, err := db.Query(
		`SELECT id, release_id, title, track_number
		 FROM release_tracks
		 WHERE release_id = ANY($1)
		 ORDER BY track_number ASC`,
		pq.Array(releaseIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracksByRelease := make(map[int][]models.Track)
	for rows.Next() {
		var track models.Track
		if err := rows.Scan(&track.ID, &track.ReleaseID, &track.Title, &track.TrackNumber); err != nil {
			return nil, err
		}
		tracksByRelease[track.ReleaseID] = append(tracksByRelease[track.ReleaseID], track)
	}

	return tracksByRelease, rows.Err()
}
