package handlers

import (
	"log"
	"net/http"

	"wavehub/internal/database"
	"wavehub/internal/models"

	"github.com/gin-gonic/gin"
)

// GetFollowing returns the accounts the authenticated caller follows,
// newest edge first.
func GetFollowing(c *gin.Context) {
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
		`SELECT u.username, u.name, f.created_at
		 FROM follows f
		 JOIN users u ON u.id = f.following_id
		 WHERE f.follower_id = $1
		 ORDER BY f.created_at DESC`,
		userID,
	)
	if err != nil {
		log.Printf("Error retrieving following list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving following list"})
		return
	}
	defer rows.Close()

	following := []models.FollowedUser{}
	for rows.Next() {
		var followed models.FollowedUser
		if err := rows.Scan(&followed.Username, &followed.Name, &followed.FollowedAt); err != nil {
			log.Printf("Error scanning followed user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving following list"})
			return
		}
		following = append(following, followed)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating following list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving following list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}
