package handlers

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"wavehub/internal/database"
	"wavehub/internal/mailer"
	"wavehub/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	resetTokenBytes   = 32
	resetTokenTTL     = time.Hour
	minPasswordLength = 6

	defaultAppBaseURL = "http://localhost:3000"

	// Returned for existing and unknown accounts alike so the endpoint
	// cannot be used to probe which emails are registered.
	forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent"

	resetTokenInvalidMessage = "Invalid reset token"
	resetTokenExpiredMessage = "Reset token has expired"
	resetTokenUsedMessage    = "Reset token has already been used"
)

func resolveAppBaseURL() string {
	value := strings.TrimSpace(os.Getenv("APP_BASE_URL"))
	if value == "" {
		return defaultAppBaseURL
	}
	return strings.TrimRight(value, "/")
}

func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ForgotPassword issues a single-use reset token and emails a reset link.
// The response is identical whether or not the account exists, and an email
// delivery failure is logged but never surfaced.
func ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	db := database.DB
	var userID int
	err := db.QueryRow(`SELECT id FROM users WHERE lower(email) = $1`, email).Scan(&userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
		return
	}
	if err != nil {
		log.Printf("Error looking up user for password reset: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing request"})
		return
	}

	token, err := generateResetToken()
	if err != nil {
		log.Printf("Error generating reset token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing request"})
		return
	}

	expiresAt := time.Now().Add(resetTokenTTL)
	_, err = db.Exec(
		`INSERT INTO password_reset_tokens (token, email, expires_at, used) VALUES ($1, $2, $3, FALSE)`,
		token,
		email,
		expiresAt,
	)
	if err != nil {
		log.Printf("Error storing reset token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing request"})
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", resolveAppBaseURL(), token)
	if sendErr := mailer.Get().SendPasswordReset(email, resetURL); sendErr != nil {
		log.Printf("Error sending password reset email: %v", sendErr)
	}

	c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
}

// ResetPassword consumes a reset token and sets a new password. The token
// update and the password update happen in one transaction, and the token is
// consumed with a compare-and-swap so two racing completions cannot both
// succeed.
func ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token and password are required"})
		return
	}
	if req.Token == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token and password are required"})
		return
	}
	if len(req.Password) < minPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Password must be at least %d characters", minPasswordLength)})
		return
	}

	db := database.DB

	var tokenEmail string
	var expiresAt time.Time
	var used bool
	err := db.QueryRow(
		`SELECT email, expires_at, used FROM password_reset_tokens WHERE token = $1`,
		req.Token,
	).Scan(&tokenEmail, &expiresAt, &used)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusBadRequest, gin.H{"error": resetTokenInvalidMessage})
			return
		}
		log.Printf("Error looking up reset token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing request"})
		return
	}

	// Expiry is reported before the used flag, so an expired-and-used token
	// reads as expired.
	if time.Now().After(expiresAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": resetTokenExpiredMessage})
		return
	}
	if used {
		c.JSON(http.StatusBadRequest, gin.H{"error": resetTokenUsedMessage})
		return
	}

	var userID int
	err = db.QueryRow(`SELECT id FROM users WHERE lower(email) = $1`, strings.ToLower(tokenEmail)).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			// Account removed after the token was issued. Same error class
			// as a bad token, not a 404.
			c.JSON(http.StatusBadRequest, gin.H{"error": resetTokenInvalidMessage})
			return
		}
		log.Printf("Error resolving user for reset token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing request"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing new password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing request"})
		return
	}

	tx, err := db.Begin()
	if err != nil {
		log.Printf("Error starting transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing request"})
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE users SET password = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		hashedPassword,
		userID,
	)
	if err != nil {
		log.Printf("Error updating password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing request"})
		return
	}

	result, err := tx.Exec(
		`UPDATE password_reset_tokens SET used = TRUE WHERE token = $1 AND used = FALSE`,
		req.Token,
	)
	if err != nil {
		log.Printf("Error consuming reset token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing request"})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Error reading reset token update result: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing request"})
		return
	}
	if rowsAffected == 0 {
		// A concurrent completion consumed the token first. The deferred
		// rollback discards the password update.
		c.JSON(http.StatusBadRequest, gin.H{"error": resetTokenUsedMessage})
		return
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Error committing password reset: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}
