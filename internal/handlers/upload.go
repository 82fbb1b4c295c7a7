package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

var (
	allowedTrackMimeTypes = []string{
		"audio/mpeg",
		"audio/mp3",
		"audio/wav",
		"audio/x-wav",
		"audio/wave",
		"audio/flac",
		"audio/x-flac",
		"audio/mp4",
		"audio/x-m4a",
		"audio/aac",
		"audio/x-aac",
		"audio/ogg",
		"audio/opus",
	}

	allowedArtworkMimeTypes = []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"image/webp",
	}
)

func normalizeMimeType(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if separator := strings.Index(normalized, ";"); separator >= 0 {
		normalized = strings.TrimSpace(normalized[:separator])
	}
	return normalized
}

func uploadFolder(fileType string) string {
	switch fileType {
	case "artwork":
		return "artwork"
	case "track":
		return "tracks"
	default:
		return "files"
	}
}

// CreateUploadURL validates a proposed upload and returns the storage path
// the client should upload to. It never touches blob storage itself.
// File types other than "track" and "artwork" pass without content-type
// validation, matching the historical behavior of the upload flow.
func CreateUploadURL(c *gin.Context) {
	if _, exists := c.Get("user_id"); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Filename    string `json:"filename"`
		ContentType string `json:"contentType"`
		FileType    string `json:"fileType"`
		FileSize    int64  `json:"fileSize"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Filename) == "" || strings.TrimSpace(req.ContentType) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filename and content type are required"})
		return
	}

	contentType := normalizeMimeType(req.ContentType)

	switch req.FileType {
	case "track":
		if !mimetype.EqualsAny(contentType, allowedTrackMimeTypes...) && !strings.HasPrefix(contentType, "audio/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type for track upload"})
			return
		}
	case "artwork":
		if !mimetype.EqualsAny(contentType, allowedArtworkMimeTypes...) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type for artwork upload"})
			return
		}
	}

	pathname := fmt.Sprintf("%s/%d-%s", uploadFolder(req.FileType), time.Now().UnixMilli(), req.Filename)

	c.JSON(http.StatusOK, gin.H{
		"pathname":    pathname,
		"contentType": req.ContentType,
		"fileSize":    req.FileSize,
	})
}
