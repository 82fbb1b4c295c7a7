package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func getJSON(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestListReleasesFollowingRequiresSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/releases", ListReleases)

	resp := getJSON(t, router, "/api/releases?following=true")
	mustStatus(t, resp.Code, http.StatusUnauthorized)
}

func TestListReleasesFollowingEmptySetShortCircuits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(`SELECT following_id FROM follows`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"following_id"}))

	router := gin.New()
	router.GET("/api/releases", withTestUserID(5), ListReleases)

	resp := getJSON(t, router, "/api/releases?following=true")
	expectHTTP200(t, resp.Code)

	var out struct {
		Releases []any `json:"releases"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out.Releases == nil || len(out.Releases) != 0 {
		t.Fatalf("expected empty releases array, got %#v", out.Releases)
	}

	// No release query may run when the follow set is empty.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestListReleasesFollowingFiltersToFollowedUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(`SELECT following_id FROM follows`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"following_id"}).AddRow(2).AddRow(3))

	now := time.Now()
	mock.
		ExpectQuery(`SELECT r.id, r.user_id, r.title, r.artist, r.uploaded_at, u.username`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "user_id", "title", "artist", "uploaded_at", "username"}).
				AddRow(11, 2, "Night Drive", "neon owl", now, "neonowl").
				AddRow(10, 3, "First Light", "marble arch", now.Add(-time.Hour), "marblearch"),
		)
	mock.
		ExpectQuery(`SELECT rt.release_id, t.name`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(
			sqlmock.NewRows([]string{"release_id", "name"}).
				AddRow(11, "electronic").
				AddRow(11, "synthwave"),
		)
	mock.
		ExpectQuery(`SELECT id, release_id, title, track_number`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "release_id", "title", "track_number"}).
				AddRow(101, 11, "Intro", 1).
				AddRow(102, 11, "Motorway", 2),
		)

	router := gin.New()
	router.GET("/api/releases", withTestUserID(5), ListReleases)

	resp := getJSON(t, router, "/api/releases?following=true")
	expectHTTP200(t, resp.Code)

	var out struct {
		Releases []struct {
			ID       int      `json:"id"`
			Username string   `json:"username"`
			Tags     []string `json:"tags"`
			Tracks   []struct {
				Title       string `json:"title"`
				TrackNumber int    `json:"track_number"`
			} `json:"tracks"`
		} `json:"releases"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if len(out.Releases) != 2 {
		t.Fatalf("expected 2 releases, got %d", len(out.Releases))
	}
	if out.Releases[0].ID != 11 || out.Releases[0].Username != "neonowl" {
		t.Fatalf("unexpected first release: %+v", out.Releases[0])
	}
	if len(out.Releases[0].Tags) != 2 {
		t.Fatalf("expected 2 tags on first release, got %v", out.Releases[0].Tags)
	}
	if len(out.Releases[0].Tracks) != 2 || out.Releases[0].Tracks[0].TrackNumber != 1 {
		t.Fatalf("expected tracks ordered by number, got %+v", out.Releases[0].Tracks)
	}
	if len(out.Releases[1].Tags) != 0 || len(out.Releases[1].Tracks) != 0 {
		t.Fatalf("expected empty tags/tracks on second release, got %+v", out.Releases[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestListReleasesAppliesLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.
		ExpectQuery(`SELECT r.id, r.user_id, r.title, r.artist, r.uploaded_at, u.username`).
		WithArgs(1).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "user_id", "title", "artist", "uploaded_at", "username"}).
				AddRow(20, 4, "Single", "someone", now, "someone"),
		)
	mock.
		ExpectQuery(`SELECT rt.release_id, t.name`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"release_id", "name"}))
	mock.
		ExpectQuery(`SELECT id, release_id, title, track_number`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "release_id", "title", "track_number"}))

	router := gin.New()
	router.GET("/api/releases", ListReleases)

	resp := getJSON(t, router, "/api/releases?limit=1")
	expectHTTP200(t, resp.Code)

	var out struct {
		Releases []any `json:"releases"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if len(out.Releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(out.Releases))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
