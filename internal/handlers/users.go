package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"challengehub/internal/middleware"
	"challengehub/internal/models"
)

type UserHandler struct {
	db *sqlx.DB
}

func NewUserHandler(db *sqlx.DB) *UserHandler { return &UserHandler{db: db} }

type leaderboardEntry struct {
	ID                  int    `db:"id" json:"id"`
	Name                string `db:"name" json:"name"`
	TotalPoints         int    `db:"total_points" json:"totalPoints"`
	CurrentStreak       int    `db:"current_streak" json:"currentStreak"`
	ChallengesCompleted int    `db:"challenges_completed" json:"challengesCompleted"`
	Level               int    `db:"level" json:"level"`
}

// Leaderboard returns the top 50 users, ranked by points (default) or streak.
func (h *UserHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	order := "total_points DESC, current_streak DESC"
	if r.URL.Query().Get("sortBy") == "streak" {
		order = "current_streak DESC, total_points DESC"
	}

	entries := []leaderboardEntry{}
	err := h.db.Select(&entries, `
		SELECT id, name, total_points, current_streak, challenges_completed, level
		FROM users ORDER BY `+order+` LIMIT 50`)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not fetch leaderboard")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

type profileResponse struct {
	ID                  int      `json:"id"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Level               int      `json:"level"`
	TotalPoints         int      `json:"totalPoints"`
	CurrentStreak       int      `json:"currentStreak"`
	LongestStreak       int      `json:"longestStreak"`
	ChallengesCompleted int      `json:"challengesCompleted"`
	Achievements        []string `json:"achievements"`
	JoinedAt            string   `json:"joinedAt"`
}

// Profile returns the authenticated user's full profile including unlocked
// achievement IDs.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var u models.User
	if err := h.db.Get(&u, `SELECT `+userSelectColumns+` FROM users WHERE id=$1`, userID); err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	achievements := []string{}
	if err := h.db.Select(&achievements, `SELECT achievement_id FROM user_achievements WHERE user_id=$1 ORDER BY unlocked_at`, userID); err != nil {
		respondError(w, http.StatusInternalServerError, "could not fetch achievements")
		return
	}

	respondJSON(w, http.StatusOK, profileResponse{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		Level:               u.Level,
		TotalPoints:         u.TotalPoints,
		CurrentStreak:       u.CurrentStreak,
		LongestStreak:       u.LongestStreak,
		ChallengesCompleted: u.ChallengesCompleted,
		Achievements:        achievements,
		JoinedAt:            u.CreatedAt.Format(time.RFC3339),
	})
}

type statsResponse struct {
	TotalPoints         int      `json:"totalPoints"`
	CurrentStreak       int      `json:"currentStreak"`
	LongestStreak       int      `json:"longestStreak"`
	ChallengesCompleted int      `json:"challengesCompleted"`
	Level               int      `json:"level"`
	Achievements        []string `json:"achievements"`
}

// Stats returns the public counters for any user by ID.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var out statsResponse
	err = h.db.QueryRowx(`SELECT total_points, current_streak, longest_streak, challenges_completed, level FROM users WHERE id=$1`, id).
		Scan(&out.TotalPoints, &out.CurrentStreak, &out.LongestStreak, &out.ChallengesCompleted, &out.Level)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "could not fetch stats")
		return
	}

	out.Achievements = []string{}
	if err := h.db.Select(&out.Achievements, `SELECT achievement_id FROM user_achievements WHERE user_id=$1 ORDER BY unlocked_at`, id); err != nil {
		respondError(w, http.StatusInternalServerError, "could not fetch achievements")
		return
	}
	respondJSON(w, http.StatusOK, out)
}
