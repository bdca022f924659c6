package handlers

import (
	"encoding/json"
	"net/http"

	"challengehub/internal/models"
)

// userPayload is the user shape returned by the auth endpoints.
type userPayload struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Level               int    `json:"level"`
	TotalPoints         int    `json:"totalPoints"`
	CurrentStreak       int    `json:"currentStreak"`
	LongestStreak       int    `json:"longestStreak"`
	ChallengesCompleted int    `json:"challengesCompleted"`
}

func toUserPayload(u models.User) userPayload {
	return userPayload{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		Level:               u.Level,
		TotalPoints:         u.TotalPoints,
		CurrentStreak:       u.CurrentStreak,
		LongestStreak:       u.LongestStreak,
		ChallengesCompleted: u.ChallengesCompleted,
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError writes {"message": ...} so clients get a readable reason.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
