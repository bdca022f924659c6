package handlers

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"challengehub/internal/models"
	"challengehub/internal/services"
)

type ChallengeHandler struct {
	db        *sqlx.DB
	challenge *services.ChallengeService
}

func NewChallengeHandler(db *sqlx.DB, challenge *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{db: db, challenge: challenge}
}

// Today returns the challenge of the day, creating it on first access.
func (h *ChallengeHandler) Today(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.challenge.Today(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not fetch today's challenge")
		return
	}
	respondJSON(w, http.StatusOK, challenge)
}

// List returns the 10 most recent active challenges, newest first.
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	challenges := []models.Challenge{}
	err := h.db.Select(&challenges, `
		SELECT id, title, description, category, difficulty, points, requirements, challenge_date, is_active
		FROM challenges WHERE is_active ORDER BY challenge_date DESC LIMIT 10`)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not fetch challenges")
		return
	}
	respondJSON(w, http.StatusOK, challenges)
}
