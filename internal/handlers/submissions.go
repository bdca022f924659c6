package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"challengehub/internal/middleware"
	"challengehub/internal/services"
)

// submitter is what the handler needs from the submission processor.
type submitter interface {
	Submit(ctx context.Context, userID, challengeID int, description string) (*services.SubmitResult, error)
}

type SubmissionHandler struct {
	db          *sqlx.DB
	submissions submitter
}

func NewSubmissionHandler(db *sqlx.DB, submissions submitter) *SubmissionHandler {
	return &SubmissionHandler{db: db, submissions: submissions}
}

type submitRequest struct {
	ChallengeID int    `json:"challengeId"`
	Description string `json:"description"`
}

// Submit records a completed challenge for the authenticated user.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.ChallengeID == 0 {
		respondError(w, http.StatusBadRequest, "Challenge ID is required")
		return
	}

	res, err := h.submissions.Submit(r.Context(), userID, req.ChallengeID, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyDescription):
			respondError(w, http.StatusBadRequest, "Description is required")
		case errors.Is(err, services.ErrChallengeNotFound):
			respondError(w, http.StatusNotFound, "Challenge not found")
		case errors.Is(err, services.ErrAlreadySubmitted):
			respondError(w, http.StatusConflict, "You have already submitted for this challenge today")
		default:
			respondError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	unlocked := res.Unlocked
	if unlocked == nil {
		unlocked = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":              "Challenge submitted successfully!",
		"points":               res.Points,
		"newStats":             res.Stats,
		"unlockedAchievements": unlocked,
	})
}

type submissionEntry struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ChallengeID    int       `db:"challenge_id" json:"challengeId"`
	ChallengeTitle string    `db:"title" json:"challengeTitle"`
	Category       string    `db:"category" json:"category"`
	Points         int       `db:"points" json:"points"`
	Description    string    `db:"description" json:"description"`
	Status         string    `db:"status" json:"status"`
	Upvotes        int       `db:"upvotes" json:"upvotes"`
	Downvotes      int       `db:"downvotes" json:"downvotes"`
	SubmittedAt    time.Time `db:"submitted_at" json:"submittedAt"`
}

// MySubmissions returns the caller's 10 most recent submissions with their
// challenges.
func (h *SubmissionHandler) MySubmissions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	out := []submissionEntry{}
	err := h.db.Select(&out, `
		SELECT s.id, s.challenge_id, c.title, c.category, c.points, s.description, s.status, s.upvotes, s.downvotes, s.submitted_at
		FROM submissions s JOIN challenges c ON c.id = s.challenge_id
		WHERE s.user_id = $1
		ORDER BY s.submitted_at DESC LIMIT 10`, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not fetch submissions")
		return
	}
	respondJSON(w, http.StatusOK, out)
}
