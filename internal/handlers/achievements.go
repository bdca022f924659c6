package handlers

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"challengehub/internal/middleware"
	"challengehub/internal/models"
)

type AchievementHandler struct {
	db *sqlx.DB
}

func NewAchievementHandler(db *sqlx.DB) *AchievementHandler {
	return &AchievementHandler{db: db}
}

type achievementStatus struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Icon           string               `json:"icon"`
	Points         int                  `json:"points"`
	ConditionType  models.ConditionType `json:"conditionType"`
	ConditionValue int                  `json:"conditionValue"`
	Category       *models.Category     `json:"conditionCategory,omitempty"`
	Unlocked       bool                 `json:"unlocked"`
	UnlockedAt     *time.Time           `json:"unlockedAt"`
}

// List returns the whole catalog, cheapest bonus first, annotated with the
// caller's unlock state and the stored unlock time.
func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	rows, err := h.db.Queryx(`
		SELECT a.id, a.name, a.description, a.icon, a.points, a.condition_type, a.condition_value, a.condition_category, ua.unlocked_at
		FROM achievements a
		LEFT JOIN user_achievements ua ON ua.achievement_id = a.id AND ua.user_id = $1
		ORDER BY a.points ASC, a.id ASC`, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not fetch achievements")
		return
	}
	defer rows.Close()

	out := []achievementStatus{}
	for rows.Next() {
		var a achievementStatus
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Icon, &a.Points, &a.ConditionType, &a.ConditionValue, &a.Category, &a.UnlockedAt); err != nil {
			respondError(w, http.StatusInternalServerError, "could not fetch achievements")
			return
		}
		a.Unlocked = a.UnlockedAt != nil
		out = append(out, a)
	}
	respondJSON(w, http.StatusOK, out)
}
