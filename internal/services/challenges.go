package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"challengehub/internal/models"
	"challengehub/internal/store"
)

// ChallengeService resolves the challenge of the day, creating it from the
// static template pool on first access.
type ChallengeService struct {
	store store.Store
	now   func() time.Time
}

func NewChallengeService(st store.Store) *ChallengeService {
	return &ChallengeService{store: st, now: time.Now}
}

// Today returns the active challenge for the current calendar day. If none
// exists yet it materializes the day's template; the challenge_date unique
// constraint keeps concurrent first requests from creating two.
func (s *ChallengeService) Today(ctx context.Context) (*models.Challenge, error) {
	today := midnight(s.now())

	challenge, err := s.store.ChallengeForDate(ctx, today)
	if err == nil {
		return challenge, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	tpl := TemplateForDate(today)
	c := &models.Challenge{
		Title:        tpl.Title,
		Description:  tpl.Description,
		Category:     tpl.Category,
		Difficulty:   tpl.Difficulty,
		Points:       tpl.Points,
		Requirements: tpl.Requirements,
		Date:         today,
		IsActive:     true,
	}
	if err := s.store.CreateChallenge(ctx, c); err != nil {
		return nil, err
	}
	// Re-read so a racing insert and this one agree on the row.
	return s.store.ChallengeForDate(ctx, today)
}
