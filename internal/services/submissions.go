package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"challengehub/internal/models"
	"challengehub/internal/store"
)

var (
	ErrEmptyDescription  = errors.New("description is required")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrAlreadySubmitted  = errors.New("already submitted for this challenge")
)

// UserStats is the post-update snapshot returned to the client.
type UserStats struct {
	TotalPoints         int `json:"totalPoints"`
	CurrentStreak       int `json:"currentStreak"`
	LongestStreak       int `json:"longestStreak"`
	ChallengesCompleted int `json:"challengesCompleted"`
	Level               int `json:"level"`
}

type SubmitResult struct {
	Points   int
	Stats    UserStats
	Unlocked []string
}

// SubmissionService processes challenge submissions: it validates, persists the
// submission, and rolls the user's counters forward.
type SubmissionService struct {
	store        store.Store
	achievements *AchievementService
	now          func() time.Time
}

func NewSubmissionService(st store.Store, achievements *AchievementService) *SubmissionService {
	return &SubmissionService{store: st, achievements: achievements, now: time.Now}
}

// Submit handles one completed challenge for a user. All checks run before any
// write, and the writes (submission row, user counters, achievement unlocks)
// commit or roll back as one transaction. The unique (user_id, challenge_id)
// constraint backstops the duplicate check against concurrent retries.
func (s *SubmissionService) Submit(ctx context.Context, userID, challengeID int, description string) (*SubmitResult, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	var res SubmitResult
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		challenge, err := tx.ChallengeByID(ctx, challengeID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrChallengeNotFound
			}
			return err
		}

		user, err := tx.UserByID(ctx, userID)
		if err != nil {
			return err
		}

		exists, err := tx.HasSubmission(ctx, userID, challengeID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadySubmitted
		}

		now := s.now()
		sub := &models.Submission{
			ID:          uuid.New(),
			UserID:      userID,
			ChallengeID: challengeID,
			Description: description,
			Status:      models.StatusApproved, // auto-approve for now
			Upvotes:     1,                     // self-vote
			Downvotes:   0,
			SubmittedAt: now,
		}
		if err := tx.CreateSubmission(ctx, sub); err != nil {
			return err
		}

		user.ChallengesCompleted++
		user.TotalPoints += challenge.Points

		current, longest, last := advanceStreak(user.CurrentStreak, user.LongestStreak, user.LastChallengeDate, now)
		user.CurrentStreak = current
		user.LongestStreak = longest
		user.LastChallengeDate = &last

		user.Level = levelForPoints(user.TotalPoints)

		unlocked, err := s.achievements.Evaluate(ctx, tx, user, now)
		if err != nil {
			return err
		}
		// Bonuses may have moved the total past a level boundary.
		user.Level = levelForPoints(user.TotalPoints)

		if err := tx.SaveUserStats(ctx, user); err != nil {
			return err
		}

		res = SubmitResult{
			Points: challenge.Points,
			Stats: UserStats{
				TotalPoints:         user.TotalPoints,
				CurrentStreak:       user.CurrentStreak,
				LongestStreak:       user.LongestStreak,
				ChallengesCompleted: user.ChallengesCompleted,
				Level:               user.Level,
			},
			Unlocked: unlocked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
