package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"challengehub/internal/models"
)

// Store is the persistence surface the core services run against. The sqlx
// implementation below is the real one; tests substitute an in-memory fake.
type Store interface {
	UserByID(ctx context.Context, id int) (*models.User, error)
	SaveUserStats(ctx context.Context, u *models.User) error
	ChallengeByID(ctx context.Context, id int) (*models.Challenge, error)
	ChallengeForDate(ctx context.Context, date time.Time) (*models.Challenge, error)
	CreateChallenge(ctx context.Context, c *models.Challenge) error
	HasSubmission(ctx context.Context, userID, challengeID int) (bool, error)
	CreateSubmission(ctx context.Context, s *models.Submission) error
	Achievements(ctx context.Context) ([]models.Achievement, error)
	UnlockedAchievementIDs(ctx context.Context, userID int) ([]string, error)
	UnlockAchievement(ctx context.Context, ua *models.UserAchievement) error

	// WithTx runs fn against a transaction-scoped Store. The transaction is
	// committed when fn returns nil and rolled back otherwise.
	WithTx(ctx context.Context, fn func(Store) error) error
}

type SQLStore struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

func New(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, ext: db}
}

func (s *SQLStore) WithTx(ctx context.Context, fn func(Store) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&SQLStore{db: s.db, ext: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

const userColumns = `id, email, password_hash, name, level, total_points, current_streak, longest_streak, challenges_completed, last_challenge_date, created_at`

func (s *SQLStore) UserByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	if err := sqlx.GetContext(ctx, s.ext, &u, `SELECT `+userColumns+` FROM users WHERE id=$1`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLStore) SaveUserStats(ctx context.Context, u *models.User) error {
	_, err := s.ext.ExecContext(ctx, `UPDATE users SET
		level=$1, total_points=$2, current_streak=$3, longest_streak=$4,
		challenges_completed=$5, last_challenge_date=$6
		WHERE id=$7`,
		u.Level, u.TotalPoints, u.CurrentStreak, u.LongestStreak,
		u.ChallengesCompleted, u.LastChallengeDate, u.ID)
	return err
}

const challengeColumns = `id, title, description, category, difficulty, points, requirements, challenge_date, is_active`

func (s *SQLStore) ChallengeByID(ctx context.Context, id int) (*models.Challenge, error) {
	var c models.Challenge
	if err := sqlx.GetContext(ctx, s.ext, &c, `SELECT `+challengeColumns+` FROM challenges WHERE id=$1 AND is_active`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *SQLStore) ChallengeForDate(ctx context.Context, date time.Time) (*models.Challenge, error) {
	var c models.Challenge
	if err := sqlx.GetContext(ctx, s.ext, &c, `SELECT `+challengeColumns+` FROM challenges WHERE challenge_date=$1 AND is_active`, date); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateChallenge inserts the challenge for its date. Two servers racing on the
// same day both end up with the same row: the loser's insert is a no-op and the
// caller re-reads by date.
func (s *SQLStore) CreateChallenge(ctx context.Context, c *models.Challenge) error {
	return sqlx.GetContext(ctx, s.ext, &c.ID, `
		INSERT INTO challenges (title, description, category, difficulty, points, requirements, challenge_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (challenge_date) DO UPDATE SET is_active = challenges.is_active
		RETURNING id`,
		c.Title, c.Description, c.Category, c.Difficulty, c.Points, c.Requirements, c.Date, c.IsActive)
}

func (s *SQLStore) HasSubmission(ctx context.Context, userID, challengeID int) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, s.ext, &exists,
		`SELECT EXISTS (SELECT 1 FROM submissions WHERE user_id=$1 AND challenge_id=$2)`, userID, challengeID)
	return exists, err
}

func (s *SQLStore) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	_, err := s.ext.ExecContext(ctx, `
		INSERT INTO submissions (id, user_id, challenge_id, description, status, upvotes, downvotes, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sub.ID, sub.UserID, sub.ChallengeID, sub.Description, sub.Status, sub.Upvotes, sub.Downvotes, sub.SubmittedAt)
	return err
}

// Achievements returns the catalog in evaluation order, cheapest bonus first.
func (s *SQLStore) Achievements(ctx context.Context) ([]models.Achievement, error) {
	var out []models.Achievement
	err := sqlx.SelectContext(ctx, s.ext, &out, `
		SELECT id, name, description, icon, condition_type, condition_value, condition_category, points
		FROM achievements ORDER BY points ASC, id ASC`)
	return out, err
}

func (s *SQLStore) UnlockedAchievementIDs(ctx context.Context, userID int) ([]string, error) {
	var ids []string
	err := sqlx.SelectContext(ctx, s.ext, &ids,
		`SELECT achievement_id FROM user_achievements WHERE user_id=$1`, userID)
	return ids, err
}

func (s *SQLStore) UnlockAchievement(ctx context.Context, ua *models.UserAchievement) error {
	_, err := s.ext.ExecContext(ctx, `
		INSERT INTO user_achievements (user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`,
		ua.UserID, ua.AchievementID, ua.UnlockedAt)
	return err
}
