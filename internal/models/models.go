package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryPhoto       Category = "photo"
	CategoryFitness     Category = "fitness"
	CategoryCreative    Category = "creative"
	CategoryLearning    Category = "learning"
	CategoryMindfulness Category = "mindfulness"
	CategoryCoding      Category = "coding"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

type ConditionType string

const (
	ConditionStreak              ConditionType = "streak"
	ConditionChallengesCompleted ConditionType = "challenges_completed"
	ConditionPoints              ConditionType = "points"
	ConditionCategoryCompleted   ConditionType = "category_completed"
)

type User struct {
	ID                  int        `db:"id" json:"id"`
	Email               string     `db:"email" json:"email"`
	PasswordHash        string     `db:"password_hash" json:"-"`
	Name                string     `db:"name" json:"name"`
	Level               int        `db:"level" json:"level"`
	TotalPoints         int        `db:"total_points" json:"totalPoints"`
	CurrentStreak       int        `db:"current_streak" json:"currentStreak"`
	LongestStreak       int        `db:"longest_streak" json:"longestStreak"`
	ChallengesCompleted int        `db:"challenges_completed" json:"challengesCompleted"`
	LastChallengeDate   *time.Time `db:"last_challenge_date" json:"lastChallengeDate,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"joinedAt"`
}

// StringList stores a JSON array of strings in a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

type Challenge struct {
	ID           int        `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Description  string     `db:"description" json:"description"`
	Category     Category   `db:"category" json:"category"`
	Difficulty   Difficulty `db:"difficulty" json:"difficulty"`
	Points       int        `db:"points" json:"points"`
	Requirements StringList `db:"requirements" json:"requirements"`
	Date         time.Time  `db:"challenge_date" json:"date"`
	IsActive     bool       `db:"is_active" json:"isActive"`
}

type Submission struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	UserID      int              `db:"user_id" json:"userId"`
	ChallengeID int              `db:"challenge_id" json:"challengeId"`
	Description string           `db:"description" json:"description"`
	Status      SubmissionStatus `db:"status" json:"status"`
	Upvotes     int              `db:"upvotes" json:"upvotes"`
	Downvotes   int              `db:"downvotes" json:"downvotes"`
	SubmittedAt time.Time        `db:"submitted_at" json:"submittedAt"`
}

type Achievement struct {
	ID                string        `db:"id" json:"id"`
	Name              string        `db:"name" json:"name"`
	Description       string        `db:"description" json:"description"`
	Icon              string        `db:"icon" json:"icon"`
	ConditionType     ConditionType `db:"condition_type" json:"conditionType"`
	ConditionValue    int           `db:"condition_value" json:"conditionValue"`
	ConditionCategory *Category     `db:"condition_category" json:"conditionCategory,omitempty"`
	Points            int           `db:"points" json:"points"`
}

// UserAchievement records when a user unlocked an achievement.
type UserAchievement struct {
	UserID        int       `db:"user_id" json:"userId"`
	AchievementID string    `db:"achievement_id" json:"achievementId"`
	UnlockedAt    time.Time `db:"unlocked_at" json:"unlockedAt"`
}
