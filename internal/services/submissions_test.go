package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"challengehub/internal/models"
)

func newFixture(t *testing.T, now time.Time) (*fakeStore, *SubmissionService) {
	t.Helper()
	st := newFakeStore()
	st.catalog = defaultAchievements()
	svc := NewSubmissionService(st, NewAchievementService())
	svc.now = func() time.Time { return now }
	return st, svc
}

func addUser(st *fakeStore, u models.User) {
	if u.Level == 0 {
		u.Level = levelForPoints(u.TotalPoints)
	}
	st.users[u.ID] = &u
}

func addChallenge(st *fakeStore, id, points int, category models.Category) {
	st.challenges[id] = &models.Challenge{
		ID:       id,
		Title:    "Test Challenge",
		Category: category,
		Points:   points,
		IsActive: true,
	}
}

func preUnlock(st *fakeStore, userID int, ids ...string) {
	if st.unlocked[userID] == nil {
		st.unlocked[userID] = map[string]time.Time{}
	}
	for _, id := range ids {
		st.unlocked[userID][id] = time.Now()
	}
}

func TestSubmitFirstChallenge(t *testing.T) {
	now := date(2026, 3, 10).Add(9 * time.Hour)
	st, svc := newFixture(t, now)
	addUser(st, models.User{ID: 1})
	addChallenge(st, 1, 10, models.CategoryMindfulness)

	res, err := svc.Submit(context.Background(), 1, 1, "Did the thing")
	require.NoError(t, err)

	assert.Equal(t, 10, res.Points)
	// first_steps (1 completed, bonus 10) fires on top of the challenge points
	assert.Equal(t, []string{"first_steps"}, res.Unlocked)
	assert.Equal(t, UserStats{
		TotalPoints:         20,
		CurrentStreak:       1,
		LongestStreak:       1,
		ChallengesCompleted: 1,
		Level:               1,
	}, res.Stats)

	saved := st.users[1]
	assert.Equal(t, 20, saved.TotalPoints)
	require.NotNil(t, saved.LastChallengeDate)
	assert.Equal(t, date(2026, 3, 10), *saved.LastChallengeDate)

	sub := st.subs[subKey(1, 1)]
	require.NotNil(t, sub)
	assert.Equal(t, models.StatusApproved, sub.Status)
	assert.Equal(t, 1, sub.Upvotes)
	assert.Equal(t, 0, sub.Downvotes)
}

func TestSubmitEmptyDescription(t *testing.T) {
	st, svc := newFixture(t, date(2026, 3, 10))
	addUser(st, models.User{ID: 1})
	addChallenge(st, 1, 10, models.CategoryPhoto)

	_, err := svc.Submit(context.Background(), 1, 1, "   \t ")
	assert.ErrorIs(t, err, ErrEmptyDescription)
	assert.Empty(t, st.subs)
	assert.Equal(t, 0, st.users[1].TotalPoints)
}

func TestSubmitUnknownChallenge(t *testing.T) {
	st, svc := newFixture(t, date(2026, 3, 10))
	addUser(st, models.User{ID: 1})

	_, err := svc.Submit(context.Background(), 1, 42, "done")
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestSubmitDuplicateConflict(t *testing.T) {
	st, svc := newFixture(t, date(2026, 3, 10))
	addUser(st, models.User{ID: 1})
	addChallenge(st, 1, 10, models.CategoryFitness)

	first, err := svc.Submit(context.Background(), 1, 1, "done")
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 1, 1, "done again")
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	// counters unchanged from after the first call
	saved := st.users[1]
	assert.Equal(t, first.Stats.TotalPoints, saved.TotalPoints)
	assert.Equal(t, first.Stats.ChallengesCompleted, saved.ChallengesCompleted)
	assert.Equal(t, first.Stats.CurrentStreak, saved.CurrentStreak)
}

func TestSubmitSecondChallengeSameDay(t *testing.T) {
	today := date(2026, 3, 10)
	st, svc := newFixture(t, today)
	addUser(st, models.User{ID: 1,
		TotalPoints: 30, CurrentStreak: 2, LongestStreak: 2, ChallengesCompleted: 3,
		LastChallengeDate: &today})
	preUnlock(st, 1, "first_steps")
	addChallenge(st, 7, 10, models.CategoryLearning)

	res, err := svc.Submit(context.Background(), 1, 7, "second one today")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Stats.CurrentStreak, "same-day completion leaves the streak alone")
	assert.Equal(t, 2, res.Stats.LongestStreak)
	assert.Equal(t, 4, res.Stats.ChallengesCompleted)
}

func TestSubmitGapResetsStreak(t *testing.T) {
	lastWeek := date(2026, 3, 2)
	st, svc := newFixture(t, date(2026, 3, 10))
	addUser(st, models.User{ID: 1,
		TotalPoints: 40, CurrentStreak: 5, LongestStreak: 5, ChallengesCompleted: 4,
		LastChallengeDate: &lastWeek})
	preUnlock(st, 1, "first_steps", "streak_starter")
	addChallenge(st, 2, 10, models.CategoryCreative)

	res, err := svc.Submit(context.Background(), 1, 2, "back at it")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.CurrentStreak)
	assert.Equal(t, 5, res.Stats.LongestStreak)
}

func TestSubmitConsecutiveDayAcrossZones(t *testing.T) {
	// last_challenge_date comes back from the DATE column as midnight UTC;
	// the server clock may sit in any zone.
	ist := time.FixedZone("IST", 5*3600+1800)
	yesterdayUTC := date(2026, 3, 9)
	st, svc := newFixture(t, time.Date(2026, 3, 10, 9, 0, 0, 0, ist))
	addUser(st, models.User{ID: 1,
		TotalPoints: 20, CurrentStreak: 2, LongestStreak: 2, ChallengesCompleted: 2,
		LastChallengeDate: &yesterdayUTC})
	preUnlock(st, 1, "first_steps")
	addChallenge(st, 8, 10, models.CategoryPhoto)

	res, err := svc.Submit(context.Background(), 1, 8, "three in a row")
	require.NoError(t, err)

	assert.Equal(t, 3, res.Stats.CurrentStreak)
	assert.Equal(t, 3, res.Stats.LongestStreak)
}

func TestSubmitSeventhConsecutiveDay(t *testing.T) {
	yesterday := date(2026, 3, 9)
	st, svc := newFixture(t, date(2026, 3, 10))
	addUser(st, models.User{ID: 1,
		TotalPoints: 60, CurrentStreak: 6, LongestStreak: 6, ChallengesCompleted: 6,
		LastChallengeDate: &yesterday})
	preUnlock(st, 1, "first_steps", "streak_starter", "fitness_fanatic", "mindful_master")
	addChallenge(st, 3, 10, models.CategoryCoding)

	res, err := svc.Submit(context.Background(), 1, 3, "seven in a row")
	require.NoError(t, err)

	assert.Equal(t, 7, res.Stats.CurrentStreak)
	assert.Equal(t, 7, res.Stats.LongestStreak)
	assert.Equal(t, []string{"week_warrior"}, res.Unlocked)
	// 60 + 10 challenge + 50 week_warrior bonus
	assert.Equal(t, 120, res.Stats.TotalPoints)
	assert.Equal(t, 2, res.Stats.Level)
}

func TestSubmitLevelBoundary(t *testing.T) {
	yesterday := date(2026, 3, 9)
	st, svc := newFixture(t, date(2026, 3, 10))
	addUser(st, models.User{ID: 1,
		TotalPoints: 95, CurrentStreak: 1, LongestStreak: 1, ChallengesCompleted: 8,
		LastChallengeDate: &yesterday})
	preUnlock(st, 1, "first_steps", "streak_starter", "fitness_fanatic", "mindful_master", "century_club")
	addChallenge(st, 4, 10, models.CategoryPhoto)

	res, err := svc.Submit(context.Background(), 1, 4, "over the line")
	require.NoError(t, err)

	assert.Equal(t, 105, res.Stats.TotalPoints)
	assert.Equal(t, 2, res.Stats.Level)
	assert.Empty(t, res.Unlocked)
}

func TestSubmitBonusCrossesLevelBoundary(t *testing.T) {
	yesterday := date(2026, 3, 9)
	st, svc := newFixture(t, date(2026, 3, 10))
	addUser(st, models.User{ID: 1,
		TotalPoints: 140, CurrentStreak: 1, LongestStreak: 2, ChallengesCompleted: 24,
		LastChallengeDate: &yesterday})
	preUnlock(st, 1, "first_steps", "fitness_fanatic", "mindful_master", "photo_enthusiast", "century_club")
	addChallenge(st, 5, 10, models.CategoryLearning)

	res, err := svc.Submit(context.Background(), 1, 5, "number twenty-five")
	require.NoError(t, err)

	// 140 + 10 + challenge_champion bonus 100; the level must reflect the bonus
	assert.Equal(t, []string{"challenge_champion"}, res.Unlocked)
	assert.Equal(t, 250, res.Stats.TotalPoints)
	assert.Equal(t, 3, res.Stats.Level)
}

func TestSubmitNoCascadingUnlocks(t *testing.T) {
	// week_warrior's bonus pushes the total past 100, but century_club was
	// already evaluated earlier in the same sweep and stays locked until the
	// next submission.
	yesterday := date(2026, 3, 9)
	st, svc := newFixture(t, date(2026, 3, 10))
	addUser(st, models.User{ID: 1,
		TotalPoints: 60, CurrentStreak: 6, LongestStreak: 6, ChallengesCompleted: 6,
		LastChallengeDate: &yesterday})
	preUnlock(st, 1, "first_steps", "streak_starter", "fitness_fanatic", "mindful_master")
	addChallenge(st, 6, 10, models.CategoryMindfulness)

	res, err := svc.Submit(context.Background(), 1, 6, "done")
	require.NoError(t, err)

	assert.Equal(t, 120, res.Stats.TotalPoints)
	assert.NotContains(t, res.Unlocked, "century_club")
	_, centuryUnlocked := st.unlocked[1]["century_club"]
	assert.False(t, centuryUnlocked)
}

func TestEvaluateIdempotent(t *testing.T) {
	st := newFakeStore()
	st.catalog = defaultAchievements()
	svc := NewAchievementService()
	now := date(2026, 3, 10)

	user := &models.User{ID: 1, TotalPoints: 10, CurrentStreak: 1, LongestStreak: 1, ChallengesCompleted: 1, Level: 1}

	first, err := svc.Evaluate(context.Background(), st, user, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"first_steps"}, first)
	assert.Equal(t, 20, user.TotalPoints)

	again, err := svc.Evaluate(context.Background(), st, user, now)
	require.NoError(t, err)
	assert.Empty(t, again, "re-running with unchanged counters unlocks nothing")
	assert.Equal(t, 20, user.TotalPoints, "no double bonus")
}

func TestEvaluateCategoryApproximation(t *testing.T) {
	// category_completed counts all completions, not per-category ones
	st := newFakeStore()
	st.catalog = defaultAchievements()
	svc := NewAchievementService()

	user := &models.User{ID: 1, TotalPoints: 0, ChallengesCompleted: 5, Level: 1}
	unlocked, err := svc.Evaluate(context.Background(), st, user, date(2026, 3, 10))
	require.NoError(t, err)

	assert.Contains(t, unlocked, "fitness_fanatic")
	assert.Contains(t, unlocked, "mindful_master")
}
