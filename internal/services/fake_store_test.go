package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"challengehub/internal/models"
	"challengehub/internal/store"
)

// fakeStore is an in-memory Store. Reads hand out copies and writes copy back,
// mirroring how rows behave across a real driver.
type fakeStore struct {
	users      map[int]*models.User
	challenges map[int]*models.Challenge
	subs       map[string]*models.Submission
	catalog    []models.Achievement
	unlocked   map[int]map[string]time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      map[int]*models.User{},
		challenges: map[int]*models.Challenge{},
		subs:       map[string]*models.Submission{},
		unlocked:   map[int]map[string]time.Time{},
	}
}

func subKey(userID, challengeID int) string {
	return fmt.Sprintf("%d/%d", userID, challengeID)
}

func (f *fakeStore) UserByID(_ context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) SaveUserStats(_ context.Context, u *models.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) ChallengeByID(_ context.Context, id int) (*models.Challenge, error) {
	c, ok := f.challenges[id]
	if !ok || !c.IsActive {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) ChallengeForDate(_ context.Context, date time.Time) (*models.Challenge, error) {
	for _, c := range f.challenges {
		if c.IsActive && c.Date.Equal(date) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) CreateChallenge(_ context.Context, c *models.Challenge) error {
	for _, existing := range f.challenges {
		if existing.Date.Equal(c.Date) {
			c.ID = existing.ID
			return nil
		}
	}
	c.ID = len(f.challenges) + 1
	cp := *c
	f.challenges[c.ID] = &cp
	return nil
}

func (f *fakeStore) HasSubmission(_ context.Context, userID, challengeID int) (bool, error) {
	_, ok := f.subs[subKey(userID, challengeID)]
	return ok, nil
}

func (f *fakeStore) CreateSubmission(_ context.Context, s *models.Submission) error {
	cp := *s
	f.subs[subKey(s.UserID, s.ChallengeID)] = &cp
	return nil
}

func (f *fakeStore) Achievements(_ context.Context) ([]models.Achievement, error) {
	out := append([]models.Achievement(nil), f.catalog...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points < out[j].Points
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStore) UnlockedAchievementIDs(_ context.Context, userID int) ([]string, error) {
	var ids []string
	for id := range f.unlocked[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeStore) UnlockAchievement(_ context.Context, ua *models.UserAchievement) error {
	if f.unlocked[ua.UserID] == nil {
		f.unlocked[ua.UserID] = map[string]time.Time{}
	}
	if _, ok := f.unlocked[ua.UserID][ua.AchievementID]; !ok {
		f.unlocked[ua.UserID][ua.AchievementID] = ua.UnlockedAt
	}
	return nil
}

func (f *fakeStore) WithTx(_ context.Context, fn func(store.Store) error) error {
	return fn(f)
}
