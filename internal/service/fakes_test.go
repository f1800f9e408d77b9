package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/seanacker/souberUp/internal/models"
	"github.com/seanacker/souberUp/internal/repository"
)

// In-memory stores mirroring the repository contracts, including the
// constraint-violation conflict signals.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.PhoneNumber == user.PhoneNumber {
			return repository.ErrPhoneTaken
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) FindByPhone(ctx context.Context, phoneNumber string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.PhoneNumber == phoneNumber {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) SearchByName(ctx context.Context, q string, limit int) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, user := range f.users {
		if strings.Contains(strings.ToLower(user.Name), strings.ToLower(q)) {
			out = append(out, user)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUserStore) Update(ctx context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	existing.Name = user.Name
	existing.UsageGoalMinutes = user.UsageGoalMinutes
	existing.UpdatedAt = time.Now()
	f.users[user.ID] = existing
	return nil
}

func (f *fakeUserStore) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	existing.PasswordHash = passwordHash
	f.users[id] = existing
	return nil
}

type fakeConnectionStore struct {
	mu    sync.Mutex
	edges map[string]models.Connection
}

func newFakeConnectionStore() *fakeConnectionStore {
	return &fakeConnectionStore{edges: make(map[string]models.Connection)}
}

func edgeKey(userID string, otherID string) string {
	return userID + "|" + otherID
}

func (f *fakeConnectionStore) CreatePair(ctx context.Context, forward models.Connection, reverse models.Connection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, conn := range []models.Connection{forward, reverse} {
		if _, ok := f.edges[edgeKey(conn.UserID, conn.OtherUserID)]; ok {
			return repository.ErrContactExists
		}
	}
	for _, conn := range []models.Connection{forward, reverse} {
		conn.CreatedAt = time.Now()
		f.edges[edgeKey(conn.UserID, conn.OtherUserID)] = conn
	}
	return nil
}

type fakeUsageStore struct {
	mu   sync.Mutex
	rows map[string]models.UsageDaily
}

func newFakeUsageStore() *fakeUsageStore {
	return &fakeUsageStore{rows: make(map[string]models.UsageDaily)}
}

func usageKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (f *fakeUsageStore) Upsert(ctx context.Context, row models.UsageDaily) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := usageKey(row.UserID, row.Date)
	if existing, ok := f.rows[key]; ok {
		row.ID = existing.ID
	}
	f.rows[key] = row
	return nil
}

func (f *fakeUsageStore) SumRange(ctx context.Context, userID string, from time.Time, to time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, row := range f.rows {
		if row.UserID != userID {
			continue
		}
		if !row.Date.Before(from) && row.Date.Before(to) {
			total += row.TotalMS
		}
	}
	return total, nil
}

func (f *fakeUsageStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for key, row := range f.rows {
		if row.Date.Before(cutoff) {
			delete(f.rows, key)
			deleted++
		}
	}
	return deleted, nil
}
