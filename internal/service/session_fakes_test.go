package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

type fakeSessionRepo struct {
	rows  map[string]domain.Session
	users map[uuid.UUID]domain.User

	inserted      []domain.Session
	deletedIDs    []string
	deletedUsers  []uuid.UUID
	expiryUpdates []string
	listLimits    []int

	listErr   error
	insertErr error
	findErr   error
	updateErr error
	deleteErr error
}

func newFakeSessionRepo(users ...domain.User) *fakeSessionRepo {
	f := &fakeSessionRepo{
		rows:  make(map[string]domain.Session),
		users: make(map[uuid.UUID]domain.User),
	}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeSessionRepo) Insert(ctx context.Context, session domain.Session) (*domain.Session, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	session.CreatedAt = time.Now()
	f.rows[session.ID] = session
	f.inserted = append(f.inserted, session)
	out := session
	return &out, nil
}

func (f *fakeSessionRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Session, error) {
	f.listLimits = append(f.listLimits, limit)
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := f.byUser(userID)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSessionRepo) byUser(userID uuid.UUID) []domain.Session {
	out := make([]domain.Session, 0)
	for _, s := range f.rows {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	return out
}

func (f *fakeSessionRepo) FindWithUser(ctx context.Context, id string) (*domain.SessionWithUser, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	s, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	u, ok := f.users[s.UserID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &domain.SessionWithUser{Session: s, User: u}, nil
}

func (f *fakeSessionRepo) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.expiryUpdates = append(f.expiryUpdates, id)
	s, ok := f.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	s.ExpiresAt = expiresAt
	f.rows[id] = s
	return nil
}

func (f *fakeSessionRepo) DeleteByID(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	delete(f.rows, id)
	return nil
}

func (f *fakeSessionRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedUsers = append(f.deletedUsers, userID)
	for id, s := range f.rows {
		if s.UserID == userID {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeSessionRepo) DeleteByIDForUser(ctx context.Context, id string, userID uuid.UUID) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	s, ok := f.rows[id]
	if !ok || s.UserID != userID {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

type sequenceCrypto struct {
	tokens []string
	next   int
}

func (c *sequenceCrypto) RandomToken() (string, error) {
	t := c.tokens[c.next%len(c.tokens)]
	c.next++
	return t, nil
}

func (c *sequenceCrypto) HashToken(raw string) string {
	return "hash:" + raw
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}
