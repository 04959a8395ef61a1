// Package planner holds the planner's actions: channel connection, idea and
// topic generation, competitor tracking and insights. Every generate action
// validates its preconditions, synthesises the rows and writes them in one
// transaction, so a failed call leaves nothing behind and can be retried.
package planner

import (
	"context"
	"errors"
	"math/rand"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"yt-planner/internal/auth"
	"yt-planner/internal/db"
	"yt-planner/internal/models"
	"yt-planner/pkg/tasks"
)

type Service struct {
	store    *db.Store
	enqueuer tasks.TaskEnqueuer

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewService wires the planner. enqueuer may be nil, in which case follow-up
// background work is skipped.
func NewService(store *db.Store, enqueuer tasks.TaskEnqueuer, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{store: store, enqueuer: enqueuer, rng: rng, now: time.Now}
}

func (s *Service) intn(n int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int63n(n)
}

func (s *Service) float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *Service) pick(options []string) string {
	return options[s.intn(int64(len(options)))]
}

// SignIn records a sign-in for identity and refreshes last_login_at. The
// premium flag of an existing user is kept; initialPremium applies only to a
// user seen for the first time.
func (s *Service) SignIn(ctx context.Context, identity *auth.Identity, initialPremium bool) (*models.User, error) {
	u := db.UserUpsert{UserID: identity.ID, InitialPremium: initialPremium}
	if identity.FullName != "" {
		u.Name = &identity.FullName
	}
	if identity.Email != "" {
		u.Email = &identity.Email
	}
	return s.store.UpsertUser(ctx, u)
}

func (s *Service) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

func (s *Service) UpdatePremiumStatus(ctx context.Context, userID string, isPremium bool) error {
	if err := s.store.UpdatePremiumStatus(ctx, userID, isPremium); err != nil {
		return err
	}
	log.WithFields(log.Fields{"user": userID, "premium": isPremium}).Info("Premium status updated")
	return nil
}

// enqueue schedules follow-up work. Failures are logged and swallowed: the
// action that triggered them has already been committed.
func (s *Service) enqueue(task *asynq.Task, err error) {
	if s.enqueuer == nil {
		return
	}
	if err != nil {
		log.Printf("failed to create background task: %v", err)
		return
	}
	if _, err := s.enqueuer.Enqueue(task); err != nil && !errors.Is(err, asynq.ErrDuplicateTask) {
		log.Printf("failed to enqueue %s task: %v", task.Type(), err)
	}
}

// lastSegment returns the last path segment of a channel URL, or fallback
// when the URL ends in a slash.
func lastSegment(raw, fallback string) string {
	s := strings.TrimSpace(raw)
	if u, err := url.Parse(s); err == nil && u.Path != "" {
		s = u.Path
	}
	parts := strings.Split(s, "/")
	if last := parts[len(parts)-1]; last != "" {
		return last
	}
	return fallback
}
