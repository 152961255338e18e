package cron

import (
	"errors"
	"testing"
	"time"

	"riverwood/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sweepRepo struct {
	reservations []models.Reservation
	failIDs      map[string]bool
}

func (r *sweepRepo) Create(res *models.Reservation) error { return nil }

func (r *sweepRepo) GetByID(id string) (*models.Reservation, error) {
	for i := range r.reservations {
		if r.reservations[i].ID == id {
			res := r.reservations[i]
			return &res, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *sweepRepo) GetAll() ([]models.Reservation, error)                     { return r.reservations, nil }
func (r *sweepRepo) GetActiveByCabin(cabinID string) ([]models.Reservation, error) { return nil, nil }
func (r *sweepRepo) GetBySubject(subjectID string) ([]models.Reservation, error)   { return nil, nil }
func (r *sweepRepo) GetLatestPending() (*models.Reservation, error)                { return nil, nil }

func (r *sweepRepo) GetPendingCreatedBefore(cutoff time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range r.reservations {
		if res.Status == models.ReservationPending && res.CreatedAt.Before(cutoff) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *sweepRepo) UpdateStatus(id, status string) error {
	if r.failIDs[id] {
		return errors.New("write failed")
	}
	for i := range r.reservations {
		if r.reservations[i].ID == id {
			r.reservations[i].Status = status
			return nil
		}
	}
	return errors.New("not found")
}

func (r *sweepRepo) statusOf(t *testing.T, id string) string {
	t.Helper()
	res, err := r.GetByID(id)
	require.NoError(t, err)
	return res.Status
}

func newTestSweeper(repo *sweepRepo, now time.Time) *Sweeper {
	s := NewSweeper(repo, 24*time.Hour, 30*time.Minute, zap.NewNop())
	s.Now = func() time.Time { return now }
	return s
}

func TestSweepCancelsOnlyExpiredPending(t *testing.T) {
	created := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := &sweepRepo{reservations: []models.Reservation{
		{ID: "expired", Status: models.ReservationPending, CreatedAt: created},
		{ID: "fresh", Status: models.ReservationPending, CreatedAt: created.Add(10 * time.Hour)},
		{ID: "confirmed", Status: models.ReservationConfirmed, CreatedAt: created},
	}}

	// 25 hours after "expired" was created, 15 after "fresh".
	s := newTestSweeper(repo, created.Add(25*time.Hour))

	assert.Equal(t, 1, s.SweepOnce())
	assert.Equal(t, models.ReservationCancelled, repo.statusOf(t, "expired"))
	assert.Equal(t, models.ReservationPending, repo.statusOf(t, "fresh"))
	assert.Equal(t, models.ReservationConfirmed, repo.statusOf(t, "confirmed"))
}

func TestSweepIsIdempotent(t *testing.T) {
	created := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := &sweepRepo{reservations: []models.Reservation{
		{ID: "expired", Status: models.ReservationPending, CreatedAt: created},
	}}
	s := newTestSweeper(repo, created.Add(26*time.Hour))

	assert.Equal(t, 1, s.SweepOnce())
	assert.Equal(t, 0, s.SweepOnce(), "second sweep finds nothing left")
	assert.Equal(t, models.ReservationCancelled, repo.statusOf(t, "expired"))
}

func TestSweepExactlyAtDeadlineDoesNotCancel(t *testing.T) {
	created := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := &sweepRepo{reservations: []models.Reservation{
		{ID: "r1", Status: models.ReservationPending, CreatedAt: created},
	}}
	s := newTestSweeper(repo, created.Add(24*time.Hour))

	assert.Equal(t, 0, s.SweepOnce())
	assert.Equal(t, models.ReservationPending, repo.statusOf(t, "r1"))
}

func TestSweepSkipsFailingRowAndContinues(t *testing.T) {
	created := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := &sweepRepo{
		reservations: []models.Reservation{
			{ID: "bad", Status: models.ReservationPending, CreatedAt: created},
			{ID: "good", Status: models.ReservationPending, CreatedAt: created},
		},
		failIDs: map[string]bool{"bad": true},
	}
	s := newTestSweeper(repo, created.Add(48*time.Hour))

	assert.Equal(t, 1, s.SweepOnce())
	assert.Equal(t, models.ReservationPending, repo.statusOf(t, "bad"))
	assert.Equal(t, models.ReservationCancelled, repo.statusOf(t, "good"))
}
