package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"riverwood/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// memReservationRepo is an in-memory ReservationRepository for service tests.
type memReservationRepo struct {
	reservations []models.Reservation
}

func (r *memReservationRepo) Create(res *models.Reservation) error {
	r.reservations = append(r.reservations, *res)
	return nil
}

func (r *memReservationRepo) GetByID(id string) (*models.Reservation, error) {
	for i := range r.reservations {
		if r.reservations[i].ID == id {
			res := r.reservations[i]
			return &res, nil
		}
	}
	return nil, fmt.Errorf("reservation %s not found", id)
}

func (r *memReservationRepo) GetAll() ([]models.Reservation, error) {
	return append([]models.Reservation(nil), r.reservations...), nil
}

func (r *memReservationRepo) GetActiveByCabin(cabinID string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range r.reservations {
		if res.CabinID == cabinID && res.Status != models.ReservationCancelled {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *memReservationRepo) GetBySubject(subjectID string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range r.reservations {
		if res.SubjectID == subjectID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *memReservationRepo) GetLatestPending() (*models.Reservation, error) {
	var latest *models.Reservation
	for i := range r.reservations {
		res := &r.reservations[i]
		if res.Status != models.ReservationPending {
			continue
		}
		if latest == nil || res.CreatedAt.After(latest.CreatedAt) {
			latest = res
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	return &out, nil
}

func (r *memReservationRepo) GetPendingCreatedBefore(cutoff time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range r.reservations {
		if res.Status == models.ReservationPending && res.CreatedAt.Before(cutoff) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *memReservationRepo) UpdateStatus(id, status string) error {
	for i := range r.reservations {
		if r.reservations[i].ID == id {
			r.reservations[i].Status = status
			r.reservations[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return fmt.Errorf("reservation %s not found", id)
}

func TestOverlaps(t *testing.T) {
	aStart, aEnd := day(2025, 8, 15), day(2025, 8, 17)

	tests := []struct {
		name   string
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{"identical range", day(2025, 8, 15), day(2025, 8, 17), true},
		{"contained inside", day(2025, 8, 15), day(2025, 8, 16), true},
		{"overlaps the start", day(2025, 8, 14), day(2025, 8, 16), true},
		{"overlaps the end", day(2025, 8, 16), day(2025, 8, 18), true},
		{"covers entirely", day(2025, 8, 10), day(2025, 8, 20), true},
		{"checkout day is reusable", day(2025, 8, 17), day(2025, 8, 19), false},
		{"checkin day after another checkout", day(2025, 8, 13), day(2025, 8, 15), false},
		{"well before", day(2025, 8, 1), day(2025, 8, 5), false},
		{"well after", day(2025, 8, 25), day(2025, 8, 28), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(aStart, aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, aStart, aEnd))
		})
	}
}

func TestHasConflictIgnoresCancelledAndOtherCabins(t *testing.T) {
	repo := &memReservationRepo{reservations: []models.Reservation{
		{ID: "r1", CabinID: "cabin-a", Status: models.ReservationCancelled,
			StartDate: day(2025, 8, 15), EndDate: day(2025, 8, 17)},
		{ID: "r2", CabinID: "cabin-b", Status: models.ReservationConfirmed,
			StartDate: day(2025, 8, 15), EndDate: day(2025, 8, 17)},
	}}
	svc := &DefaultReservationService{Repo: repo}

	conflict, err := svc.HasConflict(context.Background(), "cabin-a", day(2025, 8, 15), day(2025, 8, 17))
	require.NoError(t, err)
	assert.False(t, conflict, "cancelled reservations must not block dates")

	conflict, err = svc.HasConflict(context.Background(), "cabin-b", day(2025, 8, 16), day(2025, 8, 18))
	require.NoError(t, err)
	assert.True(t, conflict)
}

// unfilteredRepo returns every reservation from GetActiveByCabin, regardless
// of status, so tests can verify the service applies the status rule itself.
type unfilteredRepo struct {
	memReservationRepo
}

func (r *unfilteredRepo) GetActiveByCabin(cabinID string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range r.reservations {
		if res.CabinID == cabinID {
			out = append(out, res)
		}
	}
	return out, nil
}

func TestHasConflictAppliesStatusRuleItself(t *testing.T) {
	repo := &unfilteredRepo{memReservationRepo{reservations: []models.Reservation{
		{ID: "r1", CabinID: "cabin-a", Status: models.ReservationCancelled,
			StartDate: day(2025, 8, 15), EndDate: day(2025, 8, 17)},
	}}}
	svc := &DefaultReservationService{Repo: repo}

	conflict, err := svc.HasConflict(context.Background(), "cabin-a", day(2025, 8, 15), day(2025, 8, 17))
	require.NoError(t, err)
	assert.False(t, conflict, "a cancelled row from the repo must not block dates")

	repo.reservations = append(repo.reservations, models.Reservation{
		ID: "r2", CabinID: "cabin-a", Status: models.ReservationPending,
		StartDate: day(2025, 8, 15), EndDate: day(2025, 8, 17),
	})
	conflict, err = svc.HasConflict(context.Background(), "cabin-a", day(2025, 8, 15), day(2025, 8, 17))
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestBlocksDates(t *testing.T) {
	assert.True(t, BlocksDates(models.ReservationPending))
	assert.True(t, BlocksDates(models.ReservationConfirmed))
	assert.True(t, BlocksDates(models.ReservationCompleted))
	assert.False(t, BlocksDates(models.ReservationCancelled))
	assert.False(t, BlocksDates("nonsense"))
}

func TestQuote(t *testing.T) {
	base := models.CabinType{ID: "t1", NightlyRate: 100}

	t.Run("flat rate", func(t *testing.T) {
		assert.Equal(t, 200.0, Quote(base, day(2025, 8, 15), 2))
	})

	t.Run("zero or negative nights", func(t *testing.T) {
		assert.Equal(t, 0.0, Quote(base, day(2025, 8, 15), 0))
		assert.Equal(t, 0.0, Quote(base, day(2025, 8, 15), -3))
	})

	t.Run("deterministic", func(t *testing.T) {
		first := Quote(base, day(2025, 8, 15), 5)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Quote(base, day(2025, 8, 15), 5))
		}
	})

	t.Run("season multiplier per night", func(t *testing.T) {
		ct := base
		ct.Seasons = []models.RateSeason{
			// High season covers Aug 16 and 17 only (end exclusive).
			{Start: day(2025, 8, 16), End: day(2025, 8, 18), Multiplier: 1.5},
		}
		// Nights: 15 (1.0), 16 (1.5), 17 (1.5), 18 (1.0) = 100+150+150+100.
		assert.Equal(t, 500.0, Quote(ct, day(2025, 8, 15), 4))
	})

	t.Run("rounds to cents", func(t *testing.T) {
		ct := models.CabinType{NightlyRate: 33.333}
		assert.Equal(t, 100.0, Quote(ct, day(2025, 8, 15), 3))
	})
}

func TestCreateReservationAssignsIDAndPendingStatus(t *testing.T) {
	repo := &memReservationRepo{}
	svc := &DefaultReservationService{Repo: repo}

	created, err := svc.CreateReservation(context.Background(), &models.Reservation{
		CabinID:   "cabin-a",
		SubjectID: "a@chat",
		StartDate: day(2025, 8, 15),
		EndDate:   day(2025, 8, 17),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.ReservationPending, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
	require.Len(t, repo.reservations, 1)
}

func TestCreateReservationRejectsConflictingDates(t *testing.T) {
	repo := &memReservationRepo{}
	svc := &DefaultReservationService{Repo: repo}

	_, err := svc.CreateReservation(context.Background(), &models.Reservation{
		CabinID: "cabin-a", StartDate: day(2025, 8, 15), EndDate: day(2025, 8, 17),
	})
	require.NoError(t, err)

	_, err = svc.CreateReservation(context.Background(), &models.Reservation{
		CabinID: "cabin-a", StartDate: day(2025, 8, 16), EndDate: day(2025, 8, 18),
	})
	assert.Error(t, err)
	assert.Len(t, repo.reservations, 1)

	// Back-to-back stays on the same cabin are fine.
	_, err = svc.CreateReservation(context.Background(), &models.Reservation{
		CabinID: "cabin-a", StartDate: day(2025, 8, 17), EndDate: day(2025, 8, 19),
	})
	assert.NoError(t, err)
}

func TestCreateReservationValidatesRange(t *testing.T) {
	svc := &DefaultReservationService{Repo: &memReservationRepo{}}

	_, err := svc.CreateReservation(context.Background(), &models.Reservation{
		CabinID: "cabin-a", StartDate: day(2025, 8, 17), EndDate: day(2025, 8, 17),
	})
	assert.Error(t, err)

	_, err = svc.CreateReservation(context.Background(), &models.Reservation{
		StartDate: day(2025, 8, 15), EndDate: day(2025, 8, 17),
	})
	assert.Error(t, err, "cabin is required")
}

func TestUpdateReservationStatusTransitions(t *testing.T) {
	repo := &memReservationRepo{reservations: []models.Reservation{
		{ID: "r1", Status: models.ReservationPending},
		{ID: "r2", Status: models.ReservationCancelled},
		{ID: "r3", Status: models.ReservationCompleted},
	}}
	svc := &DefaultReservationService{Repo: repo}
	ctx := context.Background()

	require.NoError(t, svc.UpdateReservationStatus(ctx, "r1", models.ReservationConfirmed))
	got, err := repo.GetByID("r1")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, got.Status)

	// Re-applying the current status is a no-op, not an error.
	assert.NoError(t, svc.UpdateReservationStatus(ctx, "r1", models.ReservationConfirmed))

	// Terminal statuses are immutable.
	assert.Error(t, svc.UpdateReservationStatus(ctx, "r2", models.ReservationPending))
	assert.Error(t, svc.UpdateReservationStatus(ctx, "r3", models.ReservationConfirmed))

	assert.Error(t, svc.UpdateReservationStatus(ctx, "r1", "bogus"))
	assert.Error(t, svc.UpdateReservationStatus(ctx, "missing", models.ReservationConfirmed))
}

func TestGetLatestPendingReservation(t *testing.T) {
	repo := &memReservationRepo{reservations: []models.Reservation{
		{ID: "old", Status: models.ReservationPending, CreatedAt: day(2025, 8, 1)},
		{ID: "new", Status: models.ReservationPending, CreatedAt: day(2025, 8, 10)},
		{ID: "confirmed", Status: models.ReservationConfirmed, CreatedAt: day(2025, 8, 20)},
	}}
	svc := &DefaultReservationService{Repo: repo}

	latest, err := svc.GetLatestPendingReservation(context.Background())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "new", latest.ID)

	empty := &DefaultReservationService{Repo: &memReservationRepo{}}
	latest, err = empty.GetLatestPendingReservation(context.Background())
	require.NoError(t, err)
	assert.Nil(t, latest)
}
