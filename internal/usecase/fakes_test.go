package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cinemax/internal/data/entity"
	"cinemax/internal/data/repository"

	"github.com/google/uuid"
)

// memStore is shared by the in-memory repository fakes so hold, booking and
// showtime state stay consistent, mirroring what the SQL schema enforces.
type memStore struct {
	mu        sync.Mutex
	holds     map[uuid.UUID][]*entity.Hold // keyed by group ID
	bookings  map[uuid.UUID]*entity.Booking
	showtimes map[uuid.UUID]*entity.Showtime
	screens   map[uuid.UUID]*entity.Screen
	movies    map[uuid.UUID]*entity.Movie
	users     map[uuid.UUID]*entity.User
	pricing   []*entity.PricingHistory
}

func newMemStore() *memStore {
	return &memStore{
		holds:     make(map[uuid.UUID][]*entity.Hold),
		bookings:  make(map[uuid.UUID]*entity.Booking),
		showtimes: make(map[uuid.UUID]*entity.Showtime),
		screens:   make(map[uuid.UUID]*entity.Screen),
		movies:    make(map[uuid.UUID]*entity.Movie),
		users:     make(map[uuid.UUID]*entity.User),
	}
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:           &fakeUserRepo{s},
		Movie:          &fakeMovieRepo{s},
		Screen:         &fakeScreenRepo{s},
		Showtime:       &fakeShowtimeRepo{s},
		Hold:           &fakeHoldRepo{s},
		Booking:        &fakeBookingRepo{s},
		PricingHistory: &fakePricingHistoryRepo{s},
	}
}

// liveClaim mirrors the SQL predicate used for seat availability: an active
// unexpired hold, or a consumed hold not resolved by a terminal booking. A
// consumed hold with no booking row still claims its seat.
func (s *memStore) liveClaim(h *entity.Hold, now time.Time) bool {
	if h.ActiveAt(now) {
		return true
	}
	if h.State != entity.HoldStateConsumed {
		return false
	}
	for _, b := range s.bookings {
		if b.HoldGroupID == h.GroupID {
			switch b.PaymentStatus {
			case entity.PaymentStatusFailed, entity.PaymentStatusRefunded, entity.PaymentStatusExpired:
				return false
			}
		}
	}
	return true
}

// ---------- holds ----------

type fakeHoldRepo struct{ s *memStore }

func (r *fakeHoldRepo) CreateGroup(_ context.Context, holds []*entity.Hold, now time.Time) error {
	if len(holds) == 0 {
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.showtimes[holds[0].ShowtimeID]; !ok {
		return fmt.Errorf("showtime %s: %w", holds[0].ShowtimeID, entity.ErrNotFound)
	}

	for _, want := range holds {
		for _, group := range r.s.holds {
			for _, h := range group {
				if h.ShowtimeID == want.ShowtimeID && h.Seat().Label() == want.Seat().Label() && r.s.liveClaim(h, now) {
					return fmt.Errorf("seat %s already claimed: %w", want.Seat().Label(), entity.ErrSeatUnavailable)
				}
			}
		}
	}

	r.s.holds[holds[0].GroupID] = append([]*entity.Hold(nil), holds...)
	return nil
}

func (r *fakeHoldRepo) FindByGroupID(_ context.Context, groupID uuid.UUID) ([]*entity.Hold, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*entity.Hold(nil), r.s.holds[groupID]...), nil
}

func (r *fakeHoldRepo) FindLiveSeats(_ context.Context, showtimeID uuid.UUID, now time.Time) ([]entity.Seat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var seats []entity.Seat
	for _, group := range r.s.holds {
		for _, h := range group {
			if h.ShowtimeID == showtimeID && r.s.liveClaim(h, now) {
				seats = append(seats, h.Seat())
			}
		}
	}
	return seats, nil
}

func (r *fakeHoldRepo) ConsumeGroup(_ context.Context, groupID uuid.UUID, now time.Time) ([]*entity.Hold, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	group := r.s.holds[groupID]
	if len(group) == 0 {
		return nil, fmt.Errorf("hold group %s: %w", groupID, entity.ErrNotFound)
	}
	for _, h := range group {
		if !h.ActiveAt(now) {
			return nil, fmt.Errorf("hold group %s has lapsed holds: %w", groupID, entity.ErrHoldExpired)
		}
	}
	for _, h := range group {
		h.State = entity.HoldStateConsumed
	}
	return append([]*entity.Hold(nil), group...), nil
}

func (r *fakeHoldRepo) ReleaseGroup(_ context.Context, groupID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var released int64
	for _, h := range r.s.holds[groupID] {
		if h.State == entity.HoldStateActive || h.State == entity.HoldStateConsumed {
			h.State = entity.HoldStateReleased
			released++
		}
	}
	return released, nil
}

func (r *fakeHoldRepo) ReleaseActive(_ context.Context, groupID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var released int64
	for _, h := range r.s.holds[groupID] {
		if h.State == entity.HoldStateActive {
			h.State = entity.HoldStateReleased
			released++
		}
	}
	return released, nil
}

func (r *fakeHoldRepo) SweepExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var swept int64
	for _, group := range r.s.holds {
		for _, h := range group {
			if h.State == entity.HoldStateActive && !h.ExpiresAt.After(now) {
				h.State = entity.HoldStateExpired
				swept++
			}
		}
	}
	return swept, nil
}

// ---------- bookings ----------

type fakeBookingRepo struct{ s *memStore }

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *booking
	r.s.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) FindByReference(_ context.Context, reference string) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if b.Reference == reference {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) UpdateStatusIf(_ context.Context, id uuid.UUID, from []entity.PaymentStatus, to entity.PaymentStatus, method *string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, f := range from {
		if b.PaymentStatus == f {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	b.PaymentStatus = to
	if method != nil {
		b.PaymentMethod = method
	}
	b.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *fakeBookingRepo) FindStale(_ context.Context, now time.Time) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		switch b.PaymentStatus {
		case entity.PaymentStatusPending, entity.PaymentStatusProcessing:
			if !b.ExpiresAt.After(now) {
				cp := *b
				out = append(out, &cp)
			}
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Stats(_ context.Context) (*repository.BookingStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stats := &repository.BookingStats{}
	for _, b := range r.s.bookings {
		if b.PaymentStatus == entity.PaymentStatusPaid {
			stats.Revenue += b.TotalAmount
			stats.PaidBookings++
		}
	}
	return stats, nil
}

// ---------- showtimes ----------

type fakeShowtimeRepo struct{ s *memStore }

func (r *fakeShowtimeRepo) Create(_ context.Context, showtime *entity.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *showtime
	r.s.showtimes[showtime.ID] = &cp
	return nil
}

func (r *fakeShowtimeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.showtimes[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (r *fakeShowtimeRepo) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]*entity.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Showtime
	for _, st := range r.s.showtimes {
		if st.MovieID == movieID {
			cp := *st
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeShowtimeRepo) FindUpcoming(_ context.Context, now time.Time) ([]*entity.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Showtime
	for _, st := range r.s.showtimes {
		if st.StartTime.After(now) {
			cp := *st
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeShowtimeRepo) UpdatePricing(_ context.Context, id uuid.UUID, price float64, source entity.PricingSource) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.showtimes[id]
	if !ok {
		return false, nil
	}
	st.CurrentPrice = price
	st.PricingSource = source
	return true, nil
}

func (r *fakeShowtimeRepo) RecomputeOccupancy(_ context.Context, id uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.showtimes[id]
	if !ok {
		return 0, fmt.Errorf("showtime %s: %w", id, entity.ErrNotFound)
	}
	occupied := 0
	for _, b := range r.s.bookings {
		if b.ShowtimeID == id && b.PaymentStatus == entity.PaymentStatusPaid {
			occupied += b.TotalSeats
		}
	}
	st.OccupiedSeats = occupied
	return occupied, nil
}

func (r *fakeShowtimeRepo) AverageOccupancy(_ context.Context) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum float64
	var n int
	for _, st := range r.s.showtimes {
		screen, ok := r.s.screens[st.ScreenID]
		if !ok || screen.Capacity == 0 {
			continue
		}
		sum += float64(st.OccupiedSeats) / float64(screen.Capacity)
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// ---------- screens ----------

type fakeScreenRepo struct{ s *memStore }

func (r *fakeScreenRepo) Create(_ context.Context, screen *entity.Screen) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *screen
	r.s.screens[screen.ID] = &cp
	return nil
}

func (r *fakeScreenRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Screen, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	screen, ok := r.s.screens[id]
	if !ok {
		return nil, nil
	}
	cp := *screen
	return &cp, nil
}

func (r *fakeScreenRepo) FindByTheaterID(_ context.Context, theaterID uuid.UUID) ([]*entity.Screen, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Screen
	for _, screen := range r.s.screens {
		if screen.TheaterID == theaterID {
			cp := *screen
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---------- movies ----------

type fakeMovieRepo struct{ s *memStore }

func (r *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *movie
	r.s.movies[movie.ID] = &cp
	return nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	movie, ok := r.s.movies[id]
	if !ok {
		return nil, nil
	}
	cp := *movie
	return &cp, nil
}

func (r *fakeMovieRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Movie
	for _, movie := range r.s.movies {
		cp := *movie
		out = append(out, &cp)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMovieRepo) FindFeatured(_ context.Context) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Movie
	for _, movie := range r.s.movies {
		if movie.Featured {
			cp := *movie
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovieRepo) CountAll(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.movies)), nil
}

func (r *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[movie.ID]; !ok {
		return fmt.Errorf("movie %s: %w", movie.ID, entity.ErrNotFound)
	}
	cp := *movie
	r.s.movies[movie.ID] = &cp
	return nil
}

func (r *fakeMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[id]; !ok {
		return fmt.Errorf("movie %s: %w", id, entity.ErrNotFound)
	}
	delete(r.s.movies, id)
	return nil
}

// ---------- users ----------

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

// ---------- pricing history ----------

type fakePricingHistoryRepo struct{ s *memStore }

func (r *fakePricingHistoryRepo) Create(_ context.Context, record *entity.PricingHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *record
	r.s.pricing = append(r.s.pricing, &cp)
	return nil
}

func (r *fakePricingHistoryRepo) FindByShowtimeID(_ context.Context, showtimeID uuid.UUID) ([]*entity.PricingHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PricingHistory
	for _, record := range r.s.pricing {
		if record.ShowtimeID == showtimeID {
			cp := *record
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---------- clock ----------

// testClock is a settable Clock for driving hold expiry in tests.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{t: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
