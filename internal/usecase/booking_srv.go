package usecase

import (
	"context"
	"fmt"

	"cinemax/internal/data/entity"
	"cinemax/internal/data/repository"
	"cinemax/internal/dto/request"
	"cinemax/internal/dto/response"
	"cinemax/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateBooking converts an active hold group into a pending booking.
	// The booking total is the sum of the per-seat price snapshots captured
	// when the hold was placed.
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, userID, bookingID string, isAdmin bool) (*response.BookingResponse, error)

	// Payment lifecycle: pending -> processing -> paid | failed. A booking
	// whose hold window lapsed before payment expires instead.
	InitiatePayment(ctx context.Context, userID string, req *request.PaymentRequest) (*response.BookingResponse, error)
	ConfirmPayment(ctx context.Context, userID string, req *request.ConfirmPaymentRequest) (*response.BookingResponse, error)

	// Admin
	Refund(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetAnalytics(ctx context.Context) (*response.AnalyticsResponse, error)

	// ExpireStale terminates pending/processing bookings past their expiry
	// and frees their seats. Called by the background sweeper.
	ExpireStale(ctx context.Context) (int, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  Clock
}

func NewBookingService(repo *repository.Repository, log *zap.Logger, now Clock) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
		now:  now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	groupID, err := uuid.Parse(req.HoldGroupID)
	if err != nil {
		return nil, fmt.Errorf("invalid hold group ID format %s: %w", req.HoldGroupID, err)
	}

	holds, err := s.repo.Hold.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	// A foreign hold group is indistinguishable from a missing one.
	if len(holds) == 0 || holds[0].HolderID != userID {
		return nil, fmt.Errorf("hold group %s: %w", req.HoldGroupID, entity.ErrNotFound)
	}

	now := s.now().UTC()
	consumed, err := s.repo.Hold.ConsumeGroup(ctx, groupID, now)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, h := range consumed {
		total += h.UnitPrice
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:     utils.GenerateBookingReference(now),
		UserID:        userUUID,
		ShowtimeID:    consumed[0].ShowtimeID,
		HoldGroupID:   groupID,
		TotalSeats:    len(consumed),
		TotalAmount:   total,
		PaymentStatus: entity.PaymentStatusPending,
		// Payment must complete within the original hold window.
		ExpiresAt: consumed[0].ExpiresAt,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		// Free the consumed seats so the failed create does not strand them.
		if _, rerr := s.repo.Hold.ReleaseGroup(ctx, groupID); rerr != nil {
			s.log.Error("Failed to release holds after booking create failure",
				zap.Error(rerr),
				zap.String("group_id", groupID.String()),
			)
		}
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_reference", booking.Reference),
		zap.String("user_id", userID),
		zap.Int("total_seats", booking.TotalSeats),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking, consumed)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	out := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, response.BookingToResponse(b, nil))
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, userID, bookingID string, isAdmin bool) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil || (!isAdmin && booking.UserID.String() != userID) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrNotFound)
	}

	holds, err := s.repo.Hold.FindByGroupID(ctx, booking.HoldGroupID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking, holds)
	return &resp, nil
}

func (s *bookingService) InitiatePayment(ctx context.Context, userID string, req *request.PaymentRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.ownedBooking(ctx, userID, req.BookingID)
	if err != nil {
		return nil, err
	}

	if expired, err := s.lazyExpire(ctx, booking); err != nil {
		return nil, err
	} else if expired {
		return nil, fmt.Errorf("booking %s payment window closed: %w", req.BookingID, entity.ErrHoldExpired)
	}

	method := req.Method
	ok, err := s.repo.Booking.UpdateStatusIf(ctx, booking.ID,
		[]entity.PaymentStatus{entity.PaymentStatusPending},
		entity.PaymentStatusProcessing, &method)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("booking %s is not pending: %w", req.BookingID, entity.ErrInvalidState)
	}

	booking.PaymentStatus = entity.PaymentStatusProcessing
	booking.PaymentMethod = &method

	s.log.Info("Payment initiated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("method", method),
	)

	resp := response.BookingToResponse(booking, nil)
	return &resp, nil
}

func (s *bookingService) ConfirmPayment(ctx context.Context, userID string, req *request.ConfirmPaymentRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.ownedBooking(ctx, userID, req.BookingID)
	if err != nil {
		return nil, err
	}

	if expired, err := s.lazyExpire(ctx, booking); err != nil {
		return nil, err
	} else if expired {
		return nil, fmt.Errorf("booking %s payment window closed: %w", req.BookingID, entity.ErrHoldExpired)
	}

	from := []entity.PaymentStatus{entity.PaymentStatusPending, entity.PaymentStatusProcessing}

	if req.Outcome == "failure" {
		ok, err := s.repo.Booking.UpdateStatusIf(ctx, booking.ID, from, entity.PaymentStatusFailed, nil)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("booking %s cannot fail from %s: %w", req.BookingID, booking.PaymentStatus, entity.ErrInvalidState)
		}
		if _, err := s.repo.Hold.ReleaseGroup(ctx, booking.HoldGroupID); err != nil {
			s.log.Error("Failed to release holds of failed booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
		}

		booking.PaymentStatus = entity.PaymentStatusFailed
		s.log.Info("Payment failed", zap.String("booking_id", booking.ID.String()))

		resp := response.BookingToResponse(booking, nil)
		return &resp, nil
	}

	ok, err := s.repo.Booking.UpdateStatusIf(ctx, booking.ID, from, entity.PaymentStatusPaid, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("booking %s cannot be paid from %s: %w", req.BookingID, booking.PaymentStatus, entity.ErrInvalidState)
	}

	booking.PaymentStatus = entity.PaymentStatusPaid
	s.recomputeOccupancy(ctx, booking.ShowtimeID)

	s.log.Info("Payment confirmed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_reference", booking.Reference),
		zap.Float64("amount", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking, nil)
	return &resp, nil
}

func (s *bookingService) Refund(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrNotFound)
	}

	ok, err := s.repo.Booking.UpdateStatusIf(ctx, id,
		[]entity.PaymentStatus{entity.PaymentStatusPaid},
		entity.PaymentStatusRefunded, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("booking %s is not paid: %w", bookingID, entity.ErrInvalidState)
	}

	if _, err := s.repo.Hold.ReleaseGroup(ctx, booking.HoldGroupID); err != nil {
		s.log.Error("Failed to release holds of refunded booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
	}

	booking.PaymentStatus = entity.PaymentStatusRefunded
	s.recomputeOccupancy(ctx, booking.ShowtimeID)

	s.log.Info("Booking refunded",
		zap.String("booking_id", bookingID),
		zap.Float64("amount", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking, nil)
	return &resp, nil
}

func (s *bookingService) GetAnalytics(ctx context.Context) (*response.AnalyticsResponse, error) {
	stats, err := s.repo.Booking.Stats(ctx)
	if err != nil {
		return nil, err
	}

	avg, err := s.repo.Showtime.AverageOccupancy(ctx)
	if err != nil {
		return nil, err
	}

	return &response.AnalyticsResponse{
		TotalRevenue:     stats.Revenue,
		PaidBookings:     stats.PaidBookings,
		AverageOccupancy: avg,
	}, nil
}

func (s *bookingService) ExpireStale(ctx context.Context) (int, error) {
	now := s.now().UTC()
	stale, err := s.repo.Booking.FindStale(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, booking := range stale {
		ok, err := s.repo.Booking.UpdateStatusIf(ctx, booking.ID,
			[]entity.PaymentStatus{entity.PaymentStatusPending, entity.PaymentStatusProcessing},
			entity.PaymentStatusExpired, nil)
		if err != nil {
			s.log.Error("Failed to expire stale booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			continue
		}
		if !ok {
			// Raced with a concurrent payment or expiry; nothing to do.
			continue
		}

		if _, err := s.repo.Hold.ReleaseGroup(ctx, booking.HoldGroupID); err != nil {
			s.log.Error("Failed to release holds of expired booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
		}
		expired++
	}

	if expired > 0 {
		s.log.Info("Stale bookings expired", zap.Int("count", expired))
	}
	return expired, nil
}

// ownedBooking loads a booking and verifies the caller owns it. A foreign
// booking is reported as not found.
func (s *bookingService) ownedBooking(ctx context.Context, userID, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.UserID.String() != userID {
		return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrNotFound)
	}

	return booking, nil
}

// lazyExpire expires the booking in place when its payment window already
// lapsed, without waiting for the sweeper.
func (s *bookingService) lazyExpire(ctx context.Context, booking *entity.Booking) (bool, error) {
	if s.now().UTC().Before(booking.ExpiresAt) {
		return false, nil
	}

	ok, err := s.repo.Booking.UpdateStatusIf(ctx, booking.ID,
		[]entity.PaymentStatus{entity.PaymentStatusPending, entity.PaymentStatusProcessing},
		entity.PaymentStatusExpired, nil)
	if err != nil {
		return false, err
	}
	if ok {
		if _, err := s.repo.Hold.ReleaseGroup(ctx, booking.HoldGroupID); err != nil {
			s.log.Error("Failed to release holds of expired booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
		}
		booking.PaymentStatus = entity.PaymentStatusExpired
	}

	return true, nil
}

// recomputeOccupancy refreshes the showtime's derived seat count. Failures
// are logged and swallowed; the count converges on the next recompute.
func (s *bookingService) recomputeOccupancy(ctx context.Context, showtimeID uuid.UUID) {
	occupied, err := s.repo.Showtime.RecomputeOccupancy(ctx, showtimeID)
	if err != nil {
		s.log.Error("Failed to recompute occupancy",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return
	}
	s.log.Debug("Occupancy recomputed",
		zap.String("showtime_id", showtimeID.String()),
		zap.Int("occupied_seats", occupied),
	)
}
