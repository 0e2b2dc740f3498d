package wire

import (
	"cinemax/internal/adaptor"
	"cinemax/pkg/middleware"
	"cinemax/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	holdHandler *adaptor.HoldHandler,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Authenticated booking flow: hold -> booking -> payment
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(config.JWT.Secret, log))

		r.Post("/api/holds", holdHandler.CreateHold)
		r.Delete("/api/holds/{groupId}", holdHandler.ReleaseHold)

		r.Post("/api/bookings", bookingHandler.CreateBooking)
		r.Get("/api/bookings/user", bookingHandler.GetUserBookings)
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		r.Post("/api/payment/initiate", bookingHandler.InitiatePayment)
		r.Post("/api/payment/confirm", bookingHandler.ConfirmPayment)
	})

	// Admin booking management
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Post("/api/admin/bookings/{id}/refund", bookingHandler.Refund)
		r.Get("/api/admin/analytics", bookingHandler.GetAnalytics)
	})
}
