package wire

import (
	"cinemax/internal/adaptor"
	"cinemax/pkg/middleware"
	"cinemax/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePricing(
	r chi.Router,
	pricingHandler *adaptor.PricingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Post("/api/ml/predict", pricingHandler.Predict)
		r.Get("/api/ml/predictions", pricingHandler.GetPredictions)
		r.Patch("/api/showtimes/{id}/pricing", pricingHandler.OverridePricing)
	})
}
