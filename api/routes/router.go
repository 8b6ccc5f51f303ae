package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/ratewise-backend/api/controllers"
	"github.com/angelmondragon/ratewise-backend/api/middleware"
	"github.com/angelmondragon/ratewise-backend/internal/ratematrix"
	"github.com/angelmondragon/ratewise-backend/pkg/config"
	"github.com/angelmondragon/ratewise-backend/pkg/logger"
)

// NewRouter wires the HTTP surface. redisP may be nil when the matrix cache is disabled.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	gatherer prometheus.Gatherer,
	matrixService ratematrix.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": dbP,
			"redis":    redisP,
		}))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/hotels/{hotelId}/price-matrix", controllers.HotelPriceMatrix(matrixService, logg))
		r.Post("/price-matrix/preview", controllers.PreviewPriceMatrix(matrixService, logg))
	})

	return r
}
