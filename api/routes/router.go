package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ridgelinemoto/backend/api/controllers"
	"github.com/ridgelinemoto/backend/api/middleware"
	"github.com/ridgelinemoto/backend/internal/catalog"
	"github.com/ridgelinemoto/backend/pkg/config"
	"github.com/ridgelinemoto/backend/pkg/logger"
	"github.com/ridgelinemoto/backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	cache redis.Pinger,
	catalogService catalog.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, cache))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/test-connection", controllers.TestConnection(catalogService, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Get("/multiple", controllers.GetProductsMultiple(catalogService, logg))
			r.Get("/id/{id}", controllers.GetProductByID(catalogService, logg))
			r.Get("/{sku}", controllers.GetProductBySKU(catalogService, logg))
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/makes", controllers.VehicleMakes(catalogService, logg))
			r.Get("/models", controllers.VehicleModels(catalogService, logg))
			r.Get("/years", controllers.VehicleYears(catalogService, logg))
			r.Get("/{vehicleId}/products", controllers.VehicleProducts(catalogService, logg))
			r.Get("/{vehicleId}/compatibility", controllers.VehicleCompatibility(catalogService, logg))
		})
	})

	return r
}
