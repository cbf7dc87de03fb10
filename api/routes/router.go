package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/stockroom/api/controllers"
	"github.com/angelmondragon/stockroom/api/middleware"
	"github.com/angelmondragon/stockroom/api/responses"
	"github.com/angelmondragon/stockroom/internal/groups"
	"github.com/angelmondragon/stockroom/internal/products"
	"github.com/angelmondragon/stockroom/internal/stats"
	"github.com/angelmondragon/stockroom/pkg/config"
	"github.com/angelmondragon/stockroom/pkg/logger"
	"github.com/angelmondragon/stockroom/pkg/metrics"
	"github.com/angelmondragon/stockroom/pkg/redis"
)

const idParam = "/{id:[0-9]+}"

// Services bundles the domain services the router dispatches to.
type Services struct {
	Groups   groups.Service
	Products products.Service
	Stats    stats.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	rw *responses.Writer,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(rw, logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	var (
		cachePinger      controllers.Pinger
		idempotencyStore redis.IdempotencyStore
	)
	if redisClient != nil {
		cachePinger = redisClient
		idempotencyStore = redisClient
	}
	r.Use(middleware.Idempotency(idempotencyStore, cfg.Idempotency.TTL, rw, logg))

	// A wrong method on a known groups or products path reads as a missing
	// resource.
	r.NotFound(controllers.NotFound(rw))
	r.MethodNotAllowed(controllers.NotFound(rw))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg, rw))
		r.Get("/ready", controllers.HealthReady(cfg, rw, dbP, cachePinger))
	})

	if cfg.Metrics.Enabled && gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/groups", func(r chi.Router) {
		r.Get("/", controllers.ListGroups(svcs.Groups, rw))
		r.Post("/", controllers.CreateGroup(svcs.Groups, rw))
		r.Get(idParam, controllers.GetGroup(svcs.Groups, rw))
		r.Put(idParam, controllers.UpdateGroup(svcs.Groups, rw))
		r.Delete(idParam, controllers.DeleteGroup(svcs.Groups, rw))
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(svcs.Products, rw))
		r.Post("/", controllers.CreateProduct(svcs.Products, rw))
		r.Get("/search", controllers.SearchProducts(svcs.Products, rw))
		r.Get(idParam, controllers.GetProduct(svcs.Products, rw))
		r.Put(idParam, controllers.UpdateProduct(svcs.Products, rw))
		r.Delete(idParam, controllers.DeleteProduct(svcs.Products, rw))
		r.Post(idParam+"/add", controllers.AddStock(svcs.Products, rw))
		r.Post(idParam+"/sell", controllers.SellStock(svcs.Products, rw))
	})

	r.Route("/api/stats", func(r chi.Router) {
		// Stats is read-only: every other method is refused, matched or not.
		r.NotFound(statsFallback(rw))
		r.MethodNotAllowed(controllers.MethodNotAllowed(rw))
		r.Get("/total-value", controllers.TotalValue(svcs.Stats, rw))
		r.Get("/groups"+idParam+"/total-value", controllers.GroupTotalValue(svcs.Stats, rw))
	})

	return r
}

func statsFallback(rw *responses.Writer) http.HandlerFunc {
	notFound := controllers.NotFound(rw)
	notAllowed := controllers.MethodNotAllowed(rw)
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			notFound(w, r)
			return
		}
		notAllowed(w, r)
	}
}
