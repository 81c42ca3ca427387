package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avaldez-dev/storefront-pricing/api/controllers"
	"github.com/avaldez-dev/storefront-pricing/api/middleware"
	"github.com/avaldez-dev/storefront-pricing/pkg/config"
	"github.com/avaldez-dev/storefront-pricing/pkg/db"
	"github.com/avaldez-dev/storefront-pricing/pkg/logger"
	pkgredis "github.com/avaldez-dev/storefront-pricing/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP pkgredis.Pinger,
	gatherer prometheus.Gatherer,
	quoteService controllers.QuoteService,
	shippingService controllers.ShippingService,
	couponService controllers.CouponService,
	catalogService controllers.CatalogService,
	priceReader controllers.PriceReader,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})
	r.Get("/healthz", controllers.HealthLive(cfg))

	if gatherer != nil {
		r.Get("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}).ServeHTTP)
	}

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/quote", controllers.OrderQuote(quoteService, logg))
		r.Post("/shipping-options", controllers.OrderShippingOptions(shippingService, logg))
		r.Post("/coupon:check", controllers.OrderCouponCheck(couponService, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/stores/{storeId}/prices/{purchasableId}", controllers.CatalogPrice(priceReader, logg))
	})

	r.Route("/api/v1/admin/catalog", func(r chi.Router) {
		r.Post("/generate", controllers.CatalogGenerate(catalogService, logg))
	})

	return r
}
