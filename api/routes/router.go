package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nexofaq/nexofaq-backend/api/controllers"
	"github.com/nexofaq/nexofaq-backend/api/middleware"
	"github.com/nexofaq/nexofaq-backend/internal/bindings"
	"github.com/nexofaq/nexofaq-backend/internal/faqs"
	"github.com/nexofaq/nexofaq-backend/internal/stores"
	"github.com/nexofaq/nexofaq-backend/pkg/config"
	"github.com/nexofaq/nexofaq-backend/pkg/logger"
	"github.com/nexofaq/nexofaq-backend/pkg/metrics"
	"github.com/nexofaq/nexofaq-backend/pkg/nuvemshop"
	"github.com/nexofaq/nexofaq-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database controllers.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	nsClient *nuvemshop.Client,
	storeService stores.Service,
	faqService faqs.Service,
	bindingService bindings.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	var cache controllers.Pinger
	if redisClient != nil {
		cache = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(database, cache, logg))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	// The install callback carries no store token yet, so it stays outside
	// the authenticated subtree.
	r.Get("/api/ns/install", controllers.Install(storeService, logg))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NexoAuth(storeService, logg))
		if redisClient != nil {
			r.Use(middleware.Idempotency(redisClient, cfg.Idempotency.TTL, logg))
		}

		r.Route("/ns", func(r chi.Router) {
			r.Get("/products", controllers.ListCatalogProducts(nsClient, logg))
			r.Get("/categories", controllers.ListCatalogCategories(nsClient, logg))
		})

		r.Route("/faqs", func(r chi.Router) {
			r.Get("/", controllers.ListFaqs(faqService, logg))
			r.Post("/", controllers.CreateFaq(faqService, logg))
			r.Get("/{faqId}", controllers.GetFaq(faqService, logg))
			r.Put("/{faqId}", controllers.UpdateFaq(faqService, logg))
			r.Delete("/{faqId}", controllers.DeleteFaq(faqService, logg))

			r.Post("/{faqId}/questions", controllers.AddQuestion(faqService, logg))
			r.Put("/questions/{questionId}", controllers.UpdateQuestion(faqService, logg))
			r.Delete("/questions/{questionId}", controllers.DeleteQuestion(faqService, logg))

			r.Post("/{faqId}/products", controllers.AddProductBinding(bindingService, logg))
			r.Delete("/{faqId}/products/{productId}", controllers.RemoveProductBinding(bindingService, logg))
			r.Post("/{faqId}/categories", controllers.AddCategoryBinding(bindingService, logg))
			r.Delete("/{faqId}/categories/{categoryId}", controllers.RemoveCategoryBinding(bindingService, logg))
		})
	})

	r.Route("/api/public", func(r chi.Router) {
		if redisClient != nil {
			r.Use(middleware.PublicRateLimit(redisClient, cfg.PublicRateLimit.Window, cfg.PublicRateLimit.IPLimit, logg))
		}

		r.Get("/faqs/{storeId}/product/{productId}", controllers.PublicFaqByProduct(faqService, logg))
		r.Get("/faqs/{storeId}/category/{categoryHandle}", controllers.PublicFaqByCategory(faqService, logg))
		r.Get("/faqs/{storeId}/homepage", controllers.PublicFaqByHomepage(faqService, logg))

		r.Get("/check/product/{storeId}/{productId}", controllers.CheckProductFaq(faqService, logg))
		r.Get("/check/category/{storeId}/{categoryHandle}", controllers.CheckCategoryFaq(faqService, logg))
		r.Get("/check/homepage/{storeId}", controllers.CheckHomepageFaq(faqService, logg))
	})

	return r
}
