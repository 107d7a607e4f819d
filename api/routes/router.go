package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/societyhub-backend/api/controllers"
	"github.com/angelmondragon/societyhub-backend/api/middleware"
	"github.com/angelmondragon/societyhub-backend/pkg/config"
	"github.com/angelmondragon/societyhub-backend/pkg/db"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
	"github.com/angelmondragon/societyhub-backend/pkg/metrics"
	"github.com/angelmondragon/societyhub-backend/pkg/redis"
)

// Services bundles the domain services mounted under /api/v1.
type Services struct {
	Societies   controllers.SocietyService
	Memberships controllers.MembershipService
	Users       controllers.UserService
	Issues      controllers.IssueService
	Assets      controllers.AssetService
	AMCs        controllers.AMCService
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	resolver middleware.ActorResolver,
	svc Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.App),
	)

	deps := map[string]controllers.Pinger{}
	if dbP != nil {
		deps["database"] = dbP
	}
	var limiter middleware.RateLimiter
	if redisClient != nil {
		deps["redis"] = redisClient
		limiter = redisClient
	}

	joinPolicy := middleware.NewRateLimitPolicy("join", cfg.RateLimit.JoinWindow, cfg.RateLimit.JoinLimit)
	decisionPolicy := middleware.NewRateLimitPolicy("decision", cfg.RateLimit.DecisionWindow, cfg.RateLimit.DecisionLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(resolver, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.UserList(svc.Users, logg))
			r.Get("/me", controllers.UserMe(svc.Users, logg))
			r.Put("/me", controllers.UserUpdateMe(svc.Users, logg))
			r.Get("/me/settings", controllers.UserSettings(svc.Users, logg))
			r.Put("/me/settings", controllers.UserUpdateSettings(svc.Users, logg))
			r.Get("/{userId}", controllers.UserGet(svc.Users, logg))
			r.Put("/{userId}", controllers.UserUpdate(svc.Users, logg))
			r.Delete("/{userId}", controllers.UserDelete(svc.Users, logg))
		})

		r.Route("/societies", func(r chi.Router) {
			r.Get("/", controllers.SocietyList(svc.Societies, logg))
			r.Post("/", controllers.SocietyCreate(svc.Societies, logg))

			r.Route("/{societyId}", func(r chi.Router) {
				r.Get("/", controllers.SocietyGet(svc.Societies, logg))
				r.Put("/", controllers.SocietyUpdate(svc.Societies, logg))
				r.Delete("/", controllers.SocietyDelete(svc.Societies, logg))
				r.Post("/approve", controllers.SocietyApprove(svc.Societies, logg))

				r.Get("/members", controllers.SocietyMembers(svc.Memberships, logg))
				r.With(middleware.RateLimit(joinPolicy, limiter, logg)).Post("/join", controllers.SocietyJoin(svc.Memberships, logg))
				r.With(middleware.RateLimit(decisionPolicy, limiter, logg)).Post("/members/decision", controllers.SocietyDecide(svc.Memberships, logg))

				r.Post("/issues", controllers.IssueCreate(svc.Issues, logg))
				r.Get("/asset-categories", controllers.AssetCategoryList(svc.Assets, logg))
				r.Post("/asset-categories", controllers.AssetCategoryCreate(svc.Assets, logg))
				r.Post("/assets", controllers.AssetCreate(svc.Assets, logg))
				r.Post("/amcs", controllers.AMCCreate(svc.AMCs, logg))
			})
		})

		r.Route("/issues", func(r chi.Router) {
			r.Get("/", controllers.IssueList(svc.Issues, logg))
			r.Get("/{issueId}", controllers.IssueGet(svc.Issues, logg))
			r.Put("/{issueId}", controllers.IssueUpdate(svc.Issues, logg))
			r.Delete("/{issueId}", controllers.IssueDelete(svc.Issues, logg))
			r.Get("/{issueId}/comments", controllers.IssueComments(svc.Issues, logg))
			r.Post("/{issueId}/comments", controllers.IssueAddComment(svc.Issues, logg))
		})

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", controllers.AssetList(svc.Assets, logg))
			r.Get("/{assetId}", controllers.AssetGet(svc.Assets, logg))
			r.Put("/{assetId}", controllers.AssetUpdate(svc.Assets, logg))
			r.Delete("/{assetId}", controllers.AssetDelete(svc.Assets, logg))
		})

		r.Route("/amcs", func(r chi.Router) {
			r.Get("/", controllers.AMCList(svc.AMCs, logg))
			r.Get("/{amcId}", controllers.AMCGet(svc.AMCs, logg))
			r.Put("/{amcId}", controllers.AMCUpdate(svc.AMCs, logg))
			r.Delete("/{amcId}", controllers.AMCDelete(svc.AMCs, logg))
			r.Get("/{amcId}/service-history", controllers.AMCServiceHistory(svc.AMCs, logg))
			r.Post("/{amcId}/service-history", controllers.AMCAddService(svc.AMCs, logg))
		})
	})

	return r
}
