package fitnessmanager

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/fitness-manager/internal/http/docs"
	"github.com/magabrotheeeer/fitness-manager/internal/http/handlers/crud/create"
	"github.com/magabrotheeeer/fitness-manager/internal/http/handlers/crud/export"
	"github.com/magabrotheeeer/fitness-manager/internal/http/handlers/crud/list"
	"github.com/magabrotheeeer/fitness-manager/internal/http/handlers/crud/read"
	"github.com/magabrotheeeer/fitness-manager/internal/http/handlers/crud/remove"
	"github.com/magabrotheeeer/fitness-manager/internal/http/handlers/crud/update"
	"github.com/magabrotheeeer/fitness-manager/internal/http/handlers/health"
	"github.com/magabrotheeeer/fitness-manager/internal/http/handlers/link/attach"
	"github.com/magabrotheeeer/fitness-manager/internal/http/handlers/link/detach"
	linklist "github.com/magabrotheeeer/fitness-manager/internal/http/handlers/link/list"
	linkupdate "github.com/magabrotheeeer/fitness-manager/internal/http/handlers/link/update"
	"github.com/magabrotheeeer/fitness-manager/internal/http/handlers/users/me"
	"github.com/magabrotheeeer/fitness-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-manager/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-manager/internal/models"
	"github.com/magabrotheeeer/fitness-manager/internal/services/link"
	"github.com/magabrotheeeer/fitness-manager/internal/services/resource"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	svcs Services,
	limiter *middlewarectx.RateLimiter,
	reg *prometheus.Registry,
) {
	metrics := middlewarectx.NewMetrics(reg)

	err := docs.Register(
		[]string{
			svcs.Clients.Name(), svcs.Diets.Name(), svcs.Foods.Name(), svcs.Exercises.Name(),
			svcs.Workouts.Name(), svcs.Products.Name(), svcs.Users.Name(),
		},
		[]string{svcs.DietFoods.Name(), svcs.WorkoutExercises.Name(), svcs.UserDiets.Name()},
	)
	if err != nil {
		logger.Error("failed to register api docs", sl.Err(err))
	}

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.URLFormat,
		metrics.Middleware,
	)

	// Открытые конечные точки
	r.Handle("/health", health.New(logger, svcs.DB))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Middleware(logger))
		r.Use(middlewarectx.Auth(svcs.Verifier, svcs.Provisioner, logger))

		staff := middlewarectx.WritesRequireRole(logger, models.RoleAdmin, models.RoleTrainer)

		r.Route("/clients", func(r chi.Router) {
			r.Use(staff)
			mountResource(r, logger, svcs.Clients)
		})
		r.Route("/diets", func(r chi.Router) {
			r.Use(staff)
			mountResource(r, logger, svcs.Diets)
		})
		r.Route("/foods", func(r chi.Router) {
			r.Use(staff)
			mountResource(r, logger, svcs.Foods)
		})
		r.Route("/exercises", func(r chi.Router) {
			r.Use(staff)
			mountResource(r, logger, svcs.Exercises)
		})
		r.Route("/workouts", func(r chi.Router) {
			r.Use(staff)
			mountResource(r, logger, svcs.Workouts)
		})
		r.Route("/products", func(r chi.Router) {
			r.Use(middlewarectx.WritesRequireRole(logger, models.RoleAdmin))
			mountResource(r, logger, svcs.Products)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/me", me.Handle)
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
				mountResource(r, logger, svcs.Users)
			})
		})

		r.Route("/diet_foods", func(r chi.Router) {
			r.Use(staff)
			mountLink[models.DietFoodInput, *models.DietFoodInput](r, logger, svcs.DietFoods)
		})
		r.Route("/workouts_exercises", func(r chi.Router) {
			r.Use(staff)
			mountLink[models.WorkoutExerciseInput, *models.WorkoutExerciseInput](r, logger, svcs.WorkoutExercises)
		})
		r.Route("/user_diets", func(r chi.Router) {
			r.Use(staff)
			mountLink[models.UserDietInput, *models.UserDietInput](r, logger, svcs.UserDiets)
		})
	})
}

// mountResource вешает CRUD и выгрузку ресурса на r.
func mountResource[In, Out any, PT interface {
	*Out
	export.Record
}](r chi.Router, logger *slog.Logger, svc *resource.Service[In, Out]) {
	name := svc.Name()
	r.Get("/", list.New[Out](logger, name, svc).ServeHTTP)
	r.Post("/", create.New[In, Out](logger, name, svc).ServeHTTP)
	r.Get("/export", export.New[Out, PT](logger, name, svc).ServeHTTP)
	r.Get("/{id}", read.New[Out](logger, name, svc).ServeHTTP)
	r.Put("/{id}", update.New[In, Out](logger, name, svc).ServeHTTP)
	r.Delete("/{id}", remove.New(logger, name, svc).ServeHTTP)
}

// mountLink вешает операции над таблицей связей на r.
func mountLink[In any, PIn linkupdate.Keyed[In], Out any](r chi.Router, logger *slog.Logger, svc *link.Service[In, Out]) {
	name := svc.Name()
	r.Get("/", linklist.New[Out](logger, name, svc).ServeHTTP)
	r.Get("/{parentID}", linklist.New[Out](logger, name, svc).ServeHTTP)
	r.Post("/", attach.New[In, Out](logger, name, svc).ServeHTTP)
	r.Put("/{parentID}/{childID}", linkupdate.New[In, PIn, Out](logger, name, svc).ServeHTTP)
	r.Delete("/{parentID}/{childID}", detach.New(logger, name, svc).ServeHTTP)
}
