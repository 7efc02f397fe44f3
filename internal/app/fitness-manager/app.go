// Package fitnessmanager собирает HTTP-приложение: хранилище, кэш, публикацию
// событий, проверку токенов и маршруты.
package fitnessmanager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/fitness-manager/internal/cache"
	"github.com/magabrotheeeer/fitness-manager/internal/config"
	"github.com/magabrotheeeer/fitness-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-manager/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/fitness-manager/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-manager/internal/lib/supabase"
	"github.com/magabrotheeeer/fitness-manager/internal/migrations"
	"github.com/magabrotheeeer/fitness-manager/internal/models"
	"github.com/magabrotheeeer/fitness-manager/internal/services/inventory"
	"github.com/magabrotheeeer/fitness-manager/internal/services/link"
	"github.com/magabrotheeeer/fitness-manager/internal/services/resource"
	"github.com/magabrotheeeer/fitness-manager/internal/services/users"
	"github.com/magabrotheeeer/fitness-manager/internal/storage/repository"
)

const (
	limiterCleanupInterval = time.Minute
	limiterIdleTTL         = 10 * time.Minute
)

// App HTTP-сервер со всеми зависимостями.
type App struct {
	server          *http.Server
	logger          *slog.Logger
	db              *repository.Storage
	cache           *cache.Cache
	amqpConn        *amqp.Connection
	limiter         *middlewarectx.RateLimiter
	shutdownTimeout time.Duration
}

// Services сервисы, которые обслуживают маршруты.
type Services struct {
	Clients   *resource.Service[models.ClientInput, models.Client]
	Diets     *resource.Service[models.DietInput, models.Diet]
	Foods     *resource.Service[models.FoodInput, models.Food]
	Exercises *resource.Service[models.ExerciseInput, models.Exercise]
	Workouts  *resource.Service[models.WorkoutInput, models.Workout]
	Products  *resource.Service[models.ProductInput, models.Product]
	Users     *resource.Service[models.UserInput, models.User]

	DietFoods        *link.Service[models.DietFoodInput, models.DietFood]
	WorkoutExercises *link.Service[models.WorkoutExerciseInput, models.WorkoutExercise]
	UserDiets        *link.Service[models.UserDietInput, models.UserDiet]

	Provisioner middlewarectx.Provisioner
	Verifier    middlewarectx.Verifier
	DB          interface {
		Ping(ctx context.Context) error
	}
}

// New поднимает зависимости, применяет миграции и собирает роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{
		logger:          logger,
		db:              db,
		limiter:         middlewarectx.NewRateLimiter(cfg.RPS, cfg.Burst),
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	if cfg.AddressRedis != "" {
		app.cache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		logger.Warn("redis address is not set, caching disabled")
	}

	var pub users.Publisher = rabbitmq.NopPublisher{}
	if cfg.RabbitURL != "" {
		app.amqpConn, err = rabbitmq.Connect(cfg.RabbitURL, cfg.ConnectRetries, cfg.RetryDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ch, err := rabbitmq.SetupChannel(app.amqpConn, cfg.Exchange, rabbitmq.EventQueues())
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		pub = rabbitmq.NewPublisher(ch, cfg.Exchange)
	} else {
		logger.Warn("rabbitmq url is not set, events are not published")
	}

	notifier := inventory.NewNotifier(cfg.LowStockThreshold, pub, logger)

	workouts := newResource[models.WorkoutInput, models.Workout]("workouts", repository.NewWorkoutRepository(db), app.cache, cfg.CacheTTL, logger)

	provisioner := users.NewService(repository.NewUserRepository(db), pub, logger)
	if app.cache != nil {
		provisioner.WithCache(app.cache)
	}

	svcs := Services{
		Clients:   newResource[models.ClientInput, models.Client]("clients", repository.NewClientRepository(db), app.cache, cfg.CacheTTL, logger),
		Diets:     newResource[models.DietInput, models.Diet]("diets", repository.NewDietRepository(db), app.cache, cfg.CacheTTL, logger),
		Foods:     newResource[models.FoodInput, models.Food]("foods", repository.NewFoodRepository(db), app.cache, cfg.CacheTTL, logger),
		Exercises: newResource[models.ExerciseInput, models.Exercise]("exercises", repository.NewExerciseRepository(db), app.cache, cfg.CacheTTL, logger),
		Workouts:  workouts,
		Products: newResource[models.ProductInput, models.Product]("products", repository.NewProductRepository(db), app.cache, cfg.CacheTTL, logger).
			OnSave(notifier.ProductSaved),
		Users: flushWorkoutsOnRemove(
			newResource[models.UserInput, models.User]("users", repository.NewUserRepository(db), app.cache, cfg.CacheTTL, logger),
			workouts,
		),

		DietFoods:        link.New[models.DietFoodInput, models.DietFood]("diet_foods", repository.NewDietFoodRepository(db), logger),
		WorkoutExercises: link.New[models.WorkoutExerciseInput, models.WorkoutExercise]("workouts_exercises", repository.NewWorkoutExerciseRepository(db), logger),
		UserDiets:        link.New[models.UserDietInput, models.UserDiet]("user_diets", repository.NewUserDietRepository(db), logger),

		Provisioner: provisioner,
		Verifier: supabase.NewVerifier(supabase.Config{
			URL:       cfg.SupabaseURL,
			AnonKey:   cfg.AnonKey,
			JWTSecret: cfg.JWTSecret,
			Audience:  cfg.Audience,
			Timeout:   cfg.SupabaseTimeout,
		}),
		DB: db,
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, svcs, app.limiter, reg)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func newResource[In, Out any](
	name string,
	repo resource.Repository[In, Out],
	c *cache.Cache,
	ttl time.Duration,
	log *slog.Logger,
) *resource.Service[In, Out] {
	svc := resource.New(name, repo, log)
	if c != nil {
		svc.WithCache(c, ttl)
	}
	return svc
}

// flushWorkoutsOnRemove сбрасывает кэш тренировок после удаления
// пользователя: база обнуляет workouts.user_id каскадом.
func flushWorkoutsOnRemove(
	users *resource.Service[models.UserInput, models.User],
	workouts *resource.Service[models.WorkoutInput, models.Workout],
) *resource.Service[models.UserInput, models.User] {
	return users.OnRemove(func(ctx context.Context, _ int) { workouts.Flush(ctx) })
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер,
// дожидаясь завершения текущих запросов.
func (a *App) Run(ctx context.Context) error {
	go a.limiter.Run(ctx, limiterCleanupInterval, limiterIdleTTL)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis client", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
