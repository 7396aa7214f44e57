package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lessonquiz/internal/cache"
	"lessonquiz/internal/config"
	"lessonquiz/internal/logger"
	"lessonquiz/internal/notify"
	"lessonquiz/internal/repository"
	"lessonquiz/internal/repository/memory"
	"lessonquiz/internal/service"
	"lessonquiz/internal/transport/rest"
	"lessonquiz/internal/transport/ws"
	"lessonquiz/internal/validation"
)

// stores bundles the storage-backed dependencies of the services.
type stores struct {
	questions repository.QuestionRepo
	attempts  repository.AttemptRepo
	progress  repository.ProgressRepo
	cache     cache.QuestionCache
	board     cache.BoardCache
	close     func()
}

// @title Lesson Quiz API
// @version 1.0
// @description Lesson quizzes with server-side grading
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewStdout("", false).Fatal("[Server] load config", err)
	}

	std := logger.NewStdout("", cfg.Debug)
	var log logger.Logger = std
	if cfg.RollbarToken != "" {
		host, _ := os.Hostname()
		rb := logger.NewRollbar(std, logger.RollbarOptions{
			Token:       cfg.RollbarToken,
			Environment: cfg.Env,
			ServerHost:  host,
		})
		defer rb.Close()
		log = rb
	}
	log.Info("[Server] starting", cfg.Env, "storage="+cfg.Storage)

	ctx := context.Background()
	var st *stores
	if cfg.Storage == config.StorageMemory {
		st = memoryStores()
		log.Warn("[Server] using in-memory storage, data is lost on exit")
	} else {
		st, err = mongoStores(ctx, cfg, log)
		if err != nil {
			log.Fatal("[Server] connect storage", err)
		}
	}
	defer st.close()

	// Initialize WebSocket hub
	wsHub := ws.NewHub(log)

	var notifier notify.Notifier
	if cfg.SendgridAPIKey != "" {
		notifier = notify.NewSendgridNotifier(cfg.SendgridAPIKey, cfg.AppName, cfg.DefaultFromEmail, log)
	} else {
		notifier = notify.NewConsoleNotifier(cfg.AppName, log)
	}

	// Initialize services
	authSvc, err := service.NewAuthService(service.AuthConfig{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		JWTSecret:     cfg.JWTSecret,
		AdminTokenTTL: cfg.JWTExpiration,
	})
	if err != nil {
		log.Fatal("[Server] init auth", err)
	}
	quizSvc := service.NewQuizService(st.questions, st.attempts, st.cache, st.board, notifier, cfg.PassThreshold, log)
	progressSvc := service.NewProgressService(st.progress, st.attempts, quizSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	quizSvc.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		AuthService:        authSvc,
		QuizService:        quizSvc,
		ProgressService:    progressSvc,
		WSHub:              wsHub,
		Validator:          validation.New(),
		Logger:             log,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("[Server] listening on :" + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("[Server] ListenAndServe", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("[Server] shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("[Server] forced to shutdown", err)
	}

	log.Info("[Server] exited")
}

func memoryStores() *stores {
	db := memory.Open()
	return &stores{
		questions: memory.NewQuestionRepo(db),
		attempts:  memory.NewAttemptRepo(db),
		progress:  memory.NewProgressRepo(db),
		cache:     memory.NewQuestionCache(),
		board:     memory.NewBoardCache(),
		close:     func() {},
	}
}

func mongoStores(ctx context.Context, cfg *config.Config, log logger.Logger) (*stores, error) {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		mongoClient.Disconnect(ctx)
		return nil, err
	}
	log.Info("[Server] connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(pingCtx, db); err != nil {
		log.Warn("[Server] ensure indexes", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		mongoClient.Disconnect(ctx)
		return nil, err
	}
	log.Info("[Server] connected to Redis")

	return &stores{
		questions: repository.NewQuestionRepo(db),
		attempts:  repository.NewAttemptRepo(db),
		progress:  repository.NewProgressRepo(db),
		cache:     cache.NewQuestionCache(rdb, cfg.QuestionCacheTTL),
		board:     cache.NewBoardCache(rdb),
		close: func() {
			rdb.Close()
			mongoClient.Disconnect(context.Background())
		},
	}, nil
}
