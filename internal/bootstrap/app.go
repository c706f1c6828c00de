package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/auth"
	"resume-analyzer/internal/documents"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/llm/cache"
	"resume-analyzer/internal/llm/gemini"
	"resume-analyzer/internal/llm/huggingface"
	"resume-analyzer/internal/llm/openai"
	"resume-analyzer/internal/scoring"
	"resume-analyzer/internal/services/health"
	sharedauth "resume-analyzer/internal/shared/auth"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/server"
	"resume-analyzer/internal/shared/storage/db"
	"resume-analyzer/internal/shared/storage/object"
	localstore "resume-analyzer/internal/shared/storage/object/local"
	s3store "resume-analyzer/internal/shared/storage/object/s3"
	"resume-analyzer/internal/shared/telemetry"
	"resume-analyzer/internal/users"
)

// App holds shared dependencies and the configured router.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Redis            *redis.Client
	Store            object.ObjectStore
	Scorer           *scoring.Scorer
	Signer           *sharedauth.Signer
	UsersService     *users.Service
	DocumentsService *documents.Service
	AnalysesService  *analyses.Service
	OAuth            *auth.Service
}

// Build connects infrastructure, wires services and mounts the routes.
// The caller owns the returned App and must Close it.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB

	store, err := buildStore(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store

	suggester, err := buildSuggester(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	if suggester != nil {
		suggester = llm.WithRetry(suggester)
		if rdb := buildRedis(ctx, cfg); rdb != nil {
			app.Redis = rdb
			suggester = cache.New(suggester, rdb, cfg.EnrichmentCacheTTL, cfg.LLMProvider+":"+cfg.LLMModel)
		}
	}
	app.Scorer = scoring.New(scoring.Options{
		MatchMode:         scoring.ParseMatchMode(cfg.SkillMatchMode),
		Suggester:         suggester,
		EnrichmentTimeout: cfg.EnrichmentTimeout,
	})

	signer, err := sharedauth.NewSigner(cfg.JWTSecret, cfg.Env)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Signer = signer

	buildServices(app)
	app.Router = server.NewRouter(routerDeps(app))
	return app, nil
}

// Close releases the database pool and the Redis client.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.DevLike() {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.DevLike() {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, s3store.Options{
			Region:     cfg.AWSRegion,
			Bucket:     cfg.S3Bucket,
			Prefix:     cfg.S3Prefix,
			KMSKeyID:   cfg.SSEKMSKeyID,
			PresignTTL: cfg.S3PresignTTL,
		})
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

// buildSuggester returns nil when enrichment is disabled.
func buildSuggester(ctx context.Context, cfg config.Config) (llm.Suggester, error) {
	var (
		key    string
		client llm.Suggester
		err    error
	)
	switch cfg.LLMProvider {
	case "gemini":
		key = cfg.GeminiAPIKey
		if key != "" {
			client, err = gemini.NewClient(ctx, key, cfg.LLMModel)
		}
	case "openai":
		key = cfg.OpenAIAPIKey
		if key != "" {
			client, err = openai.NewClient(key, cfg.LLMModel, cfg.OpenAIBaseURL, cfg.LLMTimeout)
		}
	case "huggingface":
		key = cfg.HuggingFaceAPIKey
		if key != "" {
			client, err = huggingface.NewClient(key, cfg.LLMModel, cfg.HuggingFaceBaseURL, cfg.LLMTimeout)
		}
	default:
		return nil, nil
	}

	if key == "" {
		telemetry.Warn("bootstrap.enrichment_disabled", map[string]any{
			"provider": cfg.LLMProvider,
			"reason":   "api key missing",
		})
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("llm provider %s: %w", cfg.LLMProvider, err)
	}
	telemetry.Info("bootstrap.enrichment_enabled", map[string]any{
		"provider": cfg.LLMProvider,
		"model":    cfg.LLMModel,
	})
	return client, nil
}

// buildRedis returns nil when the cache is not configured or unreachable.
func buildRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb, err := cache.NewRedisClient(ctx, cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		telemetry.Warn("bootstrap.enrichment_cache_disabled", map[string]any{"error": err})
		return nil
	}
	return rdb
}

func buildServices(app *App) {
	var (
		docRepo      documents.DocumentsRepo
		analysisRepo analyses.Repo
		userRepo     users.Repo
	)
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		analysisRepo = &analyses.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	app.UsersService = users.NewService(userRepo)
	app.DocumentsService = &documents.Service{
		Store:           app.Store,
		Repo:            docRepo,
		StorageProvider: app.Config.ObjectStoreType,
	}
	app.AnalysesService = &analyses.Service{
		Repo:      analysisRepo,
		Documents: app.DocumentsService,
		Scorer:    app.Scorer,
	}
	app.OAuth = auth.NewService(app.UsersService, app.Signer, app.Config.UIRedirectURL,
		auth.GoogleProvider(app.Config.GoogleClientID, app.Config.GoogleClientSecret, app.Config.GoogleRedirectURL),
		auth.GitHubProvider(app.Config.GitHubClientID, app.Config.GitHubClientSecret, app.Config.GitHubRedirectURL),
	)
}

func routerDeps(app *App) server.RouterDeps {
	deps := server.RouterDeps{
		Config:          app.Config,
		Verifier:        app.Signer,
		DocumentHandler: documents.NewHandler(app.DocumentsService),
		AnalysisHandler: analyses.NewHandler(app.AnalysesService),
		UserHandler:     users.NewHandler(app.UsersService),
		OAuth:           app.OAuth,
	}
	if app.DB != nil {
		deps.Health = health.NewService(app.DB)
	} else {
		deps.Health = health.NewService(nil)
	}
	if _, ok := app.Store.(*localstore.Store); ok {
		deps.LocalFiles = app.Store
	}
	return deps
}
