package server

import (
	"errors"
	"mime"
	"net/http"
	"os"
	"path"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/auth"
	"resume-analyzer/internal/documents"
	"resume-analyzer/internal/services/health"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/server/respond"
	"resume-analyzer/internal/shared/storage/object"
	localstore "resume-analyzer/internal/shared/storage/object/local"
	"resume-analyzer/internal/shared/telemetry"
	"resume-analyzer/internal/users"
)

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config          config.Config
	Verifier        middleware.TokenVerifier
	Health          *health.Service
	DocumentHandler *documents.Handler
	AnalysisHandler *analyses.Handler
	UserHandler     *users.Handler
	OAuth           *auth.Service
	// LocalFiles serves objects of the filesystem store. Nil when objects
	// live in S3 and are reached through presigned URLs.
	LocalFiles object.ObjectStore
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Verifier),
	)

	mountMetrics(r, deps.Config)
	if deps.LocalFiles != nil {
		r.GET(localstore.FilesRoute+"*key", serveObject(deps.LocalFiles))
	}

	api := r.Group("/api/v1")
	api.GET("/health", healthHandler(deps.Health))

	if deps.OAuth != nil {
		deps.OAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api, middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: deps.Config.AnalyzeRateLimit, Burst: deps.Config.AnalyzeBurst},
			},
		}))
	}

	return r
}

// mountMetrics exposes /metrics behind METRICS_TOKEN. Without a token the
// endpoint is open in dev-like envs and not mounted anywhere else.
func mountMetrics(r *gin.Engine, cfg config.Config) {
	switch {
	case cfg.MetricsToken != "":
		r.GET("/metrics", middleware.MetricsAuth(cfg.MetricsToken), metrics.Handler())
	case cfg.DevLike():
		r.GET("/metrics", metrics.Handler())
	default:
		telemetry.Warn("metrics.disabled", map[string]any{
			"env":    cfg.Env,
			"reason": "METRICS_TOKEN not set",
		})
	}
}

func healthHandler(svc *health.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := svc.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, body)
	}
}

func serveObject(store object.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		rc, err := store.Open(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
				return
			}
			respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid file key", nil)
			return
		}
		defer rc.Close()

		contentType := mime.TypeByExtension(path.Ext(key))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
			"Content-Disposition": "inline",
		})
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
