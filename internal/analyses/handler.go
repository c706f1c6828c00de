package analyses

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/documents"
	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group. guard runs
// before the two routes that trigger scoring.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guard ...gin.HandlerFunc) {
	rg.POST("/documents/:id/analyze", append(guard, h.analyzeDocument)...)
	rg.POST("/analyses", append(guard, h.createAnalysis)...)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

type createAnalysisRequest struct {
	DocumentID string `json:"documentId"`
}

func (h *Handler) analyzeDocument(c *gin.Context) {
	h.analyze(c, c.Param("id"))
}

func (h *Handler) createAnalysis(c *gin.Context) {
	var req createAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	h.analyze(c, req.DocumentID)
}

func (h *Handler) analyze(c *gin.Context, documentID string) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "documentId is required", nil)
		return
	}
	c.Set(middleware.DocumentIDKey, documentID)

	userID := middleware.UserIDFromContext(c)
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))

	analysis, err := h.Svc.Analyze(ctx, userID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, documents.ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "unsupported_file_type", "Unsupported file type", nil)
		case errors.Is(err, ErrTextTooShort):
			respond.Error(c, http.StatusBadRequest, "text_too_short", msgTextTooShort, nil)
		case errors.Is(err, ErrExtractionFailed):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "Unable to read text from the uploaded file", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", msgAnalysisFailed, nil)
		}
		return
	}
	c.Set(middleware.AnalysisIDKey, analysis.ID)

	respond.JSON(c, http.StatusCreated, toResponse(analysis))
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID := c.Param("id")
	c.Set(middleware.AnalysisIDKey, analysisID)

	analysis, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(analysis))
}

func (h *Handler) listAnalyses(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := DefaultListLimit
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch analyses", nil)
		return
	}

	resp := make([]Response, 0, len(items))
	for _, a := range items {
		resp = append(resp, toResponse(a))
	}

	respond.JSON(c, http.StatusOK, resp)
}
