package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sdiagne/loansched/internal/domain/models"
	"github.com/sdiagne/loansched/internal/metrics"
	"github.com/sdiagne/loansched/internal/repository/cache"
	"github.com/sdiagne/loansched/internal/service/schedule"
)

// ScheduleHandler exposes the amortization engine over HTTP.
type ScheduleHandler struct {
	svc      *schedule.Service
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewScheduleHandler constructs the HTTP handler adapter. cache may be nil to
// disable response caching.
func NewScheduleHandler(svc *schedule.Service, responseCache cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *ScheduleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleHandler{svc: svc, cache: responseCache, cacheTTL: cacheTTL, logger: logger}
}

// Index renders the calculator page.
func (h *ScheduleHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// Calculate parses a loan request, runs the schedule engine and returns the
// itemized schedule with summary totals. Invalid loan parameters reject the
// request; malformed part payment entries are skipped individually.
func (h *ScheduleHandler) Calculate(c *gin.Context) {
	var req models.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid calculation payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	params, err := req.Parameters()
	if err != nil {
		h.logger.Warn("rejected loan parameters", zap.Error(err))
		metrics.Calculations.WithLabelValues(conventionLabel(req.DayCountConvention), "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	partPayments, skipped := req.ParsePartPayments()
	for _, reason := range skipped {
		h.logger.Warn("skipping malformed part payment", zap.String("reason", reason))
		metrics.SkippedPartPayments.Inc()
	}

	key, cacheable := h.cacheKey(req)
	if cacheable {
		if cached, ok := h.cache.Get(c.Request.Context(), key); ok {
			metrics.CacheRequests.WithLabelValues("hit").Inc()
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
		metrics.CacheRequests.WithLabelValues("miss").Inc()
	}

	started := time.Now()
	result, err := h.svc.Compute(params, partPayments)
	metrics.CalculationDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			metrics.Calculations.WithLabelValues(string(params.Convention), "invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("schedule computation failed", zap.Error(err))
		metrics.Calculations.WithLabelValues(string(params.Convention), "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute schedule"})
		return
	}
	metrics.Calculations.WithLabelValues(string(params.Convention), "ok").Inc()

	response := models.NewCalculateResponse(result)

	if cacheable {
		if body, err := json.Marshal(response); err == nil {
			if err := h.cache.Set(c.Request.Context(), key, string(body), h.cacheTTL); err != nil {
				h.logger.Warn("failed to cache schedule response", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, response)
}

// conventionLabel maps a user-supplied convention string onto the fixed set
// of metric label values. Arbitrary request strings must never become
// Prometheus labels, each distinct value would mint a new time series.
func conventionLabel(raw string) string {
	if conv, err := models.ParseDayCount(raw); err == nil {
		return string(conv)
	}
	return "unknown"
}

// cacheKey derives the cache key from the parsed request. The parsed struct
// marshals deterministically, so formatting differences in the raw body do
// not fragment the cache.
func (h *ScheduleHandler) cacheKey(req models.CalculateRequest) (string, bool) {
	if h.cache == nil {
		return "", false
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return "", false
	}
	return cache.RequestKey(payload), true
}
