package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/KNICEX/arbitrage-agent/internal/entity"
	"github.com/KNICEX/arbitrage-agent/internal/repo"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	StatusText          = "✅ arbitrage monitor is active."
	defaultSignalsLimit = 20
	maxSignalsLimit     = 200
)

// Starter starts the background tasks once; repeated calls do nothing.
type Starter interface {
	Start(ctx context.Context) bool
}

type Handler struct {
	starter Starter
	// tasks must outlive the request that happened to trigger them
	taskCtx    context.Context
	signalRepo repo.SignalRepo
}

func NewHandler(taskCtx context.Context, starter Starter, signalRepo repo.SignalRepo) *Handler {
	return &Handler{
		starter:    starter,
		taskCtx:    taskCtx,
		signalRepo: signalRepo,
	}
}

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.startTasks)
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.status)
	r.HEAD("/", h.status)
	r.GET("/signals", h.signals)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// startTasks runs before every route, so any inbound request, keep-alive pings included,
// starts the background tasks.
func (h *Handler) startTasks(c *gin.Context) {
	if h.starter.Start(h.taskCtx) {
		log.Info().Str("method", c.Request.Method).Str("path", c.Request.URL.Path).
			Msg("background tasks started by inbound request")
	}
	c.Next()
}

func (h *Handler) status(c *gin.Context) {
	c.String(http.StatusOK, StatusText)
}

func (h *Handler) signals(c *gin.Context) {
	limit := defaultSignalsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxSignalsLimit)
	}

	verdict := c.Query("verdict")
	var (
		records []entity.SignalRecord
		err     error
	)
	if verdict != "" {
		records, err = h.signalRepo.FindByVerdict(c.Request.Context(), verdict, limit)
	} else {
		records, err = h.signalRepo.FindRecent(c.Request.Context(), limit)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to query signals")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query signals failed"})
		return
	}
	c.JSON(http.StatusOK, records)
}
