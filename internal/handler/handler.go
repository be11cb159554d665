package handler

import (
	"net/http"
	"time"

	"xnews-bot/internal/job"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type PassReporter interface {
	LastPass() (job.PassResult, bool)
}

type Handler struct {
	tracer  trace.Tracer
	job     PassReporter
	started time.Time
}

func New(tracer trace.Tracer, reporter PassReporter) *Handler {
	return &Handler{tracer: tracer, job: reporter, started: time.Now()}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/status", h.Status)
}

// Health returns the health status of the service.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Status reports uptime and the outcome of the most recent news pass.
func (h *Handler) Status(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.status")
	defer span.End()

	resp := gin.H{"uptime_secs": int(time.Since(h.started).Seconds())}
	if last, ok := h.job.LastPass(); ok {
		resp["last_pass"] = last
	} else {
		resp["last_pass"] = nil
	}
	c.JSON(http.StatusOK, resp)
}
