package system

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"keycalc/internal/ports"
)

// readyTimeout: сколько ждём ответа хранилища в readiness.
const readyTimeout = 2 * time.Second

// Controller обслуживает системные маршруты liveness и readiness.
type Controller struct {
	repo ports.IOperationRepository
	log  *slog.Logger
}

// New создаёт системный контроллер. repo может быть nil (без хранилища), тогда readiness всегда ok.
func New(repo ports.IOperationRepository, log *slog.Logger) *Controller {
	return &Controller{repo: repo, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/liveness", c.live)
	r.GET("/readyness", c.ready)
}

func (c *Controller) live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (c *Controller) ready(ctx *gin.Context) {
	if c.repo != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), readyTimeout)
		defer cancel()
		if err := c.repo.Ping(pingCtx); err != nil {
			c.log.Warn("ready check failed", "error", err)
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
