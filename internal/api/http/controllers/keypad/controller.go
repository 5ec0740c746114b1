package keypad

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"keycalc/internal/domain"
	"keycalc/internal/ports"
)

// Controller: маршруты сессий клавиатурного калькулятора.
type Controller struct {
	uc  ports.IKeypadUseCase
	log *slog.Logger
}

// New создаёт контроллер сессий.
func New(uc ports.IKeypadUseCase, log *slog.Logger) *Controller {
	return &Controller{uc: uc, log: log}
}

// RegisterRoutes реализует http.Controller.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	sessions := r.Group("/api/v1/sessions")

	sessions.POST("", c.open)
	sessions.GET("/:id", c.get)
	sessions.POST("/:id/keys", c.press)
	sessions.DELETE("/:id", c.close)
}

// @Summary Открыть сессию
// @Tags keypad
// @Produce json
// @Success 201 {object} SessionResponse
// @Failure 429 {object} ErrorResponse "Достигнут лимит сессий"
// @Router /api/v1/sessions [post]
func (c *Controller) open(ctx *gin.Context) {
	view, err := c.uc.OpenSession(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "open session failed", err)
		return
	}
	ctx.JSON(http.StatusCreated, toResponse(view))
}

// @Summary Состояние сессии
// @Tags keypad
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (c *Controller) get(ctx *gin.Context) {
	view, err := c.uc.Session(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.fail(ctx, "get session failed", err)
		return
	}
	ctx.JSON(http.StatusOK, toResponse(view))
}

// @Summary Нажать клавиши
// @Description Клавиши: 0-9 . + - * / x = C. Пробелы игнорируются. Строка с неизвестной клавишей не применяется.
// @Tags keypad
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body PressRequest true "Клавиши"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse "Неизвестная клавиша или слишком длинный ввод"
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/keys [post]
func (c *Controller) press(ctx *gin.Context) {
	var req PressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.log.Warn("press bind failed", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	view, err := c.uc.Press(ctx.Request.Context(), ctx.Param("id"), req.Keys)
	if err != nil {
		c.fail(ctx, "press failed", err)
		return
	}
	ctx.JSON(http.StatusOK, toResponse(view))
}

// @Summary Закрыть сессию
// @Tags keypad
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (c *Controller) close(ctx *gin.Context) {
	if err := c.uc.CloseSession(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.fail(ctx, "close session failed", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// fail переводит доменную ошибку в HTTP-статус.
func (c *Controller) fail(ctx *gin.Context, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownKey), errors.Is(err, domain.ErrTooManyKeys):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrTooManySessions):
		status = http.StatusTooManyRequests
	}
	if status == http.StatusInternalServerError {
		c.log.Error(msg, "error", err)
	} else {
		c.log.Warn(msg, "error", err)
	}
	ctx.JSON(status, ErrorResponse{Error: err.Error()})
}
