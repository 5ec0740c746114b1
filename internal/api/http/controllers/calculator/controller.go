package calculator

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"keycalc/internal/domain"
	"keycalc/internal/ports"
)

// Controller обслуживает маршруты разовых вычислений (calculate, history).
type Controller struct {
	uc  ports.ICalculatorUseCase
	log *slog.Logger
}

// New создаёт контроллер калькулятора.
func New(uc ports.ICalculatorUseCase, log *slog.Logger) *Controller {
	return &Controller{uc: uc, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	api.POST("/calculate", c.calculate)
	api.GET("/history", c.history)
}

// @Summary Выполнить вычисление
// @Description Принимает два числа и операцию (+, -, *, / или алиас: add, sub, x, mul, ÷, div), возвращает результат.
// @Description Результат кэшируется и сохраняется в историю.
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body CalculateRequest true "Параметры вычисления"
// @Success 200 {object} CalculateResponse "Результат вычисления"
// @Failure 400 {object} CalculateResponse "Невалидный запрос, неизвестная операция или деление на ноль"
// @Failure 500 {object} CalculateResponse "Внутренняя ошибка сервера"
// @Router /api/v1/calculate [post]
func (c *Controller) calculate(ctx *gin.Context) {
	var req CalculateRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.log.Warn("calculate bind failed", "error", err)
		ctx.JSON(http.StatusBadRequest, CalculateResponse{Message: "invalid request: " + err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.log.Warn("calculate validation failed", "error", err)
		ctx.JSON(http.StatusBadRequest, CalculateResponse{Message: err.Error()})
		return
	}

	op, err := c.uc.Calculate(ctx.Request.Context(), *req.Number1, *req.Number2, req.Operation)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownOperation) || errors.Is(err, domain.ErrDivisionByZero) {
			c.log.Warn("calculate rejected", "error", err)
			ctx.JSON(http.StatusBadRequest, CalculateResponse{Message: err.Error()})
			return
		}
		c.log.Error("calculate failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, CalculateResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, CalculateResponse{Result: domain.JSONFloat(op.Result), Message: op.Message})
}

// @Summary Получить историю операций
// @Description Возвращает последние операции (разовые и из сессий клавиатуры), новые сначала
// @Tags calculator
// @Produce json
// @Success 200 {object} HistoryResponse "Список операций"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/history [get]
func (c *Controller) history(ctx *gin.Context) {
	list, err := c.uc.History(ctx.Request.Context())
	if err != nil {
		c.log.Error("history failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, HistoryResponse{Items: toHistoryItems(list)})
}
