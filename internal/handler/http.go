package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stadium-designer/internal/models"
	"stadium-designer/internal/request"
	"stadium-designer/internal/scene"
	"stadium-designer/internal/service"
	sharedMiddleware "stadium-designer/shared/middleware"
)

// APIError представляет стандартизированный ответ об ошибке.
type APIError struct {
	Message string `json:"message"`
}

// VisualizationResponse - ответ для 3D view: геометрия, сводка и размеры поля.
type VisualizationResponse struct {
	Geometry scene.Group     `json:"geometry"`
	Data     scene.DataGroup `json:"data"`
	Field    FieldDimensions `json:"field"`
}

// FieldDimensions - полные размеры поля.
type FieldDimensions struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
}

// InputPreviewResponse - содержимое input.txt для заданных параметров.
type InputPreviewResponse struct {
	Input string `json:"input"`
}

// VisualizationHandler обрабатывает HTTP запросы визуализации.
type VisualizationHandler struct {
	service service.VisualizationService
	logger  *zap.Logger
}

// NewVisualizationHandler создает новый VisualizationHandler.
func NewVisualizationHandler(s service.VisualizationService, logger *zap.Logger) *VisualizationHandler {
	return &VisualizationHandler{
		service: s,
		logger:  logger.Named("VisualizationHandler"),
	}
}

// RegisterRoutes регистрирует маршруты.
func (h *VisualizationHandler) RegisterRoutes(router gin.IRouter) {
	v1 := router.Group("/api/v1/visualizations")
	{
		v1.POST("", h.visualize)
		v1.POST("/input", h.previewInput)
	}
}

func (h *VisualizationHandler) visualize(c *gin.Context) {
	log := h.logger.With(zap.String("request_id", sharedMiddleware.RequestID(c)))

	var params models.DesignParameters
	if err := c.ShouldBindJSON(&params); err != nil {
		log.Warn("Invalid visualization request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, APIError{Message: models.ErrInvalidInput.Error() + ": " + err.Error()})
		return
	}

	res, err := h.service.Visualize(c.Request.Context(), params)
	if err != nil {
		h.handleServiceError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, VisualizationResponse{
		Geometry: res.Geometry,
		Data:     res.Data,
		Field:    FieldDimensions{Width: res.FieldWidth, Length: res.FieldLength},
	})
}

func (h *VisualizationHandler) previewInput(c *gin.Context) {
	var params models.DesignParameters
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: models.ErrInvalidInput.Error() + ": " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, InputPreviewResponse{Input: request.InputLine(params)})
}

// handleServiceError переводит ошибки сервиса в HTTP статусы.
func (h *VisualizationHandler) handleServiceError(c *gin.Context, log *zap.Logger, err error) {
	var status int
	var message string

	switch {
	case errors.Is(err, models.ErrAnalysisTimeout):
		status, message = http.StatusGatewayTimeout, "analysis worker did not respond in time"
	case errors.Is(err, models.ErrAnalysisFailed):
		status, message = http.StatusBadGateway, "analysis worker failed"
	case errors.Is(err, models.ErrMalformedResult):
		status, message = http.StatusBadGateway, "analysis worker returned malformed output"
	case errors.Is(err, models.ErrAssetUnavailable):
		status, message = http.StatusInternalServerError, "model files are unavailable"
	default:
		status, message = http.StatusInternalServerError, models.ErrInternalServer.Error()
	}

	log.Error("Visualization failed", zap.Int("status", status), zap.Error(err))
	_ = c.Error(err)
	c.JSON(status, APIError{Message: message})
}
