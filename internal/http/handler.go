package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"field-service/internal/http/middleware"
	"field-service/internal/service"
	"field-service/internal/spatial"
)

type Handler struct {
	deviceService      *service.DeviceService
	areaService        *service.AreaService
	measurementService *service.MeasurementService
	aggregationService *service.AggregationService
	log                zerolog.Logger
}

func NewHandler(
	deviceService *service.DeviceService,
	areaService *service.AreaService,
	measurementService *service.MeasurementService,
	aggregationService *service.AggregationService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		deviceService:      deviceService,
		areaService:        areaService,
		measurementService: measurementService,
		aggregationService: aggregationService,
		log:                log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/")
	protected.Use(authMiddleware)

	devices := protected.Group("/devices")
	{
		devices.POST("", h.registerDevice)
		devices.GET("", h.listDevices)
		devices.GET("/:id", h.getDevice)
	}

	areas := protected.Group("/areas")
	{
		areas.POST("", h.createArea)
		areas.GET("", h.listAreas)
		areas.GET("/:id", h.getArea)
		areas.PUT("/:id/rename", h.renameArea)
		areas.GET("/:id/summary", h.getAreaSummary)
		areas.POST("/:id/measurements", h.recordMeasurement)
		areas.GET("/:id/measurements", h.listMeasurements)
		areas.POST("/:id/recompute", h.recomputeArea)
	}

	admin := protected.Group("/admin")
	{
		admin.GET("/areas", h.listAreas)
	}
}

type pointRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

type readingsRequest struct {
	Temperature float64 `json:"temperature"`
	Moisture    float64 `json:"moisture"`
	Nitrogen    float64 `json:"nitrogen"`
	Phosphorus  float64 `json:"phosphorus"`
	Potassium   float64 `json:"potassium"`
	PH          float64 `json:"ph"`
}

func (h *Handler) registerDevice(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	device, err := h.deviceService.Register(c.Request.Context(), principal, service.RegisterDeviceInput{
		Name: req.Name,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(device))
}

func (h *Handler) listDevices(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	devices, err := h.deviceService.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(devices))
}

func (h *Handler) getDevice(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid device id"))
		return
	}

	device, err := h.deviceService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(device))
}

func (h *Handler) createArea(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Name     string         `json:"name" binding:"required"`
		DeviceID string         `json:"device_id" binding:"required"`
		Polygon  []pointRequest `json:"polygon" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	polygon := make([]spatial.Point, 0, len(req.Polygon))
	for _, p := range req.Polygon {
		polygon = append(polygon, spatial.Point{Lat: *p.Lat, Lng: *p.Lng})
	}

	area, err := h.areaService.Create(c.Request.Context(), principal, service.CreateAreaInput{
		Name:     req.Name,
		DeviceID: req.DeviceID,
		Polygon:  polygon,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(area))
}

func (h *Handler) listAreas(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := service.AreaListFilter{}

	deviceID := strings.TrimSpace(c.Query("device_id"))
	if deviceID != "" {
		filter.DeviceID = &deviceID
	}

	owner := strings.TrimSpace(c.Query("owner"))
	if owner != "" {
		filter.OwnerUsername = &owner
	}

	areas, err := h.areaService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(areas))
}

func (h *Handler) getArea(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid area id"))
		return
	}

	area, err := h.areaService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(area))
}

func (h *Handler) renameArea(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid area id"))
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	area, err := h.areaService.Rename(c.Request.Context(), principal, id, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(area))
}

func (h *Handler) getAreaSummary(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid area id"))
		return
	}

	summary, err := h.areaService.Summary(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(summary))
}

func (h *Handler) recordMeasurement(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	areaID := strings.TrimSpace(c.Param("id"))
	if areaID == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid area id"))
		return
	}

	var req struct {
		DeviceID      string          `json:"device_id" binding:"required"`
		Latitude      *float64        `json:"latitude" binding:"required"`
		Longitude     *float64        `json:"longitude" binding:"required"`
		Readings      readingsRequest `json:"readings"`
		LocationLabel string          `json:"location_label"`
		CapturedAt    string          `json:"captured_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.RecordMeasurementInput{
		AreaID:        areaID,
		DeviceID:      req.DeviceID,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		LocationLabel: req.LocationLabel,
		CapturedAt:    req.CapturedAt,
	}
	input.Readings.Temperature = req.Readings.Temperature
	input.Readings.Moisture = req.Readings.Moisture
	input.Readings.Nitrogen = req.Readings.Nitrogen
	input.Readings.Phosphorus = req.Readings.Phosphorus
	input.Readings.Potassium = req.Readings.Potassium
	input.Readings.PH = req.Readings.PH

	measurement, err := h.measurementService.Record(c.Request.Context(), principal, input)
	if err != nil {
		// The sample is durable even when the aggregate refresh failed;
		// report it and let a later recompute heal the totals.
		if errors.Is(err, service.ErrAggregation) && measurement != nil {
			h.log.Error().Err(err).Str("area_id", areaID).Msg("aggregation failed after insert")
			c.JSON(http.StatusCreated, gin.H{
				"data":    measurement,
				"warning": "measurement stored, but aggregate refresh failed; re-run recompute",
			})
			return
		}
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(measurement))
}

func (h *Handler) listMeasurements(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	areaID := strings.TrimSpace(c.Param("id"))
	if areaID == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid area id"))
		return
	}

	measurements, err := h.measurementService.ListByArea(c.Request.Context(), principal, areaID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(measurements))
}

func (h *Handler) recomputeArea(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	areaID := strings.TrimSpace(c.Param("id"))
	if areaID == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid area id"))
		return
	}

	area, err := h.aggregationService.Recompute(c.Request.Context(), principal, areaID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(area))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrDeviceMismatch):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPositionOutside),
		errors.Is(err, service.ErrAreaNotConfirmed):
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
	case errors.Is(err, service.ErrAggregation):
		h.log.Error().Err(err).Msg("aggregation error")
		c.JSON(http.StatusInternalServerError, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
