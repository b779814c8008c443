package handlers

import (
	"net/http"

	"thermostat_controller"
	"thermostat_controller/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errGetStatus       = "failed to load status"
	errUpdateConfig    = "failed to update configuration"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for the configuration update. Both fields are optional;
// omitted fields keep their stored value.
type configRequest struct {
	SetpointC   *float64 `json:"setpoint_c,omitempty"`
	HysteresisC *float64 `json:"hysteresis_c,omitempty"`
}

// ConfigRequest is an exported model for the Swagger docs of the config
// payload.
type ConfigRequest struct {
	// Desired temperature in Celsius.
	SetpointC *float64 `json:"setpoint_c,omitempty" example:"21.5"`
	// Width of the deadband around the setpoint; values below 0.1 are raised
	// to 0.1.
	HysteresisC *float64 `json:"hysteresis_c,omitempty" example:"0.5"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get device status
// @Description  Current mode, configuration, latest temperature, heat state and recent history. A faulted sensor reads as null.
// @Tags         thermostat
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.Status(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetStatus, "status_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Update configuration
// @Description  Partial update: omitted fields keep their stored value. The change is durable before the response.
// @Tags         thermostat
// @Accept       json
// @Produce      json
// @Param        body  body   ConfigRequest  true  "Configuration payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/config [put]
func (h *Handler) putConfig(c *gin.Context) {
	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	cfg, err := h.services.Thermostat.Update(ctx, service.ConfigParams{
		SetpointC:   req.SetpointC,
		HysteresisC: req.HysteresisC,
		Source:      "api",
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errUpdateConfig, "config_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"setpoint_c":   cfg.SetpointC,
		"hysteresis_c": cfg.HysteresisC,
	})
}

// @Summary      Get temperature history
// @Description  Stored samples oldest first, up to the last two minutes at 1 Hz. Faulted samples are null.
// @Tags         thermostat
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, samples"
// @Router       /api/v1/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	raw := h.services.History.ReadOrdered()
	samples := make([]*float64, 0, len(raw))
	for _, v := range raw {
		if thermostat_controller.IsMissing(v) {
			samples = append(samples, nil)
			continue
		}
		s := v
		samples = append(samples, &s)
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(samples),
		"samples": samples,
	})
}
