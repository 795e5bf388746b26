package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errGetState    = "failed to load machine state"
	errGetReadings = "failed to load readings"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
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

// @Summary      Latest machine state
// @Description  Last sampled reading, latest forecast and halt flag
// @Tags         machine
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/machine/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "machine_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Session summary
// @Description  Ticks completed so far, last reading, halt state and reason
// @Tags         machine
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/machine/summary [get]
// @Security     BearerAuth
func (h *Handler) getSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitor.Summary())
}

// @Summary      Audit readings
// @Description  Reads the durable CSV store back, in append order
// @Tags         machine
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, readings"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/readings [get]
// @Security     BearerAuth
func (h *Handler) getReadings(c *gin.Context) {
	readings, err := h.services.Audit.ListReadings()
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetReadings, "audit_readings_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"readings": readings,
	})
}
