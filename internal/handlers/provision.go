package handlers

import (
	"net/http"

	"thermostat_controller"

	"github.com/gin-gonic/gin"
)

const errSaveCredentials = "failed to save credentials"

// provisionPage is the captive-portal form served at the access point root.
// Kept inline: the device has no filesystem assets to serve.
const provisionPage = `<!DOCTYPE html>
<html>
<head><title>Thermostat Setup</title></head>
<body>
<h1>Thermostat Setup</h1>
<p>Enter your Wi-Fi network details. The device restarts after saving.</p>
<form method="POST" action="/provision">
  <label>Network name <input name="ssid" required></label><br>
  <label>Password <input name="password" type="password"></label><br>
  <button type="submit">Save and restart</button>
</form>
</body>
</html>`

// Request DTO for provisioning. Accepts both the portal form post and JSON.
type provisionRequest struct {
	SSID     string `json:"ssid" form:"ssid" binding:"required"`
	Password string `json:"password" form:"password"`
}

// @Summary      Setup portal
// @Tags         provisioning
// @Produce      html
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) provisionForm(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(provisionPage))
}

// @Summary      Save network credentials
// @Description  Persists the Wi-Fi credentials and schedules a restart. The device leaves provisioning only across that restart.
// @Tags         provisioning
// @Accept       json
// @Produce      json
// @Param        body  body   provisionRequest  true  "Credentials payload"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /provision [post]
func (h *Handler) provision(c *gin.Context) {
	var req provisionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	creds := thermostat_controller.WiFiCredentials{SSID: req.SSID, Password: req.Password}
	if err := h.services.Credentials.Save(ctx, creds); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveCredentials, "provision_save_failed", err, "ssid", req.SSID)
		return
	}
	h.services.Runtime.RequestRestart()
	c.JSON(http.StatusAccepted, gin.H{"status": "restarting"})
}
