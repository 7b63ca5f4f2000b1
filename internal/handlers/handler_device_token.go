package handlers

import (
	"net/http"

	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/gin-gonic/gin"
)

type deviceTokenHandler struct {
	deviceTokenService portssvc.DeviceTokenSvcFacade
}

func registerDeviceTokenRoutes(rg *gin.RouterGroup, deviceTokenService portssvc.DeviceTokenSvcFacade) {
	h := &deviceTokenHandler{deviceTokenService: deviceTokenService}

	tokens := rg.Group("/device-tokens")
	{
		tokens.POST("", h.registerToken)
		tokens.GET("", h.listTokens)
		tokens.DELETE("/:token", h.unregisterToken)
	}
}

// registerToken godoc
// @Summary Register a push token for the caller
// @Tags device-tokens
// @Accept  json
// @Produce  json
// @Param   token body dto.RegisterDeviceTokenRequest true "Token"
// @Success 200 {object} Response{data=dto.DeviceTokenResponse}
// @Security BearerAuth
// @Router /device-tokens [post]
func (h *deviceTokenHandler) registerToken(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.RegisterDeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	t, err := h.deviceTokenService.RegisterDeviceToken(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToDeviceTokenResponse(t), "Device token registered")
}

// listTokens godoc
// @Summary List the caller's push tokens
// @Tags device-tokens
// @Produce  json
// @Success 200 {object} Response{data=[]dto.DeviceTokenResponse}
// @Security BearerAuth
// @Router /device-tokens [get]
func (h *deviceTokenHandler) listTokens(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	list, err := h.deviceTokenService.ListDeviceTokens(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.DeviceTokenResponse, len(list))
	for i := range list {
		out[i] = dto.ToDeviceTokenResponse(&list[i])
	}
	respondOK(c, http.StatusOK, out, "")
}

// unregisterToken godoc
// @Summary Remove a push token of the caller
// @Tags device-tokens
// @Param   token path string true "Token"
// @Success 204 "No Content"
// @Failure 404 {object} Response "Token not registered for the caller"
// @Security BearerAuth
// @Router /device-tokens/{token} [delete]
func (h *deviceTokenHandler) unregisterToken(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.deviceTokenService.UnregisterDeviceToken(c.Request.Context(), actor, c.Param("token")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
