package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/dzstore/internal/service"
)

type AdminSettingsHandler struct {
	settings SettingsServicer
}

func NewAdminSettingsHandler(settings SettingsServicer) *AdminSettingsHandler {
	return &AdminSettingsHandler{settings: settings}
}

// Show GET AdminGroup + AdminSettingsRoute.
func (h *AdminSettingsHandler) Show(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	settings, err := h.settings.Snapshot(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSettingsResponse(settings))
}

// UpdateSettingsParams leaves omitted switches unchanged.
type UpdateSettingsParams struct {
	AutoDelivery *bool `json:"auto_delivery"`
	StoreEnabled *bool `json:"store_enabled"`
}

// Update PUT AdminGroup + AdminSettingsRoute.
func (h *AdminSettingsHandler) Update(c *gin.Context) {
	var params UpdateSettingsParams
	if !bindJSON(c, &params) {
		return
	}
	if params.AutoDelivery == nil && params.StoreEnabled == nil {
		_ = c.AbortWithError(http.StatusUnprocessableEntity, errors.New("nothing to update")).
			SetType(gin.ErrorTypePublic)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	settings, err := h.settings.Update(ctx, service.UpdateSettingsArgs{
		AutoDelivery: params.AutoDelivery,
		StoreEnabled: params.StoreEnabled,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSettingsResponse(settings))
}
