package handlers

import (
	"net/http"

	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/dto"
	"github.com/dalpho/currency_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to the currency catalog.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// registerCurrencyRoutes registers routes related to currencies. Reads are
// open to any authenticated user; writes require a staff role.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/active", h.listActiveCurrencies)
		currencies.GET("/base", h.getBaseCurrency)
		currencies.GET("/:id", h.getCurrencyByID)

		staff := currencies.Group("", middleware.RequireStaff())
		{
			staff.POST("", h.createCurrency)
			staff.PUT("/:id", h.updateCurrency)
			staff.POST("/:id/toggle-active", h.toggleCurrency)
			staff.DELETE("/:id", h.deleteCurrency)
		}
	}
}

// createCurrency godoc
// @Summary Create a new currency
// @Description Adds a currency to the catalog. Flagging it base demotes the previous base currency.
// @Tags currencies
// @Accept json
// @Produce json
// @Param currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} APIResponse{data=dto.CurrencyResponse}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, err, "Failed to create currency")
		return
	}

	respondSuccess(c, http.StatusCreated, "Currency created", dto.ToCurrencyResponse(currency))
}

// updateCurrency godoc
// @Summary Update a currency
// @Description Applies a partial update. Flagging the currency base demotes the previous base currency.
// @Tags currencies
// @Accept json
// @Produce json
// @Param id path string true "Currency ID"
// @Param currency body dto.UpdateCurrencyRequest true "Fields to update"
// @Success 200 {object} APIResponse{data=dto.CurrencyResponse}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /currencies/{id} [put]
func (h *currencyHandler) updateCurrency(c *gin.Context) {
	var req dto.UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	currency, err := h.currencyService.UpdateCurrency(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update currency")
		return
	}

	respondSuccess(c, http.StatusOK, "Currency updated", dto.ToCurrencyResponse(currency))
}

// toggleCurrency godoc
// @Summary Toggle currency availability
// @Description Flips the active flag on a currency. The base currency cannot be deactivated.
// @Tags currencies
// @Produce json
// @Param id path string true "Currency ID"
// @Success 200 {object} APIResponse{data=dto.CurrencyResponse}
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Security BearerAuth
// @Router /currencies/{id}/toggle-active [post]
func (h *currencyHandler) toggleCurrency(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	currency, err := h.currencyService.ToggleCurrencyActive(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to toggle currency")
		return
	}

	respondSuccess(c, http.StatusOK, "Currency toggled", dto.ToCurrencyResponse(currency))
}

// deleteCurrency godoc
// @Summary Delete a currency
// @Description Removes a currency that no exchange rate references. The base currency cannot be deleted.
// @Tags currencies
// @Produce json
// @Param id path string true "Currency ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Security BearerAuth
// @Router /currencies/{id} [delete]
func (h *currencyHandler) deleteCurrency(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	if err := h.currencyService.DeleteCurrency(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete currency")
		return
	}

	respondSuccess(c, http.StatusOK, "Currency deleted", nil)
}

// getCurrencyByID godoc
// @Summary Get a currency
// @Description Retrieves a currency by its ID.
// @Tags currencies
// @Produce json
// @Param id path string true "Currency ID"
// @Success 200 {object} APIResponse{data=dto.CurrencyResponse}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /currencies/{id} [get]
func (h *currencyHandler) getCurrencyByID(c *gin.Context) {
	currency, err := h.currencyService.GetCurrencyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve currency")
		return
	}
	respondSuccess(c, http.StatusOK, "Currency retrieved", dto.ToCurrencyResponse(currency))
}

// getBaseCurrency godoc
// @Summary Get the base currency
// @Description Retrieves the currency flagged as base, if one is set.
// @Tags currencies
// @Produce json
// @Success 200 {object} APIResponse{data=dto.CurrencyResponse}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /currencies/base [get]
func (h *currencyHandler) getBaseCurrency(c *gin.Context) {
	currency, err := h.currencyService.GetBaseCurrency(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve base currency")
		return
	}
	respondSuccess(c, http.StatusOK, "Base currency retrieved", dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List all currencies
// @Description Retrieves every currency, base currency first.
// @Tags currencies
// @Produce json
// @Success 200 {object} APIResponse{data=[]dto.CurrencyResponse}
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list currencies")
		return
	}
	respondSuccess(c, http.StatusOK, "Currencies retrieved", dto.ToListCurrencyResponse(currencies))
}

// listActiveCurrencies godoc
// @Summary List active currencies
// @Description Retrieves currencies available for quoting.
// @Tags currencies
// @Produce json
// @Success 200 {object} APIResponse{data=[]dto.CurrencyResponse}
// @Security BearerAuth
// @Router /currencies/active [get]
func (h *currencyHandler) listActiveCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListActiveCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list active currencies")
		return
	}
	respondSuccess(c, http.StatusOK, "Active currencies retrieved", dto.ToListCurrencyResponse(currencies))
}
