package handlers

import (
	"net/http"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/dto"
	"github.com/dalpho/currency_exchange_app/internal/middleware"
	"github.com/dalpho/currency_exchange_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to quotes. The currency
// and user readers eager-load pair and agent details into responses.
type exchangeRateHandler struct {
	rateService     portssvc.ExchangeRateSvcFacade
	currencyService portssvc.CurrencySvcReader
	userService     portssvc.UserSvcReader
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade, cs portssvc.CurrencySvcReader, us portssvc.UserSvcReader) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs, currencyService: cs, userService: us}
}

// registerExchangeRateRoutes registers routes related to quotes. Reads are
// open to any authenticated user; publishing and revising require staff.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade, currencyService portssvc.CurrencySvcReader, userService portssvc.UserSvcReader) {
	h := newExchangeRateHandler(rateService, currencyService, userService)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/current/all", h.listCurrentRates)
		rates.GET("/current/:from/:to", h.getCurrentRate)
		rates.POST("/convert", h.convert)
		rates.GET("/:id", h.getRateByID)

		staff := rates.Group("", middleware.RequireStaff())
		{
			staff.POST("", h.createRate)
			staff.POST("/store", h.createRate)
			staff.PUT("/:id", h.updateRate)
			staff.PATCH("/:id", h.updateRate)
			staff.DELETE("/:id", h.deleteRate)
		}
	}
}

// detailedResponse fills the nested currency and agent details of a quote
// response. Lookups are best effort; a missing detail leaves the field nil.
func (h *exchangeRateHandler) detailedResponse(c *gin.Context, rate *domain.ExchangeRate) dto.ExchangeRateResponse {
	resp := dto.ToExchangeRateResponse(rate)
	ctx := c.Request.Context()
	if from, err := h.currencyService.GetCurrencyByID(ctx, rate.FromCurrencyID); err == nil {
		fromResp := dto.ToCurrencyResponse(from)
		resp.FromCurrency = &fromResp
	}
	if to, err := h.currencyService.GetCurrencyByID(ctx, rate.ToCurrencyID); err == nil {
		toResp := dto.ToCurrencyResponse(to)
		resp.ToCurrency = &toResp
	}
	if agent, err := h.userService.GetUserByID(ctx, rate.AgentID); err == nil {
		agentResp := dto.ToUserResponse(agent)
		resp.Agent = &agentResp
	}
	return resp
}

// createRate godoc
// @Summary Publish a new quote
// @Description Creates a quote for a pair. The pair's previous current quote is demoted and a creation entry is written to the ledger.
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param rate body dto.CreateExchangeRateRequest true "Quote details"
// @Success 201 {object} APIResponse{data=dto.ExchangeRateResponse}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 422 {object} APIResponse
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createRate(c *gin.Context) {
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	agentID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	rate, err := h.rateService.CreateExchangeRate(c.Request.Context(), agentID, req)
	if err != nil {
		respondError(c, err, "Failed to create exchange rate")
		return
	}

	respondSuccess(c, http.StatusCreated, "Exchange rate created", h.detailedResponse(c, rate))
}

// updateRate godoc
// @Summary Revise a quote
// @Description Updates a quote in place. A changed rate recomputes the derived statistics and appends a ledger entry; an unchanged rate appends nothing.
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param id path string true "Exchange rate ID"
// @Param rate body dto.UpdateExchangeRateRequest true "Fields to update"
// @Success 200 {object} APIResponse{data=dto.ExchangeRateResponse}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /exchange-rates/{id} [put]
func (h *exchangeRateHandler) updateRate(c *gin.Context) {
	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	agentID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	rate, err := h.rateService.UpdateExchangeRate(c.Request.Context(), agentID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update exchange rate")
		return
	}

	respondSuccess(c, http.StatusOK, "Exchange rate updated", dto.ToExchangeRateResponse(rate))
}

// deleteRate godoc
// @Summary Delete a quote
// @Description Removes a quote. Its ledger entries survive.
// @Tags exchange-rates
// @Produce json
// @Param id path string true "Exchange rate ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /exchange-rates/{id} [delete]
func (h *exchangeRateHandler) deleteRate(c *gin.Context) {
	agentID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	if err := h.rateService.DeleteExchangeRate(c.Request.Context(), agentID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete exchange rate")
		return
	}

	respondSuccess(c, http.StatusOK, "Exchange rate deleted", nil)
}

// getRateByID godoc
// @Summary Get a quote
// @Description Retrieves a quote with its derived statistics.
// @Tags exchange-rates
// @Produce json
// @Param id path string true "Exchange rate ID"
// @Success 200 {object} APIResponse{data=dto.ExchangeRateResponse}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /exchange-rates/{id} [get]
func (h *exchangeRateHandler) getRateByID(c *gin.Context) {
	rate, err := h.rateService.GetExchangeRateByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve exchange rate")
		return
	}
	respondSuccess(c, http.StatusOK, "Exchange rate retrieved", h.detailedResponse(c, rate))
}

// getCurrentRate godoc
// @Summary Get the current quote for a pair
// @Description Retrieves the effective current quote for a pair of currency codes.
// @Tags exchange-rates
// @Produce json
// @Param from path string true "From currency code"
// @Param to path string true "To currency code"
// @Success 200 {object} APIResponse{data=dto.ExchangeRateResponse}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /exchange-rates/current/{from}/{to} [get]
func (h *exchangeRateHandler) getCurrentRate(c *gin.Context) {
	rate, err := h.rateService.GetCurrentRate(c.Request.Context(), c.Param("from"), c.Param("to"))
	if err != nil {
		respondError(c, err, "Failed to retrieve current rate")
		return
	}
	respondSuccess(c, http.StatusOK, "Current rate retrieved", dto.ToExchangeRateResponse(rate))
}

// listCurrentRates godoc
// @Summary List current quotes
// @Description Retrieves the current quote of every pair.
// @Tags exchange-rates
// @Produce json
// @Success 200 {object} APIResponse{data=[]dto.ExchangeRateResponse}
// @Security BearerAuth
// @Router /exchange-rates/current/all [get]
func (h *exchangeRateHandler) listCurrentRates(c *gin.Context) {
	rates, err := h.rateService.ListCurrentRates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list current rates")
		return
	}
	respondSuccess(c, http.StatusOK, "Current rates retrieved", dto.ToListExchangeRateResponse(rates))
}

// listRates godoc
// @Summary List quotes
// @Description Retrieves a filtered, paginated list of quotes, newest effective date first.
// @Tags exchange-rates
// @Produce json
// @Param from query string false "Filter by from currency ID"
// @Param to query string false "Filter by to currency ID"
// @Param agent query string false "Filter by agent ID"
// @Param current query bool false "Only current quotes"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} APIResponse{data=dto.ListExchangeRatesResponse}
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	filter := portsrepo.ListRatesFilter{}
	if v := c.Query("from"); v != "" {
		filter.FromCurrencyID = &v
	}
	if v := c.Query("to"); v != "" {
		filter.ToCurrencyID = &v
	}
	if v := c.Query("agent"); v != "" {
		filter.AgentID = &v
	}
	filter.CurrentOnly = c.Query("current") == "true"

	page, pageSize := pageParams(c)

	rates, total, err := h.rateService.ListExchangeRates(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to list exchange rates")
		return
	}

	respondSuccess(c, http.StatusOK, "Exchange rates retrieved", dto.ListExchangeRatesResponse{
		Rates: dto.ToListExchangeRateResponse(rates),
		Pagination: dto.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	})
}

// convert godoc
// @Summary Convert an amount
// @Description Applies the current rate of the pair to an amount. The converted amount is display-rounded to two decimal places.
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param request body dto.ConvertRequest true "Conversion request"
// @Success 200 {object} APIResponse{data=dto.ConvertResponse}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /exchange-rates/convert [post]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, err := h.rateService.Convert(c.Request.Context(), req.Amount, req.FromCurrencyCode, req.ToCurrencyCode)
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}

	converted := result.ConvertedAmount.Round(2)
	respondSuccess(c, http.StatusOK, "Conversion successful", dto.ConvertResponse{
		Amount:          result.Amount,
		FromCurrency:    result.FromCurrency.Code,
		ToCurrency:      result.ToCurrency.Code,
		Rate:            result.Rate,
		ConvertedAmount: converted,
		Formatted:       utils.FormatAmount(result.ConvertedAmount, result.ToCurrency),
	})
}
