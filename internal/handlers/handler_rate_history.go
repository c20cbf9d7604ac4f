package handlers

import (
	"net/http"
	"strconv"

	portsrepo "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// rateHistoryHandler exposes the rate transition ledger.
type rateHistoryHandler struct {
	historyService  portssvc.RateHistorySvcFacade
	currencyService portssvc.CurrencySvcReader
}

// newRateHistoryHandler creates a new rateHistoryHandler.
func newRateHistoryHandler(hs portssvc.RateHistorySvcFacade, cs portssvc.CurrencySvcReader) *rateHistoryHandler {
	return &rateHistoryHandler{historyService: hs, currencyService: cs}
}

// registerRateHistoryRoutes registers the ledger routes.
func registerRateHistoryRoutes(rg *gin.RouterGroup, historyService portssvc.RateHistorySvcFacade, currencyService portssvc.CurrencySvcReader) {
	h := newRateHistoryHandler(historyService, currencyService)

	history := rg.Group("/exchange-rate-history")
	{
		history.GET("/pair/history", h.listByPair)
		history.GET("/agent/:agentID", h.listByAgent)
		history.GET("/recent/all", h.listRecent)
		history.GET("/stats/all", h.getStats)
		history.GET("/:rateID", h.listByRate)
	}
}

// pageParams reads and clamps the page query parameters. The clamped values
// are both passed to the service and echoed in the response, so the reported
// pagination always matches the rows returned.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func (h *rateHistoryHandler) respondPage(c *gin.Context, entries []dto.RateHistoryResponse, page, pageSize, total int) {
	respondSuccess(c, http.StatusOK, "History retrieved", dto.ListRateHistoryResponse{
		History: entries,
		Pagination: dto.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	})
}

// listByRate godoc
// @Summary Ledger of one quote
// @Description Retrieves the transition ledger of a single quote, most recent first. The oldest entry is the creation entry with a null old rate.
// @Tags exchange-rate-history
// @Produce json
// @Param rateID path string true "Exchange rate ID"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} APIResponse{data=dto.ListRateHistoryResponse}
// @Security BearerAuth
// @Router /exchange-rate-history/{rateID} [get]
func (h *rateHistoryHandler) listByRate(c *gin.Context) {
	page, pageSize := pageParams(c)
	entries, total, err := h.historyService.ListHistoryByRate(c.Request.Context(), c.Param("rateID"), page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to retrieve history")
		return
	}
	h.respondPage(c, dto.ToListRateHistoryResponse(entries), page, pageSize, total)
}

// listByPair godoc
// @Summary Ledger of a currency pair
// @Description Retrieves ledger entries for a currency pair over the last days, most recent first.
// @Tags exchange-rate-history
// @Produce json
// @Param from query string true "From currency code"
// @Param to query string true "To currency code"
// @Param days query int false "Look-back window in days (default 30)"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} APIResponse{data=dto.ListRateHistoryResponse}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /exchange-rate-history/pair/history [get]
func (h *rateHistoryHandler) listByPair(c *gin.Context) {
	fromCode := c.Query("from")
	toCode := c.Query("to")
	if fromCode == "" || toCode == "" {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "Query parameters 'from' and 'to' are required"})
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	page, pageSize := pageParams(c)
	entries, total, err := h.historyService.ListHistoryByPair(c.Request.Context(), fromCode, toCode, days, page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to retrieve pair history")
		return
	}
	h.respondPage(c, dto.ToListRateHistoryResponse(entries), page, pageSize, total)
}

// listByAgent godoc
// @Summary Ledger entries by agent
// @Description Retrieves ledger entries recorded by one agent, most recent first.
// @Tags exchange-rate-history
// @Produce json
// @Param agentID path string true "Agent user ID"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} APIResponse{data=dto.ListRateHistoryResponse}
// @Security BearerAuth
// @Router /exchange-rate-history/agent/{agentID} [get]
func (h *rateHistoryHandler) listByAgent(c *gin.Context) {
	page, pageSize := pageParams(c)
	entries, total, err := h.historyService.ListHistoryByAgent(c.Request.Context(), c.Param("agentID"), page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to retrieve agent history")
		return
	}
	h.respondPage(c, dto.ToListRateHistoryResponse(entries), page, pageSize, total)
}

// listRecent godoc
// @Summary Recent ledger entries
// @Description Retrieves entries across all pairs over the last days, most recent first.
// @Tags exchange-rate-history
// @Produce json
// @Param days query int false "Look-back window in days (default 30)"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} APIResponse{data=dto.ListRateHistoryResponse}
// @Security BearerAuth
// @Router /exchange-rate-history/recent/all [get]
func (h *rateHistoryHandler) listRecent(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	page, pageSize := pageParams(c)
	entries, total, err := h.historyService.ListRecentHistory(c.Request.Context(), days, page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to retrieve recent history")
		return
	}
	h.respondPage(c, dto.ToListRateHistoryResponse(entries), page, pageSize, total)
}

// getStats godoc
// @Summary Ledger statistics
// @Description Aggregates the filtered ledger slice: change count, average/min/max rates and total variation.
// @Tags exchange-rate-history
// @Produce json
// @Param from query string false "From currency code (with 'to' filters to one pair)"
// @Param to query string false "To currency code"
// @Param days query int false "Look-back window in days (0 = all)"
// @Success 200 {object} APIResponse{data=dto.HistoryStatsResponse}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /exchange-rate-history/stats/all [get]
func (h *rateHistoryHandler) getStats(c *gin.Context) {
	filter := portsrepo.HistoryStatsFilter{}
	filter.Days, _ = strconv.Atoi(c.DefaultQuery("days", "0"))

	fromCode := c.Query("from")
	toCode := c.Query("to")
	if fromCode != "" && toCode != "" {
		from, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), fromCode)
		if err != nil {
			respondError(c, err, "Failed to resolve 'from' currency")
			return
		}
		to, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), toCode)
		if err != nil {
			respondError(c, err, "Failed to resolve 'to' currency")
			return
		}
		filter.FromCurrencyID = from.CurrencyID
		filter.ToCurrencyID = to.CurrencyID
	}

	stats, err := h.historyService.GetHistoryStats(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to compute history stats")
		return
	}

	respondSuccess(c, http.StatusOK, "History stats computed", dto.ToHistoryStatsResponse(*stats))
}
