package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	portssvc "github.com/judeotine/SpendWise/internal/core/ports/services"
	"github.com/judeotine/SpendWise/internal/dto"
	"github.com/judeotine/SpendWise/internal/middleware"
	"github.com/judeotine/SpendWise/internal/utils"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler serves conversions and rate tables.
type exchangeRateHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newExchangeRateHandler(cs portssvc.CurrencySvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{currencyService: cs}
}

func registerExchangeRateRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newExchangeRateHandler(currencyService)

	rg.GET("/convert", h.convert)
	rg.GET("/rates/:base", h.getRates)
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Never fails on missing rates; the tier field tells which fallback produced the result
// @Tags rates
// @Produce  json
// @Param   amount query string true "Amount to convert"
// @Param   from query string true "Source currency code"
// @Param   to query string false "Target currency code, defaults to the active currency"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: " + err.Error()})
		return
	}

	value := amount.InexactFloat64()
	if math.IsInf(value, 0) || math.IsNaN(value) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: out of range"})
		return
	}

	conv := h.currencyService.ConvertBetween(c.Request.Context(), value, req.From, req.To)

	logger.Debug("Converted amount",
		slog.String("from", conv.From),
		slog.String("to", conv.To),
		slog.String("tier", string(conv.Tier)))
	c.JSON(http.StatusOK, dto.ToConversionResponse(conv, utils.FormatCurrency(conv.Result, conv.To)))
}

// getRates godoc
// @Summary Show the rate table served for a base currency
// @Tags rates
// @Produce  json
// @Param   base path string true "Base currency code" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.RatesResponse
// @Failure 400 {object} map[string]string "Invalid currency code"
// @Router /rates/{base} [get]
func (h *exchangeRateHandler) getRates(c *gin.Context) {
	base := strings.ToUpper(c.Param("base"))
	if !utils.IsCurrencyCode(base) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency code must be 3 letters"})
		return
	}

	table := h.currencyService.Rates(c.Request.Context(), base)
	c.JSON(http.StatusOK, dto.ToRatesResponse(base, table))
}
