package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/judeotine/SpendWise/internal/apperrors"
	portssvc "github.com/judeotine/SpendWise/internal/core/ports/services"
	"github.com/judeotine/SpendWise/internal/dto"
	"github.com/judeotine/SpendWise/internal/middleware"
	"github.com/judeotine/SpendWise/internal/utils"
	"golang.org/x/text/language"
)

// currencyHandler handles HTTP requests related to the active display currency.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
	}
}

// RegisterCurrencyRoutes registers the currency, conversion and rate routes on rg.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	registerValidators()
	h := newCurrencyHandler(currencyService)

	currency := rg.Group("/currency")
	{
		currency.GET("/active", h.getActiveCurrency)
		currency.PUT("/active", h.changeActiveCurrency)
		currency.GET("/detect", h.detectCurrency)
	}

	registerExchangeRateRoutes(rg, currencyService)
}

// getActiveCurrency godoc
// @Summary Get the active display currency
// @Tags currency
// @Produce  json
// @Success 200 {object} dto.ActiveCurrencyResponse
// @Router /currency/active [get]
func (h *currencyHandler) getActiveCurrency(c *gin.Context) {
	pref := h.currencyService.ActivePreference(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToActiveCurrencyResponse(pref, utils.CurrencySymbol(pref.Code)))
}

// changeActiveCurrency godoc
// @Summary Change the active display currency
// @Description Probes that amounts can be converted into the new currency before persisting it
// @Tags currency
// @Accept  json
// @Produce  json
// @Param   request body dto.ChangeCurrencyRequest true "New currency"
// @Success 200 {object} dto.ActiveCurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 503 {object} map[string]string "Exchange rates unavailable"
// @Failure 500 {object} map[string]string "Failed to change currency"
// @Router /currency/active [put]
func (h *currencyHandler) changeActiveCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ChangeCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("currency_code", req.CurrencyCode))
	logger.Info("Received request to change active currency")

	pref, err := h.currencyService.ChangeCurrency(c.Request.Context(), req.CurrencyCode)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error changing currency", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRatesUnavailable):
			logger.Warn("Currency change failed, rates unavailable")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Currency change failed, exchange rates unavailable"})
		default:
			logger.Error("Failed to change currency in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change currency"})
		}
		return
	}

	logger.Info("Active currency changed successfully")
	c.JSON(http.StatusOK, dto.ToActiveCurrencyResponse(*pref, utils.CurrencySymbol(pref.Code)))
}

// detectCurrency godoc
// @Summary Guess a currency from a locale
// @Description Uses the locale query parameter, or the first Accept-Language entry when it is absent
// @Tags currency
// @Produce  json
// @Param   locale query string false "BCP 47 locale, e.g. de-CH"
// @Success 200 {object} dto.DetectCurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /currency/detect [get]
func (h *currencyHandler) detectCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DetectCurrencyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for DetectCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	locale := req.Locale
	if locale == "" {
		if tags, _, err := language.ParseAcceptLanguage(c.GetHeader("Accept-Language")); err == nil && len(tags) > 0 {
			locale = tags[0].String()
		}
	}

	c.JSON(http.StatusOK, dto.DetectCurrencyResponse{
		Locale:       locale,
		CurrencyCode: utils.DetectCurrency(locale),
	})
}
