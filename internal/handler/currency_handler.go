package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/service"
	"aimrealty.com/estateapi/pkg/response"
	"aimrealty.com/estateapi/pkg/validator"
)

type CurrencyHandler struct {
	currencyService service.CurrencyService
}

func NewCurrencyHandler(currencyService service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

func (h *CurrencyHandler) Rates(c *gin.Context) {
	rates, err := h.currencyService.Rates(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rates})
}

func (h *CurrencyHandler) Convert(c *gin.Context) {
	var query dto.ConvertQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.currencyService.Convert(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CurrencyHandler) SetRate(c *gin.Context) {
	var input dto.SetRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	rate, err := h.currencyService.SetRate(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rate)
}
