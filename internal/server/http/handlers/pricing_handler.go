package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/polkiloo/courierdesk/internal/domain/pricing"
	"github.com/polkiloo/courierdesk/internal/server/http/dto"
	"github.com/polkiloo/courierdesk/internal/server/http/validation"
)

// PricingHandler serves the price preview endpoints.
type PricingHandler struct {
	facade   PricingFacade
	validate *validatorv10.Validate
}

// NewPricingHandler constructs PricingHandler.
func NewPricingHandler(facade PricingFacade, validate *validatorv10.Validate) *PricingHandler {
	return &PricingHandler{facade: facade, validate: validate}
}

// Quote handles GET /order/price.
func (h *PricingHandler) Quote(c *gin.Context) {
	var q dto.QuoteQuery
	if err := validation.BindQueryAndValidate(c, &q, h.validate); err != nil {
		return
	}

	quote, err := h.facade.Quote(*q.Distance, q.Urgent)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := dto.QuoteResponse{
		Distance: quote.Distance,
		IsUrgent: quote.IsUrgent,
		Price:    quote.Price,
	}
	if quote.Range != nil {
		r := toRangeResponse(*quote.Range)
		resp.Range = &r
	}
	c.JSON(http.StatusOK, resp)
}

// Ranges handles GET /order/price/ranges.
func (h *PricingHandler) Ranges(c *gin.Context) {
	ranges := h.facade.PriceRanges()
	response := make([]dto.RangeResponse, 0, len(ranges))
	for _, r := range ranges {
		response = append(response, toRangeResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

func toRangeResponse(r pricing.Range) dto.RangeResponse {
	resp := dto.RangeResponse{Min: r.Min, Regular: r.Regular, Urgent: r.Urgent}
	if !r.Unbounded() {
		upper := r.Max
		resp.Max = &upper
	}
	return resp
}
