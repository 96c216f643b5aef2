package dto

// QuoteQuery is the query string of GET /order/price.
type QuoteQuery struct {
	Distance *float64 `form:"distance" validate:"required,gte=0"`
	Urgent   bool     `form:"urgent"`
}

// RangeResponse describes a price bracket. Max is null for the open-ended range.
type RangeResponse struct {
	Min     float64  `json:"min"`
	Max     *float64 `json:"max"`
	Regular float64  `json:"regular"`
	Urgent  float64  `json:"urgent"`
}

// QuoteResponse is a price preview.
type QuoteResponse struct {
	Distance float64        `json:"distance"`
	IsUrgent bool           `json:"isUrgent"`
	Price    float64        `json:"price"`
	Range    *RangeResponse `json:"range"`
}
