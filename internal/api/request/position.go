package request

// CreatePositionRequest is the body of POST /api/positions. Symbol is
// the raw user-entered ticker, normalized server-side. Currency and
// trackingMode are optional: an empty currency is classified from the
// ticker, an empty tracking mode defaults to AUTO.
type CreatePositionRequest struct {
	Symbol       string  `json:"symbol"`
	DisplayName  string  `json:"displayName"`
	CostBasis    float64 `json:"costBasis"`
	Quantity     int64   `json:"quantity"`
	Currency     string  `json:"currency"`
	TrackingMode string  `json:"trackingMode"`
	ManualPrice  float64 `json:"manualPrice"`
}

// UpdateManualPriceRequest is the body of PUT /api/positions/{symbol}/price.
type UpdateManualPriceRequest struct {
	Price float64 `json:"price"`
}
