package model

// PriceSource records which price path produced a valuation line.
type PriceSource string

const (
	// PriceSourceLive means the latest close from the quote feed was used.
	PriceSourceLive PriceSource = "live"

	// PriceSourceManual means the stored manual price was used, either
	// because the position is MANUAL-tracked or because the live fetch
	// failed and the line degraded.
	PriceSourceManual PriceSource = "manual"
)

// PositionValuation is the per-position result of a valuation cycle.
// All monetary values are normalized to the reporting currency (TWD).
// It is derived data: recomputed every refresh, never persisted.
type PositionValuation struct {
	Position     Position    `json:"position"`
	CurrentPrice float64     `json:"currentPrice"` // in the position's own currency
	PriceSource  PriceSource `json:"priceSource"`
	Degraded     bool        `json:"degraded"` // AUTO position that fell back to its manual price
	MarketValue  float64     `json:"marketValue"`
	CostValue    float64     `json:"costValue"`
	Profit       float64     `json:"profit"`
	ReturnPct    float64     `json:"returnPct"` // 0 when CostValue is 0, never NaN/Inf
}

// PortfolioSummary aggregates all valuation lines of one cycle.
// Sums are commutative, so the summary is independent of the order in
// which individual positions were valued.
type PortfolioSummary struct {
	TotalMarketValue float64 `json:"totalMarketValue"`
	TotalCostValue   float64 `json:"totalCostValue"`
	TotalProfit      float64 `json:"totalProfit"`
	ReturnPct        float64 `json:"returnPct"`
}

// ValuationReport is the full output of one refresh cycle.
type ValuationReport struct {
	Lines   []PositionValuation `json:"lines"`
	Summary PortfolioSummary    `json:"summary"`
	USDRate float64             `json:"usdRate"` // USD→TWD rate applied this cycle
}
