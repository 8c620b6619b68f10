package service

import "context"

// RefreshJob is the scheduled cache-warming job. Running it executes a
// full valuation cycle, which pulls the exchange rate and every
// position's quote through their TTL caches so the next on-demand
// valuation request is served from warm data.
type RefreshJob struct {
	valuation *ValuationService
}

// NewRefreshJob creates a RefreshJob over the given valuation service.
func NewRefreshJob(valuation *ValuationService) *RefreshJob {
	return &RefreshJob{valuation: valuation}
}

// Name identifies the job in scheduler logs.
func (j *RefreshJob) Name() string {
	return "valuation-refresh"
}

// Run executes one valuation cycle, discarding the report.
func (j *RefreshJob) Run() error {
	_, err := j.valuation.Valuate(context.Background())
	return err
}
