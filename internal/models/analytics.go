package models

import "time"

// CarAnalytics holds the counters tracked for a single car.
type CarAnalytics struct {
	Views      int        `json:"views"`
	Inquiries  int        `json:"inquiries"`
	LastViewed *time.Time `json:"lastViewed,omitempty"`
}

// AnalyticsData is the full durable counter state: per-car counters plus the
// site-wide totals. Counters only ever grow, except through an explicit reset.
type AnalyticsData struct {
	Cars           map[string]CarAnalytics `json:"cars"`
	TotalViews     int                     `json:"totalViews"`
	TotalInquiries int                     `json:"totalInquiries"`
	SiteVisits     int                     `json:"siteVisits"`
}

// NewAnalyticsData returns an empty counter state.
func NewAnalyticsData() AnalyticsData {
	return AnalyticsData{Cars: make(map[string]CarAnalytics)}
}

// ViewCount is one entry of the top-viewed ranking.
type ViewCount struct {
	CarID string `json:"carId"`
	Views int    `json:"views"`
}

// InquiryCount is one entry of the top-inquired ranking.
type InquiryCount struct {
	CarID     string `json:"carId"`
	Inquiries int    `json:"inquiries"`
}
