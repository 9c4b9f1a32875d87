package domain

import "time"

// Platform identifies the host that ran the checks.
type Platform struct {
	System    string `json:"system"`
	Release   string `json:"release"`
	GoVersion string `json:"go_version"`
}

// Report is the exported document of one run.
type Report struct {
	Timestamp time.Time     `json:"timestamp"`
	Platform  Platform      `json:"platform"`
	Summary   Summary       `json:"summary"`
	Results   []CheckResult `json:"results"`
	Config    Config        `json:"config"`
}

// NewReport assembles the export document.
func NewReport(now time.Time, platform Platform, results []CheckResult, cfg Config) Report {
	if results == nil {
		results = []CheckResult{}
	}
	return Report{
		Timestamp: now,
		Platform:  platform,
		Summary:   Summarize(results),
		Results:   results,
		Config:    cfg.Clone(),
	}
}
