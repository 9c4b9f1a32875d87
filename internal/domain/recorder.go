package domain

// Summary counts results per status.
type Summary struct {
	Total    int `json:"total_checks"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
	Skipped  int `json:"skipped"`
}

// Summarize counts results per status.
func Summarize(results []CheckResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			s.Passed++
		case StatusFail:
			s.Failed++
		case StatusWarning:
			s.Warnings++
		case StatusSkip:
			s.Skipped++
		}
	}
	return s
}

// Verdict is the overall ecosystem state derived from a run.
type Verdict string

const (
	VerdictHealthy   Verdict = "healthy"
	VerdictDegraded  Verdict = "degraded"
	VerdictUnhealthy Verdict = "unhealthy"
)

// Verdict derives the overall state: any failure is unhealthy, any warning degraded.
func (s Summary) Verdict() Verdict {
	switch {
	case s.Failed > 0:
		return VerdictUnhealthy
	case s.Warnings > 0:
		return VerdictDegraded
	default:
		return VerdictHealthy
	}
}

// ExitCode is 0 exactly when nothing failed.
func (s Summary) ExitCode() int {
	if s.Failed > 0 {
		return 1
	}
	return 0
}

// Recorder is the append-only result log of one run. Insertion order is execution order.
type Recorder struct {
	results []CheckResult
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends results in the order given.
func (r *Recorder) Record(results ...CheckResult) {
	r.results = append(r.results, results...)
}

// Results returns a copy of the recorded results.
func (r *Recorder) Results() []CheckResult {
	out := make([]CheckResult, len(r.results))
	copy(out, r.results)
	return out
}

// Len reports how many results were recorded.
func (r *Recorder) Len() int {
	return len(r.results)
}

// Summary counts the recorded results.
func (r *Recorder) Summary() Summary {
	return Summarize(r.results)
}
