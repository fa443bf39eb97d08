package scheduler

import (
	"sync/atomic"
	"time"

	validationdomain "github.com/smallbiznis/riasku/internal/validation/domain"
)

// LastReport is the outcome of the most recent scheduled scan.
type LastReport struct {
	RunID  string                  `json:"runId"`
	At     time.Time               `json:"at"`
	Report validationdomain.Report `json:"report"`
}

// ReportHolder publishes the latest scan result to the HTTP layer
// without re-scanning on every request.
type ReportHolder struct {
	current atomic.Value // holds LastReport
}

func NewReportHolder() *ReportHolder {
	return &ReportHolder{}
}

func (h *ReportHolder) Set(report LastReport) {
	h.current.Store(report)
}

// Get returns the latest report, or false when no scan has run yet.
func (h *ReportHolder) Get() (LastReport, bool) {
	value := h.current.Load()
	if value == nil {
		return LastReport{}, false
	}
	return value.(LastReport), true
}
