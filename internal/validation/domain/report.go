// Package domain defines the validation report returned by the data
// integrity scan. Findings are data, never errors: the validator reports,
// it does not fail.
package domain

import (
	"context"

	clientdomain "github.com/smallbiznis/riasku/internal/client/domain"
	invoicedomain "github.com/smallbiznis/riasku/internal/invoice/domain"
	projectdomain "github.com/smallbiznis/riasku/internal/project/domain"
)

// EntityIssues collects the findings for a single flagged record.
// Only records with at least one finding appear in a report, in the
// original collection order.
type EntityIssues struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// KindReport groups flagged records of one collection.
type KindReport struct {
	Flagged []EntityIssues `json:"errors"`
}

// Summary aggregates counts across the whole scan.
type Summary struct {
	TotalErrors   int  `json:"totalErrors"`
	TotalWarnings int  `json:"totalWarnings"`
	IsValid       bool `json:"isValid"`
	Clients       int  `json:"clients"`
	Projects      int  `json:"projects"`
	Invoices      int  `json:"invoices"`
}

// Report is the full result of one validation pass.
type Report struct {
	Summary  Summary    `json:"summary"`
	Clients  KindReport `json:"clients"`
	Projects KindReport `json:"projects"`
	Invoices KindReport `json:"invoices"`
}

// Service runs one synchronous, read-only validation pass over an
// in-memory snapshot. Nil collections are treated as empty.
type Service interface {
	Validate(ctx context.Context, clients []clientdomain.Client, projects []projectdomain.Project, invoices []invoicedomain.Invoice) Report
}
