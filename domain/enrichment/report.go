package enrichment

import "gobayes/domain/core"

// Report is the outcome of testing one module
type Report struct {
	RunID       core.RunID   `json:"run_id"`
	Module      string       `json:"module"`
	Mode        Mode         `json:"mode"`
	Fingerprint core.Hash    `json:"index_fingerprint"`
	Rows        []TermResult `json:"rows"`
}

// Significant returns the rows with a p-value at or below alpha
func (r Report) Significant(alpha float64) []TermResult {
	var out []TermResult
	for _, row := range r.Rows {
		if row.PValue <= alpha {
			out = append(out, row)
		}
	}
	return out
}
