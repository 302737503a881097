package importer

import (
	"math"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

// SkippedArticle describes one entry the validator rejected.
type SkippedArticle struct {
	Title         string   `json:"title"`
	Reason        string   `json:"reason"`
	MissingFields []string `json:"missing_fields"`
}

// ProcessingError describes one entry the persistence layer rejected.
type ProcessingError struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// ReasonCount is one bucket of the skip-reason tally.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// Report is the batch-level result of one import run. It is built once at
// the end of the run and never mutated afterward.
type Report struct {
	BatchID       string
	Created       []entities.Article
	Skipped       []SkippedArticle
	Errors        []ProcessingError
	PDFFilesInZip int
	PDFsMatched   int
}

// TotalProcessed is the number of parsed entries, regardless of outcome.
func (r *Report) TotalProcessed() int {
	return len(r.Created) + len(r.Skipped) + len(r.Errors)
}

// SuccessRate is the created share of all processed entries as an integer
// percentage, rounded to the nearest whole number. Zero when nothing was
// processed.
func (r *Report) SuccessRate() int {
	total := r.TotalProcessed()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(len(r.Created)) / float64(total) * 100))
}

// SkippedBreakdown tallies skipped entries by their literal reason string.
func (r *Report) SkippedBreakdown() map[string]int {
	breakdown := make(map[string]int)
	for _, s := range r.Skipped {
		breakdown[s.Reason]++
	}
	return breakdown
}

// TopSkipReasons returns the skip-reason tally ordered by descending count,
// ties broken by first-seen order. This is an exact-string tally; similarly
// worded reasons are not merged.
func (r *Report) TopSkipReasons() []ReasonCount {
	counts := make(map[string]int)
	var order []string
	for _, s := range r.Skipped {
		if _, seen := counts[s.Reason]; !seen {
			order = append(order, s.Reason)
		}
		counts[s.Reason]++
	}

	reasons := make([]ReasonCount, 0, len(order))
	for _, reason := range order {
		reasons = append(reasons, ReasonCount{Reason: reason, Count: counts[reason]})
	}

	// Stable insertion sort keeps first-seen order among equal counts.
	for i := 1; i < len(reasons); i++ {
		for j := i; j > 0 && reasons[j].Count > reasons[j-1].Count; j-- {
			reasons[j], reasons[j-1] = reasons[j-1], reasons[j]
		}
	}

	return reasons
}
