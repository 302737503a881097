// Package importer implements the bulk BibTeX + PDF import pipeline:
// parse, validate, match PDFs, persist, report.
package importer

import (
	"strings"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/bibtex"
)

// Verdict classifies one entry after validation or persistence.
type Verdict string

const (
	// VerdictImportable means the entry has all required fields and may
	// proceed to matching and persistence.
	VerdictImportable Verdict = "importable"

	// VerdictSkipped means the entry is syntactically fine but missing
	// required semantic fields. Bad input, not a system error.
	VerdictSkipped Verdict = "skipped"

	// VerdictErrored is reserved for persistence failures. Validation never
	// produces it, so reports can tell bad input apart from system failures.
	VerdictErrored Verdict = "errored"
)

// ValidationOutcome is the per-entry verdict.
type ValidationOutcome struct {
	Entry         bibtex.Entry
	Verdict       Verdict
	MissingFields []string
	Reason        string
}

// ValidateEntry checks one parsed entry against the required-field policy:
// title is mandatory and the author list must be non-empty. Year, abstract
// and url are optional.
func ValidateEntry(entry bibtex.Entry) ValidationOutcome {
	var missing []string

	if strings.TrimSpace(entry.Title) == "" {
		missing = append(missing, "title")
	}
	if len(entry.Authors) == 0 {
		missing = append(missing, "authors")
	}

	if len(missing) > 0 {
		return ValidationOutcome{
			Entry:         entry,
			Verdict:       VerdictSkipped,
			MissingFields: missing,
			Reason:        "Missing required field(s): " + strings.Join(missing, ", "),
		}
	}

	return ValidationOutcome{Entry: entry, Verdict: VerdictImportable}
}
