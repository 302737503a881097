package importer

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/bibtex"
)

// MatchThreshold is the minimum similarity score for a PDF filename to be
// bound to an entry. Chosen to avoid false positives on short or generic
// titles; matching below it leaves the entry without a file.
const MatchThreshold = 0.6

// PDFCandidate is one file enumerated from the uploaded ZIP archive.
type PDFCandidate struct {
	Filename        string // original basename, including extension
	NormalizedTitle string // derived: extension, punctuation and casing stripped
}

// NewPDFCandidate builds a candidate from a filename.
func NewPDFCandidate(filename string) PDFCandidate {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return PDFCandidate{
		Filename:        filename,
		NormalizedTitle: normalizeTitle(base),
	}
}

// MatchResult pairs one importable entry with its best-fitting PDF, if any.
type MatchResult struct {
	Entry       bibtex.Entry
	MatchedFile string  // empty when no candidate cleared the threshold
	Score       float64 // 0..1
}

// MatchPDFs assigns candidates to entries greedily: entries are processed in
// document order and each takes the unmatched candidate with the highest
// score at or above MatchThreshold, ties broken by earliest position in the
// archive's file list. A candidate matched to one entry is removed from the
// pool, so no file binds to two entries. The assignment is deterministic but
// deliberately not globally optimal.
func MatchPDFs(entries []bibtex.Entry, candidates []PDFCandidate) []MatchResult {
	results := make([]MatchResult, 0, len(entries))
	taken := make([]bool, len(candidates))

	for _, entry := range entries {
		title := normalizeTitle(entry.Title)

		best := -1
		bestScore := 0.0
		for i, cand := range candidates {
			if taken[i] {
				continue
			}
			score := similarity(title, cand.NormalizedTitle)
			if score >= MatchThreshold && score > bestScore {
				best = i
				bestScore = score
			}
		}

		result := MatchResult{Entry: entry}
		if best >= 0 {
			taken[best] = true
			result.MatchedFile = candidates[best].Filename
			result.Score = bestScore
		}
		results = append(results, result)
	}

	return results
}

// normalizeTitle lowercases, maps punctuation to spaces, collapses runs of
// whitespace and trims. Entry titles and candidate filenames go through the
// same normalization so they compare fairly.
func normalizeTitle(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// similarity scores a normalized (title, filename) pair. Full containment in
// either direction scores 1.0; otherwise the score is the fraction of the
// title's significant words (longer than 2 characters) found as whole words
// in the filename.
func similarity(title, filename string) float64 {
	if title == "" || filename == "" {
		return 0
	}

	if title == filename || strings.Contains(filename, title) || strings.Contains(title, filename) {
		return 1.0
	}

	fileWords := make(map[string]bool)
	for _, w := range strings.Fields(filename) {
		fileWords[w] = true
	}

	significant := 0
	found := 0
	for _, w := range strings.Fields(title) {
		if len(w) <= 2 {
			continue
		}
		significant++
		if fileWords[w] {
			found++
		}
	}
	if significant == 0 {
		return 0
	}
	return float64(found) / float64(significant)
}
