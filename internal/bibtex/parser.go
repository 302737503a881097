// Package bibtex parses BibTeX documents into structured entries.
//
// The parser is intentionally forgiving: a malformed block is dropped and
// scanning resumes at the next top-level '@', so one broken entry never
// aborts the rest of the document.
package bibtex

import (
	"strconv"
	"strings"
)

// EntryType classifies a BibTeX block. Unrecognized types map to EntryTypeOther.
type EntryType string

const (
	EntryTypeArticle       EntryType = "article"
	EntryTypeInProceedings EntryType = "inproceedings"
	EntryTypeBook          EntryType = "book"
	EntryTypeOther         EntryType = "other"
)

// Entry is one bibliographic record parsed from the source document.
// It is immutable after parsing.
type Entry struct {
	CitationKey string
	Type        EntryType
	Title       string
	Authors     []string
	Year        int
	Abstract    string
	URL         string

	// Extra holds recognized-but-untyped fields (booktitle, journal, pages,
	// ...) keyed by lowercased field name.
	Extra map[string]string

	// Raw is the original @type{...} block, kept so imported articles can
	// store their BibTeX source verbatim.
	Raw string
}

// Parser parses BibTeX documents.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse scans the document for top-level @type{...} blocks and returns the
// entries in document order. Empty input or input without any '@' block
// yields an empty slice, not an error. Blocks with unbalanced braces are
// skipped.
func (p *Parser) Parse(src string) []Entry {
	var entries []Entry

	i := 0
	for i < len(src) {
		at := strings.IndexByte(src[i:], '@')
		if at < 0 {
			break
		}
		start := i + at

		entry, next, ok := p.parseBlock(src, start)
		if ok {
			entries = append(entries, entry)
			i = next
		} else {
			// Malformed block: resume at the next '@'.
			i = start + 1
		}
	}

	return entries
}

// parseBlock parses one @type{...} block starting at src[start] == '@'.
// Returns the entry, the offset just past the block, and whether the block
// was well-formed.
func (p *Parser) parseBlock(src string, start int) (Entry, int, bool) {
	open := strings.IndexByte(src[start:], '{')
	if open < 0 {
		return Entry{}, 0, false
	}
	open += start

	entryType := strings.ToLower(strings.TrimSpace(src[start+1 : open]))
	if entryType == "" {
		return Entry{}, 0, false
	}

	// Find the matching close brace, respecting nested braces so a field
	// value containing {} does not terminate the block early.
	depth := 0
	end := -1
	for j := open; j < len(src); j++ {
		switch src[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = j
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		// Unbalanced braces: the block never closes.
		return Entry{}, 0, false
	}

	body := src[open+1 : end]
	key, fields := splitBody(body)

	entry := Entry{
		CitationKey: key,
		Type:        normalizeType(entryType),
		Extra:       map[string]string{},
		Raw:         src[start : end+1],
	}

	for _, f := range fields {
		name, value, ok := splitField(f)
		if !ok {
			continue
		}
		switch name {
		case "title":
			entry.Title = value
		case "author":
			entry.Authors = splitAuthors(value)
		case "year":
			if y, err := strconv.Atoi(value); err == nil {
				entry.Year = y
			}
		case "abstract":
			entry.Abstract = value
		case "url":
			entry.URL = value
		default:
			entry.Extra[name] = value
		}
	}

	return entry, end + 1, true
}

// splitBody separates the citation key from the field list. The key runs
// from the opening brace to the first top-level comma.
func splitBody(body string) (key string, fields []string) {
	parts := splitTopLevel(body)
	if len(parts) == 0 {
		return "", nil
	}
	return strings.TrimSpace(parts[0]), parts[1:]
}

// splitTopLevel splits on commas that are not inside braces.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// splitField parses a "name = value" pair. Field names are case-insensitive.
func splitField(s string) (name, value string, ok bool) {
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return "", "", false
	}
	name = strings.ToLower(strings.TrimSpace(s[:eq]))
	if name == "" {
		return "", "", false
	}
	value = stripDelimiters(strings.TrimSpace(s[eq+1:]))
	return name, value, true
}

// stripDelimiters removes one layer of enclosing braces or double quotes.
func stripDelimiters(s string) string {
	if len(s) >= 2 {
		if (s[0] == '{' && s[len(s)-1] == '}') || (s[0] == '"' && s[len(s)-1] == '"') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}

// splitAuthors splits an author field on the literal " and " separator
// (case-sensitive, per BibTeX convention) and trims each name.
func splitAuthors(s string) []string {
	var authors []string
	for _, part := range strings.Split(s, " and ") {
		name := strings.TrimSpace(part)
		if name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

func normalizeType(t string) EntryType {
	switch t {
	case "article":
		return EntryTypeArticle
	case "inproceedings":
		return EntryTypeInProceedings
	case "book":
		return EntryTypeBook
	default:
		return EntryTypeOther
	}
}
