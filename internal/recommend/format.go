// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

// FormatTable writes recommendations as a human-readable table to w.
func FormatTable(recs []types.Recommendation, w io.Writer) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No recommendations.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-20s  %-4s  %-5s  %s\n",
		"Rank", "Title", "Authors", "Year", "Score", "Reason")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range recs {
		year := ""
		if r.Year != nil {
			year = fmt.Sprintf("%d", *r.Year)
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-20s  %-4s  %-5.2f  %s\n",
			i+1, truncate(r.Title, 50), formatAuthors(r.Authors), year, r.Score, r.Reason)
	}

	fmt.Fprintf(w, "\n%d recommendations\n", len(recs))
}

// FormatJSON writes recommendations as indented JSON to w.
func FormatJSON(recs []types.Recommendation, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}
