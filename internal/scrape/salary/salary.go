// Package salary extracts numeric compensation ranges from free text.
//
// Patterns are tried in a fixed priority order; within a pattern the
// first match in the text wins. No match is the expected common case
// (it feeds the disclosure-rate metric), so a nil result is not an
// error.
package salary

import (
	"regexp"
	"strconv"
	"strings"

	"talentai-engine/internal/domain"
)

// Values below the floor are assumed to already be in thousands
// ("$180 - $220" means 180k-220k) and are scaled up.
const sanityFloor = 1000

var (
	reKiloRange = regexp.MustCompile(`\$(\d{1,3})\s*[kK]\s*(?:[-–—]|to)\s*\$?(\d{1,3})\s*[kK]`)
	reAbsRange  = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})+|\d{3,7})\s*(?:[-–—]|to)\s*\$?(\d{1,3}(?:,\d{3})+|\d{3,7})`)
	reKiloPlus  = regexp.MustCompile(`\$(\d{1,3})\s*[kK]\s*\+`)
	reKiloOnly  = regexp.MustCompile(`\$(\d{1,3})\s*[kK]`)
	reAbsOnly   = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})+)`)
)

// Parse returns the first salary range found in text, or nil.
// Ranges where min > max are a parse failure, not swapped.
func Parse(text string) *domain.SalaryRange {
	if text == "" {
		return nil
	}

	if m := reKiloRange.FindStringSubmatch(text); m != nil {
		return rangeFrom(atoi(m[1])*1000, atoi(m[2])*1000)
	}
	if m := reAbsRange.FindStringSubmatch(text); m != nil {
		return rangeFrom(normalize(atoi(m[1])), normalize(atoi(m[2])))
	}
	if m := reKiloPlus.FindStringSubmatch(text); m != nil {
		v := atoi(m[1]) * 1000
		return rangeFrom(v, v)
	}
	if m := reKiloOnly.FindStringSubmatch(text); m != nil {
		v := atoi(m[1]) * 1000
		return rangeFrom(v, v)
	}
	if m := reAbsOnly.FindStringSubmatch(text); m != nil {
		v := normalize(atoi(m[1]))
		return rangeFrom(v, v)
	}
	return nil
}

func rangeFrom(min, max int) *domain.SalaryRange {
	if min <= 0 || max <= 0 || min > max {
		return nil
	}
	return &domain.SalaryRange{Min: min, Max: max, Currency: "USD"}
}

func normalize(v int) int {
	if v > 0 && v < sanityFloor {
		return v * 1000
	}
	return v
}

func atoi(s string) int {
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
