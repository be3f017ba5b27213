package verify

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	strictMetricPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d+(?:[.,]\d+)?\s?%`),
		regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s?percent\b`),
		regexp.MustCompile(`[$€£¥]\s?\d[\d,.]*(?:\s?[kmb]\b|\s?(?:million|billion|thousand)\b)?`),
		regexp.MustCompile(`(?i)\b\d+(?:[.,]\d+)?x\b`),
		regexp.MustCompile(`(?i)\b\d[\d,.]*\+?\s?(?:k|m|million|thousand)?\s?(?:users|customers|clients|people|engineers|developers|members|employees|projects|hours|days|weeks|months|years|requests|transactions|servers|services|countries|markets|stores|teams|reports|leads|deals|accounts|downloads|students|patients|sales|releases|applications|sites)\b`),
		regexp.MustCompile(`(?i)#\d+\b`),
	}

	numberPattern = regexp.MustCompile(`\d[\d,.]*\d|\d`)
	yearPattern   = regexp.MustCompile(`^(?:19|20)\d\d$`)
)

// strictMetrics returns metric expressions with an explicit unit: percentages,
// currency, multipliers, counts of things and rankings.
func strictMetrics(text string) []string {
	var found []string
	for _, p := range strictMetricPatterns {
		for _, m := range p.FindAllString(text, -1) {
			found = append(found, strings.TrimSpace(m))
		}
	}
	return unique(found)
}

// metrics extends strictMetrics with bare numbers, ignoring calendar years.
func metrics(text string) []string {
	found := strictMetrics(text)
	for _, m := range numberPattern.FindAllString(text, -1) {
		if yearPattern.MatchString(m) {
			continue
		}
		found = append(found, m)
	}
	return unique(found)
}

// digits keeps only the digits of s.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// words splits text into lower-cased word tokens.
func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
}

func firstWord(text string) string {
	w := words(text)
	if len(w) == 0 {
		return ""
	}
	return strings.Trim(w[0], "'-")
}

func normalize(s string) string {
	return strings.Join(words(s), " ")
}

func unique(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok || item == "" {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func preview(items []string, limit int) string {
	if len(items) > limit {
		items = items[:limit]
	}
	return strings.Join(items, ", ")
}

func set(items ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[item] = struct{}{}
	}
	return out
}
