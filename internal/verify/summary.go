package verify

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-scorer/internal/resume"
)

const (
	summaryMinLength = 150
	summaryMaxLength = 900

	summaryMinKeywords = 3
	minKeywordDensity  = 0.03
	maxKeywordDensity  = 0.35
)

var (
	firstPersonUpper = regexp.MustCompile(`\bI\b`)
	firstPersonOther = regexp.MustCompile(`(?i)\b(?:me|my|mine|myself|i'm|i've|i'll|i'd)\b`)
)

// atsKeywords is a profession-agnostic list of impact words, professional
// qualities and generic technical nouns.
var atsKeywords = set(
	"delivered", "achieved", "implemented", "developed", "managed", "led",
	"drove", "created", "designed", "optimized", "improved", "established",
	"built", "launched", "executed", "coordinated", "scaled", "automated",
	"experienced", "skilled", "proficient", "expert", "specialized",
	"certified", "qualified", "seasoned",
	"revenue", "growth", "efficiency", "performance", "results", "success",
	"innovation", "strategy", "leadership", "collaboration", "stakeholders",
	"customer", "customers", "quality", "compliance",
	"technology", "technologies", "system", "systems", "solution", "solutions",
	"platform", "platforms", "tools", "framework", "frameworks",
	"methodology", "methodologies", "agile", "cloud", "data", "analytics",
)

func summaryText(r *resume.Generated) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Summary)
}

func summaryLength(r *resume.Generated, _ *resume.OriginalInput) Result {
	s := summaryText(r)
	if s == "" {
		return fail("summary is empty")
	}

	n := utf8.RuneCountInString(s)
	switch {
	case n < summaryMinLength:
		return fail("summary is too short (%d characters); aim for %d to %d", n, summaryMinLength, summaryMaxLength)
	case n > summaryMaxLength:
		return fail("summary is too long (%d characters); keep it under %d", n, summaryMaxLength)
	}
	return pass("summary length is adequate (%d characters)", n)
}

func summaryNoFirstPerson(r *resume.Generated, _ *resume.OriginalInput) Result {
	s := summaryText(r)
	if s == "" {
		return fail("summary is empty")
	}

	found := append(firstPersonUpper.FindAllString(s, -1), firstPersonOther.FindAllString(s, -1)...)
	found = unique(found)
	if len(found) > 0 {
		return fail("summary is written in the first person; rewrite it with an implied subject").
			withEvidence(preview(found, 5))
	}
	return pass("summary avoids first-person pronouns")
}

func summaryMetrics(r *resume.Generated, _ *resume.OriginalInput) Result {
	s := summaryText(r)
	if s == "" {
		return fail("summary is empty")
	}

	found := metrics(s)
	if len(found) == 0 {
		return fail("no quantifiable metric found")
	}
	return pass("summary contains %d quantifiable metric(s)", len(found)).withEvidence(preview(found, 3))
}

func keywordHits(text string) (hits []string, total int) {
	tokens := words(text)
	for _, w := range tokens {
		if _, ok := atsKeywords[w]; ok {
			hits = append(hits, w)
		}
	}
	return hits, len(tokens)
}

func summaryKeywords(r *resume.Generated, _ *resume.OriginalInput) Result {
	s := summaryText(r)
	if s == "" {
		return fail("summary is empty")
	}

	hits, _ := keywordHits(s)
	if len(hits) < summaryMinKeywords {
		return fail("only %d ATS keyword(s) found in the summary; use at least %d", len(hits), summaryMinKeywords).
			withEvidence(preview(unique(hits), 5))
	}
	return pass("summary contains %d ATS keywords", len(hits)).withEvidence(preview(unique(hits), 5))
}

func summaryKeywordDensity(r *resume.Generated, _ *resume.OriginalInput) Result {
	s := summaryText(r)
	if s == "" {
		return fail("summary is empty")
	}

	hits, total := keywordHits(s)
	if total == 0 {
		return fail("summary has no words")
	}

	density := float64(len(hits)) / float64(total)
	switch {
	case density < minKeywordDensity:
		return fail("keyword density is too low (%.1f%%); weave in more role keywords", density*100)
	case density > maxKeywordDensity:
		return fail("keyword density is too high (%.1f%%); the summary reads as keyword stuffing", density*100)
	}
	return pass("keyword density is balanced (%.1f%%)", density*100)
}
