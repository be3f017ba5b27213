package verify

import (
	"sort"
	"strings"
	"time"

	"github.com/spigell/resume-scorer/internal/resume"
)

const actionVerbShare = 0.8

var actionVerbs = set(
	"led", "managed", "directed", "supervised", "coordinated", "oversaw", "headed", "mentored",
	"developed", "built", "created", "designed", "implemented", "engineered", "architected",
	"improved", "optimized", "enhanced", "streamlined", "transformed", "modernized", "migrated",
	"achieved", "delivered", "executed", "completed", "accomplished", "launched", "shipped",
	"analyzed", "evaluated", "assessed", "researched", "investigated", "reviewed",
	"collaborated", "partnered", "negotiated", "communicated", "presented",
	"increased", "reduced", "decreased", "saved", "generated", "grew", "scaled", "automated",
	"established", "founded", "initiated", "introduced", "spearheaded", "drove", "won",
	"resolved", "trained", "owned", "cut", "secured", "produced", "organized", "planned",
)

var weakOpeners = []string{
	"responsible for", "helped", "worked on", "assisted", "participated",
	"tasked with", "duties included", "involved in",
}

// seniority is ordered from the most junior signal to the most senior one.
var seniority = [][]string{
	{"intern", "trainee", "junior", "jr", "associate", "entry"},
	{"mid", "intermediate", "regular"},
	{"senior", "sr", "lead", "principal", "staff"},
	{"manager", "director", "head", "vp", "chief", "cto", "ceo", "cio", "founder"},
}

var dateLayouts = []string{
	"2006-01-02", "2006-01", "01/2006", "1/2006", "Jan 2006", "January 2006", "2006",
}

func experienceEntries(r *resume.Generated) []*resume.Experience {
	if r == nil {
		return nil
	}
	out := make([]*resume.Experience, 0, len(r.Experience))
	for _, e := range r.Experience {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

func experienceMetrics(r *resume.Generated, _ *resume.OriginalInput) Result {
	entries := experienceEntries(r)
	if len(entries) == 0 {
		return fail("no work experience provided")
	}

	var withMetrics int
	var evidence []string
	for _, e := range entries {
		if found := metrics(e.Text()); len(found) > 0 {
			withMetrics++
			evidence = append(evidence, found...)
		}
	}

	switch {
	case withMetrics == 0:
		return fail("no quantifiable metric found")
	case withMetrics*2 < len(entries):
		return fail("only %d of %d experience entries include a quantifiable metric", withMetrics, len(entries)).
			withEvidence(preview(unique(evidence), 3))
	}
	return pass("%d of %d experience entries include quantifiable metrics", withMetrics, len(entries)).
		withEvidence(preview(unique(evidence), 3))
}

func isWeakOpener(bullet string) bool {
	lower := strings.ToLower(strings.TrimLeft(bullet, "-*• \t"))
	for _, phrase := range weakOpeners {
		if strings.HasPrefix(lower, phrase) {
			return true
		}
	}
	return false
}

func startsWithActionVerb(bullet string) bool {
	if isWeakOpener(bullet) {
		return false
	}
	w := firstWord(bullet)
	if _, ok := actionVerbs[w]; ok {
		return true
	}
	// Past-tense verbs outside the list still read as actions.
	return len(w) > 4 && strings.HasSuffix(w, "ed")
}

func experienceActionVerbs(r *resume.Generated, _ *resume.OriginalInput) Result {
	entries := experienceEntries(r)
	if len(entries) == 0 {
		return fail("no work experience provided")
	}

	var total, strong int
	var weak []string
	for _, e := range entries {
		for _, bullet := range e.Bullets() {
			total++
			if startsWithActionVerb(bullet) {
				strong++
				continue
			}
			weak = append(weak, firstWord(bullet))
		}
	}
	if total == 0 {
		return fail("experience entries have no bullet points")
	}

	if float64(strong) < actionVerbShare*float64(total) {
		return fail("only %d of %d bullets start with a strong action verb", strong, total).
			withEvidence(preview(unique(weak), 5))
	}
	return pass("%d of %d bullets start with a strong action verb", strong, total)
}

func experienceAchievements(r *resume.Generated, _ *resume.OriginalInput) Result {
	entries := experienceEntries(r)
	if len(entries) == 0 {
		return fail("no work experience provided")
	}

	for _, e := range entries {
		duties := make(map[string]struct{}, len(e.Responsibilities))
		for _, d := range e.Responsibilities {
			duties[normalize(d)] = struct{}{}
		}
		for _, a := range nonEmpty(e.Achievements) {
			if _, dup := duties[normalize(a)]; !dup {
				return pass("experience lists achievements beyond responsibilities").withEvidence(a)
			}
		}
	}
	return fail("no achievement distinct from responsibilities; describe outcomes, not duties")
}

// seniorityLevel returns the most senior level signalled by the title, or -1.
func seniorityLevel(title string) int {
	level := -1
	tokens := set(words(title)...)
	for i, markers := range seniority {
		for _, m := range markers {
			if _, ok := tokens[m]; ok {
				level = i
			}
		}
	}
	return level
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// chronological orders entries oldest first. When any start date is missing
// or unparseable the list is assumed to be most-recent-first.
func chronological(entries []*resume.Experience) []*resume.Experience {
	ordered := make([]*resume.Experience, len(entries))
	starts := make([]time.Time, len(entries))
	dated := true
	for i, e := range entries {
		t, ok := parseDate(e.StartDate)
		if !ok {
			dated = false
			break
		}
		starts[i] = t
	}

	if !dated {
		for i, e := range entries {
			ordered[len(entries)-1-i] = e
		}
		return ordered
	}

	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return starts[idx[a]].Before(starts[idx[b]]) })
	for i, j := range idx {
		ordered[i] = entries[j]
	}
	return ordered
}

func experienceProgression(r *resume.Generated, _ *resume.OriginalInput) Result {
	entries := experienceEntries(r)
	if len(entries) == 0 {
		return fail("no work experience provided")
	}
	if len(entries) < 2 {
		return pass("single role; progression not applicable")
	}

	prev := -1
	var prevTitle string
	for _, e := range chronological(entries) {
		level := seniorityLevel(e.Title)
		if level < 0 {
			continue
		}
		if level < prev {
			return fail("titles step down in seniority over time; explain the move or reorder roles").
				withEvidence(prevTitle + " -> " + e.Title)
		}
		prev, prevTitle = level, e.Title
	}
	return pass("career progression is consistent across %d roles", len(entries))
}
