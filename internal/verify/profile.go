package verify

import (
	"regexp"
	"strings"

	"github.com/spigell/resume-scorer/internal/resume"
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

var (
	rankingPattern  = regexp.MustCompile(`(?i)\b(?:first|top|best|award(?:ed)?|winner|won|ranked|finalist|record|gold|silver|bronze)\b`)
	anyDigit        = regexp.MustCompile(`\d`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	longDigitRun    = regexp.MustCompile(`\d{4,}`)
	linkedInPattern = regexp.MustCompile(`(?i)^(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/(?:in|pub)/[A-Za-z0-9_\-%]+/?$`)
)

var proficiencyLevels = set(
	"a1", "a2", "b1", "b2", "c1", "c2",
	"native", "bilingual", "fluent", "full professional", "professional working",
	"limited working", "professional", "advanced", "upper intermediate",
	"intermediate", "conversational", "basic", "elementary", "beginner",
	"mother tongue", "native or bilingual",
)

var disposableDomains = []string{
	"mailinator.com", "yopmail.com", "guerrillamail.com", "tempmail.com",
	"10minutemail.com", "trashmail.com", "throwawaymail.com", "getnada.com",
	"temp-mail.org", "sharklasers.com",
}

var informalEmailWords = []string{
	"sexy", "cute", "babe", "baby", "hottie", "princess", "gamer", "killer",
	"lover", "cool", "crazy", "party", "devil", "dude", "boss",
}

var placeholderLocalParts = set("test", "admin", "example", "user", "email", "noreply", "no-reply", "asdf")

func achievementItems(r *resume.Generated) []string {
	if r == nil {
		return nil
	}
	return nonEmpty(r.Achievements)
}

func achievementsMetrics(r *resume.Generated, _ *resume.OriginalInput) Result {
	items := achievementItems(r)
	if len(items) == 0 {
		return fail("no achievements provided")
	}

	var withMetric int
	var evidence []string
	for _, a := range items {
		if found := strictMetrics(a); len(found) > 0 {
			withMetric++
			evidence = append(evidence, found...)
		}
	}

	need := (len(items) + 1) / 2
	if withMetric < need {
		return fail("only %d of %d achievements carry a concrete metric; at least %d should", withMetric, len(items), need)
	}
	return pass("%d of %d achievements carry concrete metrics", withMetric, len(items)).
		withEvidence(preview(unique(evidence), 3))
}

func achievementsQuantifiable(r *resume.Generated, _ *resume.OriginalInput) Result {
	items := achievementItems(r)
	if len(items) == 0 {
		return fail("no achievements provided")
	}
	for _, a := range items {
		if !anyDigit.MatchString(a) && !rankingPattern.MatchString(a) {
			return fail("achievement is not quantifiable; add a number, ranking or award").withEvidence(a)
		}
	}
	return pass("every achievement is quantifiable")
}

// proficient reports whether level names a known proficiency. Compound
// levels such as "C1 / Fluent" match when any part does.
func proficient(level string) bool {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return false
	}
	if _, ok := proficiencyLevels[strings.Join(strings.Fields(level), " ")]; ok {
		return true
	}
	parts := strings.FieldsFunc(level, func(r rune) bool {
		return strings.ContainsRune("/,;()-|", r)
	})
	for _, part := range parts {
		part = strings.Join(strings.Fields(part), " ")
		part = strings.TrimSuffix(part, " proficiency")
		if _, ok := proficiencyLevels[part]; ok {
			return true
		}
	}
	return false
}

func languagesLevels(r *resume.Generated, _ *resume.OriginalInput) Result {
	var entries []*resume.Language
	if r != nil {
		entries = r.Languages
	}
	return everyEntry(entries, "no languages provided", "every language has a recognized proficiency level",
		func(l *resume.Language) (string, bool) {
			return "language " + label(l.Language, "") + " has no recognized proficiency level (use CEFR or native/fluent/intermediate/basic)",
				proficient(l.Level)
		})
}

func contactOf(r *resume.Generated) resume.Contact {
	if r == nil {
		return resume.Contact{}
	}
	return r.Contact
}

func contactEmail(r *resume.Generated, _ *resume.OriginalInput) Result {
	email := strings.TrimSpace(contactOf(r).Email)
	if email == "" {
		return fail("no email address provided")
	}
	if !emailPattern.MatchString(email) {
		return fail("email address is malformed").withEvidence(email)
	}

	lower := strings.ToLower(email)
	at := strings.LastIndex(lower, "@")
	local, domain := lower[:at], lower[at+1:]

	for _, d := range disposableDomains {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return fail("email uses a disposable mail domain").withEvidence(domain)
		}
	}
	if _, ok := placeholderLocalParts[local]; ok {
		return fail("email looks like a placeholder address").withEvidence(email)
	}
	for _, w := range informalEmailWords {
		if strings.Contains(local, w) {
			return fail("email address looks informal; use a name-based address").withEvidence(email)
		}
	}
	if longDigitRun.MatchString(local) {
		return fail("email address contains a long run of digits; use a name-based address").withEvidence(email)
	}
	return pass("professional email address provided")
}

func contactPhone(r *resume.Generated, _ *resume.OriginalInput) Result {
	phone := strings.TrimSpace(contactOf(r).Phone)
	if phone == "" {
		return fail("no phone number provided")
	}
	n := len(digits(phone))
	if n < minPhoneDigits || n > maxPhoneDigits {
		return fail("phone number has %d digits; expected %d to %d", n, minPhoneDigits, maxPhoneDigits).withEvidence(phone)
	}
	return pass("phone number provided")
}

func contactLinkedIn(r *resume.Generated, _ *resume.OriginalInput) Result {
	url := strings.TrimSpace(contactOf(r).LinkedIn)
	if url == "" {
		return fail("no LinkedIn profile URL provided")
	}
	if !linkedInPattern.MatchString(url) {
		return fail("LinkedIn URL should look like linkedin.com/in/your-name").withEvidence(url)
	}
	return pass("LinkedIn profile URL provided")
}

func consistencyMetrics(r *resume.Generated, in *resume.OriginalInput) Result {
	if in == nil {
		return pass("no original input to cross-check")
	}
	entries := experienceEntries(r)
	if len(entries) == 0 {
		return fail("no work experience provided")
	}

	grounded := make(map[string]struct{})
	for _, n := range numberPattern.FindAllString(in.Corpus(), -1) {
		grounded[digits(n)] = struct{}{}
	}

	var invented []string
	for _, e := range entries {
		for _, m := range strictMetrics(e.Text()) {
			d := digits(m)
			if _, ok := grounded[d]; d != "" && !ok {
				invented = append(invented, m)
			}
		}
	}
	if len(invented) > 0 {
		return fail("%d metric(s) in experience do not appear in the original input", len(unique(invented))).
			withEvidence(preview(unique(invented), 5))
	}
	return pass("experience metrics are grounded in the original input")
}

func consistencyEmployers(r *resume.Generated, in *resume.OriginalInput) Result {
	if in == nil {
		return pass("no original input to cross-check")
	}
	entries := experienceEntries(r)
	if len(entries) == 0 {
		return fail("no work experience provided")
	}

	known := make([]string, 0, len(in.Companies()))
	for _, c := range in.Companies() {
		known = append(known, normalize(c))
	}

	var unknown []string
	for _, e := range entries {
		company := normalize(e.Company)
		if company == "" {
			continue
		}
		if !matchesAny(company, known) {
			unknown = append(unknown, e.Company)
		}
	}
	if len(unknown) > 0 {
		return fail("employer(s) not present in the original input").withEvidence(preview(unique(unknown), 5))
	}
	return pass("every employer is present in the original input")
}

func matchesAny(company string, known []string) bool {
	for _, k := range known {
		if k != "" && (strings.Contains(company, k) || strings.Contains(k, company)) {
			return true
		}
	}
	return false
}
