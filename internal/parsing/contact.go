package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

// minPhoneDigits is the fewest digits a phone number may have.
const minPhoneDigits = 10

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// phonePatterns are tried in order, most specific first.
	phonePatterns = []*regexp.Regexp{
		// +44 20 7946 0958, +1 (555) 123-4567
		regexp.MustCompile(`\+\d{1,3}[ .-]?\(?\d{1,4}\)?(?:[ .-]?\d{2,4}){2,4}`),
		// (555) 123-4567, 555.123.4567
		regexp.MustCompile(`\(?\d{3}\)?[ .-]?\d{3}[ .-]?\d{4}`),
		// any long run of digits and separators on one line
		regexp.MustCompile(`\d[\d \t().-]{8,}\d`),
	}

	linkedInRe = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/in/([A-Za-z0-9_-]+)`)
	gitHubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/([A-Za-z0-9-]+)`)
	urlRe      = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s,;<>()"']+`)
)

func extractContact(text string) types.Contact {
	var c types.Contact

	c.Email = emailRe.FindString(text)
	c.Phone = extractPhone(text)

	if m := linkedInRe.FindStringSubmatch(text); m != nil {
		c.LinkedIn = "https://www.linkedin.com/in/" + m[1]
	}
	if m := gitHubRe.FindStringSubmatch(text); m != nil {
		c.GitHub = "https://github.com/" + m[1]
	}

	for _, u := range urlRe.FindAllString(text, -1) {
		lower := strings.ToLower(u)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") {
			continue
		}
		c.Website = strings.TrimRight(u, ".!?:")
		break
	}

	return c
}

// extractPhone returns the first phone-shaped token, reduced to digits and a leading '+'.
func extractPhone(text string) string {
	for _, re := range phonePatterns {
		for _, m := range re.FindAllString(text, -1) {
			if phone := normalizePhone(m); phone != "" {
				return phone
			}
		}
	}
	return ""
}

func normalizePhone(raw string) string {
	var sb strings.Builder
	digits := 0
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r == '+' && i == 0:
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
			digits++
		}
	}
	if digits < minPhoneDigits {
		return ""
	}
	return sb.String()
}
