package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// spokenLanguages is the fixed list of languages recognized by name.
var spokenLanguages = []string{
	"English", "Spanish", "French", "German", "Italian", "Portuguese", "Dutch", "Swedish",
	"Norwegian", "Danish", "Finnish", "Polish", "Czech", "Ukrainian", "Russian", "Romanian",
	"Hungarian", "Greek", "Turkish", "Arabic", "Hebrew", "Persian", "Hindi", "Bengali", "Urdu",
	"Mandarin", "Cantonese", "Chinese", "Japanese", "Korean", "Vietnamese", "Thai",
	"Indonesian", "Malay", "Tagalog", "Swahili",
}

var spokenLanguagePatterns = compileWordPatterns(spokenLanguages)

// extractLanguages scans the Languages section, or the whole text without one.
func extractLanguages(text string, sections []section) []string {
	source := text
	if body, ok := findSection(sections, kindLanguages); ok {
		source = body
	}

	out := []string{}
	for i, re := range spokenLanguagePatterns {
		if re.MatchString(source) {
			out = append(out, spokenLanguages[i])
		}
	}
	return out
}

// Length bounds for lines taken from a certifications section.
const (
	minCertificationLength = 3
	maxCertificationLength = 100
)

// certificationPatterns recognize well-known certifications anywhere in the text.
var certificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bAWS Certified(?:[ \t]+(?:[A-Z][A-Za-z]*|-|–))*`),
	regexp.MustCompile(`\bMicrosoft Certified:?(?:[ \t]+[A-Z][A-Za-z]*)+`),
	regexp.MustCompile(`\bGoogle (?:Cloud )?(?:Certified )?Professional(?:[ \t]+[A-Z][A-Za-z]*)+`),
	regexp.MustCompile(`\bCertified Kubernetes (?:Administrator|Application Developer|Security Specialist)\b`),
	regexp.MustCompile(`\b(?:PMP|CAPM|PMI-ACP)\b`),
	regexp.MustCompile(`\bPRINCE2(?:[ \t]+(?:Foundation|Practitioner))?`),
	regexp.MustCompile(`\b(?:Certified ScrumMaster|Professional Scrum Master(?: I{1,3})?|CSM|PSM(?: I{1,3})?)\b`),
	regexp.MustCompile(`\b(?:CISSP|CISM|CISA|CEH|OSCP|CCSP)\b`),
	regexp.MustCompile(`\bCompTIA (?:Security|Network|A|Cloud|CySA|Linux)\+`),
	regexp.MustCompile(`\bITIL(?:[ \t]+v?\d)?(?:[ \t]+Foundation)?`),
}

var certificationSplitRe = regexp.MustCompile(`[,;|•\n]+`)

// extractCertifications combines the Certifications section with vendor patterns,
// dropping case-insensitive duplicates.
func extractCertifications(text string, sections []section) []string {
	seen := make(map[string]struct{})
	out := []string{}
	add := func(c string) {
		c = strings.TrimRight(strings.TrimSpace(c), " -–.")
		n := utf8.RuneCountInString(c)
		if n < minCertificationLength || n > maxCertificationLength {
			return
		}
		key := strings.ToLower(c)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}

	if body, ok := findSection(sections, kindCertifications); ok {
		for _, item := range certificationSplitRe.Split(body, -1) {
			add(stripBullet(item))
		}
	}
	for _, re := range certificationPatterns {
		for _, m := range re.FindAllString(text, -1) {
			if !containedIn(out, m) {
				add(m)
			}
		}
	}
	return out
}

// containedIn reports whether s already appears inside one of the collected entries.
func containedIn(entries []string, s string) bool {
	s = strings.ToLower(strings.TrimRight(strings.TrimSpace(s), " -–."))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e), s) {
			return true
		}
	}
	return false
}
