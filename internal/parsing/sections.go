package parsing

import (
	"strings"
	"unicode/utf8"
)

// sectionKind identifies a resume section by what it contains.
type sectionKind string

const (
	kindSummary        sectionKind = "summary"
	kindExperience     sectionKind = "experience"
	kindEducation      sectionKind = "education"
	kindSkills         sectionKind = "skills"
	kindCertifications sectionKind = "certifications"
	kindLanguages      sectionKind = "languages"
	kindOther          sectionKind = "other"
)

// maxHeaderLength bounds how long a line may be and still count as a header.
const maxHeaderLength = 40

// sectionHeaders maps header spellings to the section they open.
var sectionHeaders = map[string]sectionKind{
	"summary":                     kindSummary,
	"professional summary":        kindSummary,
	"career summary":              kindSummary,
	"profile":                     kindSummary,
	"professional profile":        kindSummary,
	"objective":                   kindSummary,
	"career objective":            kindSummary,
	"about me":                    kindSummary,
	"experience":                  kindExperience,
	"work experience":             kindExperience,
	"professional experience":     kindExperience,
	"employment":                  kindExperience,
	"employment history":          kindExperience,
	"work history":                kindExperience,
	"career history":              kindExperience,
	"education":                   kindEducation,
	"academic background":         kindEducation,
	"education and training":      kindEducation,
	"academic qualifications":     kindEducation,
	"skills":                      kindSkills,
	"technical skills":            kindSkills,
	"key skills":                  kindSkills,
	"core skills":                 kindSkills,
	"core competencies":           kindSkills,
	"competencies":                kindSkills,
	"technologies":                kindSkills,
	"tech stack":                  kindSkills,
	"certifications":              kindCertifications,
	"certification":               kindCertifications,
	"certificates":                kindCertifications,
	"licenses and certifications": kindCertifications,
	"licenses & certifications":   kindCertifications,
	"languages":                   kindLanguages,
	"spoken languages":            kindLanguages,
	"projects":                    kindOther,
	"references":                  kindOther,
	"awards":                      kindOther,
	"achievements":                kindOther,
	"interests":                   kindOther,
	"hobbies":                     kindOther,
	"publications":                kindOther,
	"volunteer":                   kindOther,
	"volunteering":                kindOther,
	"contact":                     kindOther,
	"contact information":         kindOther,
}

// section is a header and the text that follows it up to the next header.
type section struct {
	kind sectionKind
	body string
}

// parseHeader recognizes a header line. A header may carry inline content after a colon,
// as in "Skills: Go, SQL".
func parseHeader(line string) (sectionKind, string, bool) {
	trimmed := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
	if trimmed == "" {
		return "", "", false
	}

	head, rest, hasColon := strings.Cut(trimmed, ":")
	key := strings.ToLower(strings.TrimSpace(head))
	if utf8.RuneCountInString(key) > maxHeaderLength {
		return "", "", false
	}
	kind, ok := sectionHeaders[key]
	if !ok {
		return "", "", false
	}
	if !hasColon {
		return kind, "", true
	}
	return kind, strings.TrimSpace(rest), true
}

// splitSections walks the text line by line and returns every headed section in order.
// Text before the first header is not part of any section.
func splitSections(text string) []section {
	var (
		sections []section
		current  *section
		body     []string
	)
	flush := func() {
		if current != nil {
			current.body = strings.TrimSpace(strings.Join(body, "\n"))
			sections = append(sections, *current)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if kind, inline, ok := parseHeader(line); ok {
			flush()
			current = &section{kind: kind}
			body = body[:0]
			if inline != "" {
				body = append(body, inline)
			}
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()
	return sections
}

// findSection returns the body of the first section of the given kind.
func findSection(sections []section, kind sectionKind) (string, bool) {
	for _, s := range sections {
		if s.kind == kind {
			return s.body, true
		}
	}
	return "", false
}
