package types

// Contact holds the contact details found in a resume.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ResumeEducation is a degree found in resume text.
type ResumeEducation struct {
	Degree string `json:"degree"`
	Field  string `json:"field,omitempty"`
	Year   *int   `json:"year,omitempty"`
}

// ResumeExperience is one position found in the experience section.
type ResumeExperience struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description"`
}

// ParsedResume is the structured view extracted from plain resume text.
// Collections are always non-nil so an empty parse marshals as empty arrays.
type ParsedResume struct {
	Contact        Contact            `json:"contact"`
	Skills         []string           `json:"skills"`
	Education      []ResumeEducation  `json:"education"`
	Experience     []ResumeExperience `json:"experience"`
	Summary        *string            `json:"summary"`
	Languages      []string           `json:"languages"`
	Certifications []string           `json:"certifications"`
}

// NewParsedResume returns an all-empty ParsedResume.
func NewParsedResume() *ParsedResume {
	return &ParsedResume{
		Skills:         []string{},
		Education:      []ResumeEducation{},
		Experience:     []ResumeExperience{},
		Languages:      []string{},
		Certifications: []string{},
	}
}

// Section names used in quality reports.
const (
	SectionContact    = "contact"
	SectionSkills     = "skills"
	SectionEducation  = "education"
	SectionExperience = "experience"
	SectionSummary    = "summary"
)

// QualityReport scores how complete a parsed resume is.
type QualityReport struct {
	OverallScore  int            `json:"overall_score"`
	SectionScores map[string]int `json:"section_scores"`
	Suggestions   []string       `json:"suggestions"`
	IsComplete    bool           `json:"is_complete"`
}

// ResumeAnalysis bundles a parse with its quality report.
type ResumeAnalysis struct {
	Resume  *ParsedResume  `json:"resume"`
	Quality *QualityReport `json:"quality"`
}
