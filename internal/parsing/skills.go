package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Length bounds for tokens taken from a skills section.
const (
	minSkillTokenLength = 3
	maxSkillTokenLength = 49
)

// knownSkills is scanned as whole words, case-insensitively, in this order.
// Ambiguous short words ("go", "c", "r") are left to the skills section.
var knownSkills = []string{
	"javascript", "typescript", "python", "java", "golang", "c++", "c#", "ruby", "php",
	"swift", "kotlin", "rust", "scala", "perl", "elixir", "haskell",
	"react", "angular", "vue", "svelte", "next.js", "redux", "html", "css", "sass", "tailwind",
	"node.js", "django", "flask", "fastapi", "spring", "laravel", "rails", ".net",
	"graphql", "grpc", "microservices",
	"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch", "sqlite", "cassandra",
	"dynamodb", "kafka", "rabbitmq",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible", "jenkins", "ci/cd",
	"linux", "git", "helm", "prometheus", "grafana",
	"machine learning", "deep learning", "tensorflow", "pytorch", "pandas", "numpy",
	"scikit-learn", "nlp", "computer vision", "spark", "hadoop", "tableau", "power bi",
	"android", "ios", "react native", "flutter",
	"figma", "sketch", "photoshop", "ui/ux",
	"agile", "scrum", "kanban", "jira",
}

var (
	knownSkillPatterns = compileWordPatterns(knownSkills)
	skillSplitRe       = regexp.MustCompile(`[,;|•\n]+`)
)

// compileWordPatterns builds a whole-word, case-insensitive matcher per term. Word edges
// allow terms that start or end with punctuation such as "c++" and ".net".
func compileWordPatterns(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(terms))
	for i, t := range terms {
		out[i] = regexp.MustCompile(`(?i)(?:^|[^\w+#.])` + regexp.QuoteMeta(t) + `(?:$|[^\w+#])`)
	}
	return out
}

func extractSkills(text string, sections []section) []string {
	seen := make(map[string]struct{})
	skills := []string{}
	add := func(s string) {
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		skills = append(skills, s)
	}

	for i, re := range knownSkillPatterns {
		if re.MatchString(text) {
			add(knownSkills[i])
		}
	}

	if body, ok := findSection(sections, kindSkills); ok {
		for _, token := range skillSplitRe.Split(body, -1) {
			token = stripBullet(token)
			token = strings.TrimRight(token, ".")
			if n := utf8.RuneCountInString(token); n >= minSkillTokenLength && n <= maxSkillTokenLength {
				add(token)
			}
		}
	}

	return skills
}
