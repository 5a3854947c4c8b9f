package taxonomy

// defaultCategories is ordered: CategoryOf returns the first category listing a skill.
var defaultCategories = []Category{
	{
		ID:   "programming_languages",
		Name: "Programming Languages",
		Skills: []string{
			"javascript", "typescript", "python", "java", "c#", "c++", "c", "go", "ruby",
			"php", "swift", "kotlin", "rust", "scala", "r", "perl", "dart", "elixir",
		},
	},
	{
		ID:   "frontend",
		Name: "Frontend Development",
		Skills: []string{
			"react", "angular", "vue", "svelte", "html", "css", "sass", "redux",
			"next.js", "tailwind", "webpack", "jquery",
		},
	},
	{
		ID:   "backend",
		Name: "Backend Development",
		Skills: []string{
			"node.js", "express", "django", "flask", "fastapi", "spring", "laravel",
			"rails", ".net", "graphql", "rest api", "grpc", "microservices",
		},
	},
	{
		ID:   "databases",
		Name: "Databases",
		Skills: []string{
			"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch", "oracle",
			"sqlite", "cassandra", "dynamodb", "neo4j",
		},
	},
	{
		ID:   "cloud_devops",
		Name: "Cloud & DevOps",
		Skills: []string{
			"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible", "jenkins",
			"ci/cd", "linux", "git", "helm", "prometheus",
		},
	},
	{
		ID:   "data_science",
		Name: "Data Science & AI",
		Skills: []string{
			"machine learning", "deep learning", "artificial intelligence", "tensorflow",
			"pytorch", "pandas", "numpy", "scikit-learn", "data analysis", "statistics",
			"nlp", "computer vision", "spark", "tableau", "power bi",
		},
	},
	{
		ID:   "mobile",
		Name: "Mobile Development",
		Skills: []string{
			"android", "ios", "react native", "flutter", "xamarin",
		},
	},
	{
		ID:   "design",
		Name: "Design",
		Skills: []string{
			"figma", "sketch", "photoshop", "illustrator", "ui/ux", "adobe xd",
		},
	},
	{
		ID:   "project_management",
		Name: "Project Management",
		Skills: []string{
			"agile", "scrum", "kanban", "jira", "project management", "confluence",
		},
	},
	{
		ID:   "soft_skills",
		Name: "Soft Skills",
		Skills: []string{
			"communication", "leadership", "teamwork", "problem solving",
			"time management", "critical thinking", "mentoring",
		},
	},
}

// defaultSynonyms maps a canonical skill to the spellings treated as the same skill.
var defaultSynonyms = map[string][]string{
	"javascript":              {"js", "ecmascript", "es6"},
	"typescript":              {"ts"},
	"python":                  {"py", "python3"},
	"go":                      {"golang"},
	"c#":                      {"csharp", "c sharp"},
	"c++":                     {"cpp"},
	"kubernetes":              {"k8s"},
	"postgresql":              {"postgres", "psql"},
	"mongodb":                 {"mongo"},
	"node.js":                 {"node", "nodejs"},
	"react":                   {"react.js", "reactjs"},
	"vue":                     {"vue.js", "vuejs"},
	"angular":                 {"angularjs", "angular.js"},
	"next.js":                 {"nextjs"},
	".net":                    {"dotnet", "asp.net"},
	"rails":                   {"ruby on rails", "ror"},
	"machine learning":        {"ml"},
	"artificial intelligence": {"ai"},
	"nlp":                     {"natural language processing"},
	"aws":                     {"amazon web services"},
	"gcp":                     {"google cloud", "google cloud platform"},
	"azure":                   {"microsoft azure"},
	"ci/cd":                   {"continuous integration", "continuous delivery", "cicd"},
	"ui/ux":                   {"ui", "ux", "user experience", "user interface"},
	"rest api":                {"rest", "restful"},
	"sql":                     {"structured query language"},
	"scikit-learn":            {"sklearn"},
	"project management":      {"pm"},
}

// defaultComplements lists skills conventionally learned alongside a skill.
var defaultComplements = map[string][]string{
	"javascript":       {"typescript", "react", "node.js"},
	"typescript":       {"javascript", "react", "angular"},
	"react":            {"redux", "typescript", "next.js"},
	"angular":          {"typescript", "rxjs"},
	"vue":              {"javascript", "vuex"},
	"node.js":          {"express", "mongodb", "typescript"},
	"python":           {"django", "flask", "pandas"},
	"django":           {"python", "postgresql"},
	"java":             {"spring", "sql"},
	"go":               {"docker", "kubernetes", "grpc"},
	"docker":           {"kubernetes", "ci/cd"},
	"kubernetes":       {"docker", "helm", "terraform"},
	"aws":              {"terraform", "docker"},
	"sql":              {"postgresql", "data analysis"},
	"machine learning": {"python", "tensorflow", "pytorch"},
	"data analysis":    {"sql", "pandas", "tableau"},
	"figma":            {"ui/ux", "sketch"},
	"agile":            {"scrum", "jira"},
}
