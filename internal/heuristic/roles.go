package heuristic

// RoleCandidate describes a role the quiz scorer can suggest.
type RoleCandidate struct {
	Title    string
	Keywords []string
	Persona  []string
	Skills   []string
}

// Candidates is the quiz reference table. It is never mutated.
var Candidates = []RoleCandidate{
	{
		Title:    "Data Analyst",
		Keywords: []string{"python", "sql", "excel", "tableau", "power bi", "statistics", "pandas"},
		Persona:  []string{"Analytical", "Detail-oriented"},
		Skills:   []string{"SQL", "Excel"},
	},
	{
		Title:    "Data Scientist",
		Keywords: []string{"tensorflow", "pytorch", "ml", "machine learning", "sklearn", "deep learning"},
		Persona:  []string{"Curious", "Analytical"},
		Skills:   []string{"ML", "Python"},
	},
	{
		Title:    "Frontend Developer",
		Keywords: []string{"react", "javascript", "typescript", "css", "html", "ui"},
		Persona:  []string{"Creative", "User-focused"},
		Skills:   []string{"React", "JS"},
	},
	{
		Title:    "Backend Developer",
		Keywords: []string{"node", "express", "java", "spring", "django", "flask", "api"},
		Persona:  []string{"System-thinking", "Problem-solving"},
		Skills:   []string{"APIs", "Databases"},
	},
	{
		Title:    "UI/UX Designer",
		Keywords: []string{"figma", "ui", "ux", "wireframe", "prototype", "design"},
		Persona:  []string{"Empathy", "Creative"},
		Skills:   []string{"Figma", "Prototyping"},
	},
	{
		Title:    "Business Analyst",
		Keywords: []string{"excel", "tableau", "power bi", "stakeholder", "requirements"},
		Persona:  []string{"Communicator", "Analytical"},
		Skills:   []string{"Dashboards", "KPIs"},
	},
	{
		Title:    "Cloud/DevOps Engineer",
		Keywords: []string{"aws", "azure", "gcp", "docker", "kubernetes", "ci/cd", "terraform"},
		Persona:  []string{"Pragmatic", "Reliable"},
		Skills:   []string{"CI/CD", "Cloud"},
	},
}

// Generalist is returned when no candidate matches.
var Generalist = RoleCandidate{
	Title:   "Generalist (Explore)",
	Persona: []string{"Curious"},
	Skills:  []string{"Communication", "Basics"},
}

var genericSkills = []string{"Communication", "Problem-solving"}

// resumeRule describes one role category detected in resume text.
type resumeRule struct {
	title string
	why   string
	// triggers gate the rule: at least one must occur.
	triggers []string
	// requires is a second gate, used for specialised variants.
	requires []string
	// scoring keywords are counted; nil means the rule scores fixed.
	scoring []string
	fixed   int
	bonus   int
	// evidence keywords found in the text are listed in the rationale.
	evidence []string
	// skipIfPrefix suppresses the rule when an earlier title starts with it.
	skipIfPrefix string
}

var (
	dataTriggers = []string{"python", "pandas", "numpy", "sklearn", "sql"}
	dataScoring  = []string{"python", "pandas", "numpy", "sql", "excel", "tableau", "power bi"}
)

// resumeRules are evaluated in order; ordering matters for ties and skipIfPrefix.
var resumeRules = []resumeRule{
	{
		title:    "Data Scientist",
		why:      "ML libraries and data tools present",
		triggers: dataTriggers,
		requires: []string{"tensorflow", "pytorch", "scikit"},
		scoring:  dataScoring,
		bonus:    2,
	},
	{
		title:    "Data Analyst",
		why:      "Data tools",
		triggers: dataTriggers,
		scoring:  dataScoring,
		evidence: []string{"sql", "excel", "tableau", "power bi", "python"},
	},
	{
		title:    "Frontend Developer",
		why:      "Web stack",
		triggers: []string{"react", "javascript", "typescript"},
		scoring:  []string{"react", "typescript", "javascript", "next.js"},
		evidence: []string{"react", "typescript", "javascript"},
	},
	{
		title:    "Backend Developer",
		why:      "Backend frameworks present",
		triggers: []string{"node", "express", "java", "spring", "django", "flask"},
		scoring:  []string{"node", "express", "java", "spring", "django", "flask", "go", ".net"},
	},
	{
		title:    "Cloud/DevOps Engineer",
		why:      "Cloud/DevOps tooling experience",
		triggers: []string{"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ci/cd"},
		scoring:  []string{"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins", "ci/cd"},
	},
	{
		title:    "UI/UX Designer",
		why:      "Design tools and UX keywords",
		triggers: []string{"figma", "ux", "ui", "sketch"},
		scoring:  []string{"figma", "ux", "ui", "sketch", "wireframe"},
	},
	{
		title:        "Business Analyst",
		why:          "BI/analytics tools present",
		triggers:     []string{"excel", "tableau", "power bi"},
		scoring:      []string{"excel", "tableau", "power bi", "sql"},
		skipIfPrefix: "Data",
	},
	{
		title:    "QA Engineer",
		why:      "Test frameworks and QA focus",
		triggers: []string{"qa", "testing", "selenium", "cypress"},
		scoring:  []string{"qa", "testing", "selenium", "cypress", "jest"},
	},
	{
		title:    "Security Analyst",
		why:      "Security keywords present",
		triggers: []string{"security", "cyber", "soc"},
		scoring:  []string{"security", "cyber", "siem", "soc", "splunk"},
	},
	{
		title:    "Digital Marketing Specialist",
		why:      "Marketing stack keywords present",
		triggers: []string{"marketing", "seo", "content", "social"},
		scoring:  []string{"marketing", "seo", "content", "social"},
	},
	{
		title:    "Salesforce Administrator",
		why:      "Salesforce keyword present",
		triggers: []string{"salesforce"},
		fixed:    1,
	},
	{
		title:    "Project Coordinator",
		why:      "Project management tools present",
		triggers: []string{"project management", "scrum", "jira"},
		fixed:    1,
	},
}
