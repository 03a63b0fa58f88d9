// Package career holds the public response schemas returned by the API.
// Every slice and map field is always emitted; constructors and the
// normalizer replace nil values with empty containers.
package career

// Degradation annotates a response that was produced without a usable model result.
type Degradation struct {
	Error string `json:"error,omitempty"`
	Where string `json:"where,omitempty"`
}

// RoleMatch is a quiz result entry.
type RoleMatch struct {
	Role           string   `json:"role"`
	Confidence     int      `json:"confidence"`
	Reasoning      string   `json:"reasoning"`
	PersonalityFit []string `json:"personality_fit"`
	SkillsFit      []string `json:"skills_fit"`
}

type QuizResult struct {
	Matches []RoleMatch `json:"matches"`
	Degradation
}

// Question is a single adaptive quiz step.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type QuestionResult struct {
	Question Question `json:"question"`
	Degradation
}

type DemandTrend struct {
	Years       []int `json:"years"`
	DemandIndex []int `json:"demand_index"`
}

type RegionSalary struct {
	Region    string `json:"region"`
	AvgSalary int    `json:"avg_salary"`
}

type GrowthForecast struct {
	FiveYearOutlook       string `json:"five_year_outlook"`
	AutomationRiskPercent int    `json:"automation_risk_percent"`
	Notes                 string `json:"notes"`
}

type MarketInsights struct {
	Role           string         `json:"role"`
	Region         string         `json:"region"`
	DemandTrend    DemandTrend    `json:"demand_trend"`
	SalaryByRegion []RegionSalary `json:"salary_by_region"`
	TopSkills      []string       `json:"top_skills"`
	GrowthForecast GrowthForecast `json:"growth_forecast"`
	Degradation
}

type Resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type LearningPath struct {
	Title     string     `json:"title"`
	Resources []Resource `json:"resources"`
}

type RoadmapWeek struct {
	Week     int      `json:"week"`
	Focus    string   `json:"focus"`
	Outcomes []string `json:"outcomes"`
}

type Recommendation struct {
	Role          string         `json:"role"`
	LearningPaths []LearningPath `json:"learning_paths"`
	RoadmapWeeks  []RoadmapWeek  `json:"roadmap_weeks"`
	ResumeTips    []string       `json:"resume_tips"`
	Degradation
}

type RoleProfile struct {
	Role                  string   `json:"role"`
	SalaryRange           string   `json:"salary_range"`
	DemandGrowth          string   `json:"demand_growth"`
	WorkLifeBalance       string   `json:"work_life_balance"`
	Education             string   `json:"education"`
	TopSkills             []string `json:"top_skills"`
	AutomationRiskPercent int      `json:"automation_risk_percent"`
}

type Comparison struct {
	Roles   []RoleProfile `json:"roles"`
	Summary string        `json:"summary"`
	Degradation
}

type SectionsFeedback struct {
	Summary    string `json:"summary"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
	Education  string `json:"education"`
}

// JobSuggestion is an alternative role derived from a resume.
type JobSuggestion struct {
	Title  string `json:"title"`
	Level  string `json:"level"`
	WhyFit string `json:"why_fit"`
}

type ResumeAnalysis struct {
	TargetRole               string           `json:"target_role"`
	ATSScorePercent          int              `json:"ats_score_percent"`
	MissingKeywords          []string         `json:"missing_keywords"`
	SectionsFeedback         SectionsFeedback `json:"sections_feedback"`
	BulletImprovements       []string         `json:"bullet_improvements"`
	SuggestedProjects        []string         `json:"suggested_projects"`
	CertificationSuggestions []string         `json:"certification_suggestions"`
	JobSuggestions           []JobSuggestion  `json:"job_suggestions"`
	Degradation
}

type SkillWeek struct {
	Week   int      `json:"week"`
	Skills []string `json:"skills"`
}

type Roadmap struct {
	Job   string      `json:"job"`
	Weeks []SkillWeek `json:"weeks"`
	Degradation
}

// Degraded reports whether the response was produced without a usable model result.
func (d Degradation) Degraded() bool {
	return d.Error != ""
}

// PingStatus reports provider connectivity.
type PingStatus struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
