// Package normalize coerces decoded model payloads into the fixed public
// response schemas. Missing keys are looked up under known alternate names,
// single values are wrapped where lists are expected, bounded numbers are
// clamped and heuristic results fill in empty suggestion fields.
package normalize

import (
	"github.com/mitchellh/mapstructure"
)

// aliases maps a canonical key to the accepted names in priority order.
type aliases map[string][]string

var (
	quizAliases = aliases{
		"matches": {"matches", "roles", "results"},
	}
	matchAliases = aliases{
		"role":            {"role", "title", "name"},
		"confidence":      {"confidence", "score", "match_percent"},
		"reasoning":       {"reasoning", "reason", "why"},
		"personality_fit": {"personality_fit", "personality", "traits"},
		"skills_fit":      {"skills_fit", "skills"},
	}
	questionAliases = aliases{
		"id":      {"id", "question_id"},
		"text":    {"text", "question", "prompt"},
		"options": {"options", "choices", "answers"},
	}
	marketAliases = aliases{
		"role":             {"role"},
		"region":           {"region"},
		"demand_trend":     {"demand_trend", "demand", "trend"},
		"salary_by_region": {"salary_by_region", "salaries", "salary"},
		"top_skills":       {"top_skills", "skills"},
		"growth_forecast":  {"growth_forecast", "forecast", "outlook"},
	}
	trendAliases = aliases{
		"years":        {"years"},
		"demand_index": {"demand_index", "index", "values"},
	}
	salaryAliases = aliases{
		"region":     {"region", "name"},
		"avg_salary": {"avg_salary", "salary", "average_salary"},
	}
	forecastAliases = aliases{
		"five_year_outlook":       {"five_year_outlook", "outlook", "summary"},
		"automation_risk_percent": {"automation_risk_percent", "automation_risk"},
		"notes":                   {"notes"},
	}
	recommendAliases = aliases{
		"role":           {"role"},
		"learning_paths": {"learning_paths", "learning_path", "paths"},
		"roadmap_weeks":  {"roadmap_weeks", "roadmap", "plan"},
		"resume_tips":    {"resume_tips", "resume_advice", "tips"},
	}
	pathAliases = aliases{
		"title":     {"title", "name"},
		"resources": {"resources", "links"},
	}
	resourceAliases = aliases{
		"name": {"name", "title"},
		"url":  {"url", "link"},
	}
	planWeekAliases = aliases{
		"week":     {"week"},
		"focus":    {"focus", "focus_description", "description"},
		"outcomes": {"outcomes", "goals", "skills"},
	}
	compareAliases = aliases{
		"roles":   {"roles", "comparison"},
		"summary": {"summary", "verdict"},
	}
	profileAliases = aliases{
		"role":                    {"role", "title"},
		"salary_range":            {"salary_range", "salary"},
		"demand_growth":           {"demand_growth", "demand"},
		"work_life_balance":       {"work_life_balance"},
		"education":               {"education"},
		"top_skills":              {"top_skills", "skills"},
		"automation_risk_percent": {"automation_risk_percent", "automation_risk"},
	}
	resumeAliases = aliases{
		"target_role":               {"target_role", "role"},
		"ats_score_percent":         {"ats_score_percent", "ats_score"},
		"missing_keywords":          {"missing_keywords", "keywords"},
		"sections_feedback":         {"sections_feedback", "feedback"},
		"bullet_improvements":       {"bullet_improvements", "bullets"},
		"suggested_projects":        {"suggested_projects", "projects"},
		"certification_suggestions": {"certification_suggestions", "certifications"},
		"job_suggestions":           {"job_suggestions", "jobs", "suggested_jobs"},
	}
	sectionAliases = aliases{
		"summary":    {"summary"},
		"experience": {"experience"},
		"skills":     {"skills"},
		"education":  {"education"},
	}
	suggestionAliases = aliases{
		"title":   {"title", "role"},
		"level":   {"level", "seniority"},
		"why_fit": {"why_fit", "why", "reason"},
	}
	roadmapAliases = aliases{
		"job":   {"job", "role"},
		"weeks": {"weeks", "roadmap", "plan"},
	}
	skillWeekAliases = aliases{
		"week":   {"week"},
		"skills": {"skills", "topics"},
	}
)

// Resolve returns obj with every canonical key set to the first non-empty
// value found under its accepted names. Unknown keys are dropped.
func (a aliases) Resolve(obj map[string]any) map[string]any {
	out := make(map[string]any, len(a))
	for key, names := range a {
		if v, ok := lookup(obj, names...); ok {
			out[key] = v
		}
	}
	return out
}

func lookup(obj map[string]any, names ...string) (any, bool) {
	for _, name := range names {
		if v, ok := obj[name]; ok && !isEmpty(v) {
			return v, true
		}
	}
	return nil, false
}

// decodeInto resolves aliases on v and decodes the result into out with weakly
// typed conversions. Non-object input yields out untouched and an error.
func decodeInto(v any, a aliases, out any) error {
	obj, ok := asObject(v)
	if !ok {
		return errNotObject
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return dec.Decode(a.Resolve(obj))
}
