package normalize

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/spigell/careerlens/internal/career"
	"github.com/spigell/careerlens/internal/decode"
	"github.com/spigell/careerlens/internal/heuristic"
)

func TestRecommendAcceptsAlternateKeys(t *testing.T) {
	t.Parallel()

	paths := []any{
		map[string]any{"title": "Foundations", "resources": []any{map[string]any{"name": "Docs", "url": "https://go.dev/doc"}}},
		"Deep dive",
	}
	payload := map[string]any{
		"paths": paths,
		"plan":  map[string]any{"week": "1", "focus": "Basics", "outcomes": "Hello world"},
		"tips":  "Quantify impact",
	}

	got := Recommend(payload, "Go Developer", 8)

	if len(got.LearningPaths) != 2 {
		t.Fatalf("expected learning paths from 'paths', got %+v", got.LearningPaths)
	}
	if got.LearningPaths[0].Title != "Foundations" || got.LearningPaths[0].Resources[0].URL != "https://go.dev/doc" {
		t.Fatalf("unexpected first path: %+v", got.LearningPaths[0])
	}
	if got.LearningPaths[1].Title != "Deep dive" || got.LearningPaths[1].Resources == nil {
		t.Fatalf("string path must become a titled path: %+v", got.LearningPaths[1])
	}

	if len(got.RoadmapWeeks) != 1 {
		t.Fatalf("single plan object must be wrapped, got %+v", got.RoadmapWeeks)
	}
	week := got.RoadmapWeeks[0]
	if week.Week != 1 || week.Focus != "Basics" || !reflect.DeepEqual(week.Outcomes, []string{"Hello world"}) {
		t.Fatalf("unexpected week: %+v", week)
	}

	if !reflect.DeepEqual(got.ResumeTips, []string{"Quantify impact"}) {
		t.Fatalf("unexpected tips: %v", got.ResumeTips)
	}
	if got.Role != "Go Developer" {
		t.Fatalf("expected requested role, got %q", got.Role)
	}
}

func TestRecommendFallsBackToGenericPlan(t *testing.T) {
	t.Parallel()

	got := Recommend(decode.Decode("not json"), "Data Analyst", 6)
	if len(got.RoadmapWeeks) != 6 {
		t.Fatalf("expected generic plan of 6 weeks, got %d", len(got.RoadmapWeeks))
	}
	if got.LearningPaths == nil || got.ResumeTips == nil {
		t.Fatalf("lists must never be nil: %+v", got)
	}
}

func TestRecommendNumbersWeeksByPosition(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"roadmap_weeks": []any{
		map[string]any{"week": "first", "focus": "a"},
		map[string]any{"focus_description": "b"},
	}}

	got := Recommend(payload, "x", 4)
	if len(got.RoadmapWeeks) != 2 || got.RoadmapWeeks[0].Week != 1 || got.RoadmapWeeks[1].Week != 2 {
		t.Fatalf("unexpected weeks: %+v", got.RoadmapWeeks)
	}
	if got.RoadmapWeeks[1].Focus != "b" {
		t.Fatalf("expected focus_description alias, got %+v", got.RoadmapWeeks[1])
	}
}

func TestQuizKeepsModelMatches(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"matches": []any{
		map[string]any{"role": "Data Analyst", "confidence": "85%", "reasoning": "SQL", "personality_fit": "Analytical", "skills_fit": []any{"SQL"}},
		map[string]any{"title": "Engineer", "confidence": 140},
		map[string]any{"confidence": 10},
	}}

	got := Quiz(payload, nil)
	if len(got.Matches) != 2 {
		t.Fatalf("expected entries without a role to be dropped, got %+v", got.Matches)
	}
	if got.Matches[0].Confidence != 85 || !reflect.DeepEqual(got.Matches[0].PersonalityFit, []string{"Analytical"}) {
		t.Fatalf("unexpected first match: %+v", got.Matches[0])
	}
	if got.Matches[1].Role != "Engineer" || got.Matches[1].Confidence != 100 {
		t.Fatalf("expected clamped confidence, got %+v", got.Matches[1])
	}
}

func TestQuizMergesHeuristicWhenEmpty(t *testing.T) {
	t.Parallel()

	answers := []any{"I build dashboards in Excel and Tableau"}
	expected := heuristic.MatchAnswers(answers)

	payloads := []any{
		map[string]any{"matches": []any{}},
		map[string]any{"unrelated": true},
		decode.Decode("garbage"),
		"a bare string",
	}

	for _, payload := range payloads {
		got := Quiz(payload, answers)
		if !reflect.DeepEqual(got.Matches, expected) {
			t.Fatalf("expected heuristic matches for %#v, got %+v", payload, got.Matches)
		}
	}
}

func TestQuizAcceptsBareArray(t *testing.T) {
	t.Parallel()

	got := Quiz([]any{map[string]any{"role": "Designer", "confidence": 70}}, nil)
	if len(got.Matches) != 1 || got.Matches[0].Role != "Designer" {
		t.Fatalf("unexpected matches: %+v", got.Matches)
	}
}

func TestQuestion(t *testing.T) {
	t.Parallel()

	wrapped := Question(map[string]any{"question": map[string]any{"id": "q1", "text": "Pick one", "options": []any{"A", "B"}}}, 1)
	if wrapped.Question.ID != "q1" || len(wrapped.Question.Options) != 2 {
		t.Fatalf("unexpected wrapped question: %+v", wrapped)
	}

	bare := Question(map[string]any{"text": "Pick one", "choices": "Only"}, 1)
	if bare.Question.Text != "Pick one" || !reflect.DeepEqual(bare.Question.Options, []string{"Only"}) {
		t.Fatalf("unexpected bare question: %+v", bare)
	}
	if bare.Question.ID == "" {
		t.Fatalf("expected generated id")
	}

	fallback := Question(decode.Decode("nope"), 2)
	if !reflect.DeepEqual(fallback.Question, heuristic.FallbackQuestion(2)) {
		t.Fatalf("expected built-in question, got %+v", fallback)
	}
}

func TestMarket(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"demand": map[string]any{"years": []any{2021.0, "2022", 2023.0}, "demand_index": []any{50.0, 120.0, -4.0, "n/a"}},
		"salary_by_region": []any{
			map[string]any{"region": "US", "avg_salary": "$85,000"},
			map[string]any{"avg_salary": 1.0},
		},
		"top_skills":  "SQL",
		"skill_gaps":  []any{"dropped"},
		"forecast":    map[string]any{"five_year_outlook": "Growing", "automation_risk_percent": "35", "notes": 7.0},
		"region":      "",
		"extra_field": true,
	}

	got := Market(payload, "Data Analyst", "global")

	if !reflect.DeepEqual(got.DemandTrend.Years, []int{2021, 2022, 2023}) {
		t.Fatalf("unexpected years: %v", got.DemandTrend.Years)
	}
	if !reflect.DeepEqual(got.DemandTrend.DemandIndex, []int{50, 100, 0}) {
		t.Fatalf("unexpected demand index: %v", got.DemandTrend.DemandIndex)
	}
	if len(got.SalaryByRegion) != 1 || got.SalaryByRegion[0].AvgSalary != 85000 {
		t.Fatalf("unexpected salaries: %+v", got.SalaryByRegion)
	}
	if !reflect.DeepEqual(got.TopSkills, []string{"SQL"}) {
		t.Fatalf("unexpected skills: %v", got.TopSkills)
	}
	if got.GrowthForecast.AutomationRiskPercent != 35 || got.GrowthForecast.Notes != "7" {
		t.Fatalf("unexpected forecast: %+v", got.GrowthForecast)
	}
	if got.Region != "global" || got.Role != "Data Analyst" {
		t.Fatalf("expected requested role/region, got %q/%q", got.Role, got.Region)
	}

	body, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(body), "skill_gaps") {
		t.Fatalf("skill_gaps must not leak into the response: %s", body)
	}
}

func TestCompareFillsRequestedRoles(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"roles": []any{
			map[string]any{"salary_range": map[string]any{"min": 1.0}, "automation_risk_percent": 250.0, "top_skills": []any{"Go"}},
		},
		"summary": "Both are fine",
	}

	got := Compare(payload, "Backend Developer", "Data Analyst")
	if len(got.Roles) != 2 {
		t.Fatalf("expected both roles, got %+v", got.Roles)
	}
	if got.Roles[0].Role != "Backend Developer" || got.Roles[0].AutomationRiskPercent != 100 {
		t.Fatalf("unexpected first profile: %+v", got.Roles[0])
	}
	if got.Roles[0].SalaryRange != `{"min":1}` {
		t.Fatalf("object salary must be stringified, got %q", got.Roles[0].SalaryRange)
	}
	if got.Roles[1].Role != "Data Analyst" || len(got.Roles[1].TopSkills) == 0 {
		t.Fatalf("missing profile must be filled from heuristics: %+v", got.Roles[1])
	}
	if got.Summary != "Both are fine" {
		t.Fatalf("unexpected summary: %q", got.Summary)
	}
}

func TestResume(t *testing.T) {
	t.Parallel()

	resume := "8 years of python and sql"

	payload := map[string]any{
		"ats_score_percent": "abc",
		"missing_keywords":  "Docker",
		"sections_feedback": map[string]any{"summary": "Tighten it"},
		"job_suggestions": []any{
			map[string]any{"title": "Analytics Engineer", "level": "Principal", "why_fit": "dbt"},
			"Data Engineer",
			map[string]any{"level": "mid"},
		},
	}

	got := Resume(payload, resume, "Data Analyst")
	if got.ATSScorePercent != 0 {
		t.Fatalf("non-numeric ats score must default to 0, got %d", got.ATSScorePercent)
	}
	if !reflect.DeepEqual(got.MissingKeywords, []string{"Docker"}) {
		t.Fatalf("unexpected keywords: %v", got.MissingKeywords)
	}
	if got.SectionsFeedback.Summary != "Tighten it" || got.SectionsFeedback.Education != "" {
		t.Fatalf("unexpected feedback: %+v", got.SectionsFeedback)
	}
	if len(got.JobSuggestions) != 2 {
		t.Fatalf("expected two suggestions, got %+v", got.JobSuggestions)
	}
	if got.JobSuggestions[0].Level != heuristic.LevelSenior {
		t.Fatalf("unknown level must be replaced by detected level, got %q", got.JobSuggestions[0].Level)
	}
	if got.TargetRole != "Data Analyst" {
		t.Fatalf("unexpected target role: %q", got.TargetRole)
	}
}

func TestResumeMergesHeuristicSuggestions(t *testing.T) {
	t.Parallel()

	resume := "Data professional with 10 years of experience. Skills: python, sql, tableau."
	got := Resume(decode.Decode("oops"), resume, "")

	if !reflect.DeepEqual(got.JobSuggestions, heuristic.SuggestJobs(resume, "")) {
		t.Fatalf("expected heuristic suggestions, got %+v", got.JobSuggestions)
	}
}

func TestRoadmap(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"job": "SRE",
		"weeks": []any{
			map[string]any{"week": 1.0, "skills": []any{" Linux ", "", "Networking", "Bash", "Go", "Terraform"}},
			map[string]any{"week": "two", "skills": []any{"dropped"}},
			map[string]any{"skills": []any{"no week"}},
			map[string]any{"week": "3", "skills": "Kubernetes"},
			"not an object",
		},
	}

	got := Roadmap(payload, "Site Reliability Engineer", 8)
	if got.Job != "SRE" {
		t.Fatalf("expected model job title, got %q", got.Job)
	}

	expected := []career.SkillWeek{
		{Week: 1, Skills: []string{"Linux", "Networking", "Bash", "Go"}},
		{Week: 3, Skills: []string{"Kubernetes"}},
	}
	if !reflect.DeepEqual(got.Weeks, expected) {
		t.Fatalf("unexpected weeks: %+v", got.Weeks)
	}
}

func TestRoadmapFallback(t *testing.T) {
	t.Parallel()

	got := Roadmap(decode.Decode("```json\n{broken\n```"), "Chef", 9)
	if got.Job != "Chef" || len(got.Weeks) != 9 {
		t.Fatalf("expected generic 9-week roadmap, got %+v", got)
	}
}

func TestFailedPayloadKeepsEveryKey(t *testing.T) {
	t.Parallel()

	failed := decode.Decode("total garbage")
	results := []any{
		Market(failed, "Chef", "global"),
		Compare(failed, "Chef", "Baker"),
		Recommend(failed, "Chef", 8),
		Resume(failed, "", "Chef"),
		Roadmap(failed, "Chef", 8),
		Quiz(failed, nil),
	}

	for _, r := range results {
		body, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal %T: %v", r, err)
		}
		if strings.Contains(string(body), "null") {
			t.Fatalf("%T must not contain null containers: %s", r, body)
		}
	}
}

func TestAliasesResolvePriority(t *testing.T) {
	t.Parallel()

	obj := map[string]any{"learning_path": []any{"b"}, "learning_paths": []any{}, "paths": []any{"c"}}
	got := recommendAliases.Resolve(obj)
	if !reflect.DeepEqual(got["learning_paths"], []any{"b"}) {
		t.Fatalf("empty canonical value must fall through to the next alias, got %v", got["learning_paths"])
	}
	if _, ok := got["resume_tips"]; ok {
		t.Fatalf("absent keys must stay absent")
	}
}

func TestRoadmapDropsWeeksOutsideRange(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"weeks": []any{
		map[string]any{"week": -3.0, "skills": "negative"},
		map[string]any{"week": 0.0, "skills": "zero"},
		map[string]any{"week": 2.0, "skills": "Docker"},
		map[string]any{"week": 8.0, "skills": "Helm"},
		map[string]any{"week": 999.0, "skills": "far"},
	}}

	got := Roadmap(payload, "Dev", 8)

	expected := []career.SkillWeek{
		{Week: 2, Skills: []string{"Docker"}},
		{Week: 8, Skills: []string{"Helm"}},
	}
	if !reflect.DeepEqual(got.Weeks, expected) {
		t.Fatalf("unexpected weeks: %+v", got.Weeks)
	}

	onlyBad := Roadmap(map[string]any{"weeks": []any{map[string]any{"week": 400.0, "skills": "x"}}}, "Dev", 8)
	if len(onlyBad.Weeks) != 8 || onlyBad.Weeks[0].Week != 1 {
		t.Fatalf("expected generic roadmap when every week is out of range, got %+v", onlyBad.Weeks)
	}
}

func TestRecommendRenumbersWeeksOutsideRange(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"roadmap_weeks": []any{
		map[string]any{"week": 400.0, "focus": "a"},
		map[string]any{"week": -1.0, "focus": "b"},
		map[string]any{"week": 3.0, "focus": "c"},
	}}

	got := Recommend(payload, "Dev", 8)
	weeks := make([]int, 0, len(got.RoadmapWeeks))
	for _, w := range got.RoadmapWeeks {
		weeks = append(weeks, w.Week)
	}
	if !reflect.DeepEqual(weeks, []int{1, 2, 3}) {
		t.Fatalf("unexpected week numbers: %v", weeks)
	}

	short := Recommend(map[string]any{"roadmap_weeks": []any{"a", "b", "c"}}, "Dev", 2)
	if len(short.RoadmapWeeks) != 2 {
		t.Fatalf("expected entries past the last week to be dropped, got %+v", short.RoadmapWeeks)
	}
}

func TestPercentSaturatesHugeNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  any
		expect int
	}{
		{input: 1e300, expect: 100},
		{input: "100000000000000000000000", expect: 100},
		{input: -1e300, expect: 0},
		{input: "42%", expect: 42},
		{input: "n/a", expect: 0},
	}

	for _, tt := range tests {
		if got := percent(tt.input); got != tt.expect {
			t.Fatalf("percent(%v): expected %d, got %d", tt.input, tt.expect, got)
		}
	}
}
