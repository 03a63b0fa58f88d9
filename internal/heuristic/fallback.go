package heuristic

import (
	"fmt"
	"strings"

	"github.com/spigell/careerlens/internal/career"
)

var questionBank = []career.Question{
	{
		ID:      "start_interest",
		Text:    "If you could have a superpower that helped your career, what would it be?",
		Options: []string{"Instantly master any skill", "Perfect networking", "Unlimited energy", "Seeing future trends"},
	},
	{
		ID:      "work_style",
		Text:    "Which kind of task makes you lose track of time?",
		Options: []string{"Digging into data and spreadsheets", "Designing how something looks and feels", "Building and fixing software", "Organising people and plans"},
	},
	{
		ID:      "tools_curiosity",
		Text:    "Which toolbox would you open first?",
		Options: []string{"Python, SQL and Tableau", "Figma and a sketchbook", "React and TypeScript", "Docker, AWS and Terraform"},
	},
	{
		ID:      "problem_type",
		Text:    "What kind of problem do you enjoy solving most?",
		Options: []string{"Finding patterns in numbers", "Making products easier to use", "Designing reliable systems and APIs", "Gathering requirements from stakeholders"},
	},
	{
		ID:      "team_role",
		Text:    "In a team project you usually end up...",
		Options: []string{"Running the analysis", "Sketching the prototype", "Writing the backend code", "Keeping everyone on schedule"},
	},
	{
		ID:      "learning_preference",
		Text:    "How do you prefer to learn something new?",
		Options: []string{"Hands-on projects", "Structured courses", "Reading documentation", "Learning from mentors"},
	},
	{
		ID:      "impact",
		Text:    "What impact do you want your work to have?",
		Options: []string{"Better decisions through data", "Delightful user experiences", "Systems that scale to millions", "Teams that deliver on time"},
	},
	{
		ID:      "environment",
		Text:    "Which work environment suits you best?",
		Options: []string{"Quiet deep work", "Collaborative studio", "Fast-paced startup", "Large structured organisation"},
	},
	{
		ID:      "automation",
		Text:    "Which would you rather automate?",
		Options: []string{"Weekly reports and dashboards", "Design handoff to developers", "Deployments with CI/CD", "Test suites with Selenium or Cypress"},
	},
	{
		ID:      "next_step",
		Text:    "What would you like to explore next?",
		Options: []string{"Machine learning", "Cloud infrastructure", "User research", "Cyber security"},
	},
}

// FallbackQuestion returns the n-th (1-based) question of the built-in quiz.
func FallbackQuestion(n int) career.Question {
	if n < 1 {
		n = 1
	}
	q := questionBank[(n-1)%len(questionBank)]
	return career.Question{ID: q.ID, Text: q.Text, Options: clone(q.Options)}
}

// GenericSkillWeeks is the roadmap used when the model output is unusable.
func GenericSkillWeeks(weeks int) []career.SkillWeek {
	out := make([]career.SkillWeek, 0, weeks)
	for i := 1; i <= weeks; i++ {
		out = append(out, career.SkillWeek{Week: i, Skills: []string{"Research role", "Core fundamentals"}})
	}
	return out
}

// GenericPlan builds a three phase learning plan for the role.
func GenericPlan(role string, weeks int) []career.RoadmapWeek {
	role = strings.TrimSpace(role)
	if role == "" {
		role = "your target role"
	}
	skills := strings.Join(SkillsFor(role), ", ")

	out := make([]career.RoadmapWeek, 0, weeks)
	for i := 1; i <= weeks; i++ {
		var focus string
		var outcomes []string
		switch {
		case i*3 <= weeks:
			focus = fmt.Sprintf("Fundamentals for %s: %s.", role, skills)
			outcomes = []string{"Summarise the core concepts", "Complete introductory exercises"}
		case i*3 <= weeks*2:
			focus = fmt.Sprintf("Applied practice for %s with a small project.", role)
			outcomes = []string{"Ship one practice project", "Document what you learned"}
		default:
			focus = fmt.Sprintf("Portfolio and job readiness for %s.", role)
			outcomes = []string{"Polish a portfolio piece", "Tailor your resume to the role"}
		}
		out = append(out, career.RoadmapWeek{Week: i, Focus: focus, Outcomes: outcomes})
	}
	return out
}
