package guidance

import (
	"math"
	"strconv"
	"strings"

	"github.com/spigell/careerlens/internal/ai"
)

const (
	defaultRegion = "global"

	defaultRecommendWeeks = 8
	maxRecommendWeeks     = 52

	defaultRoadmapWeeks = 10
	minRoadmapWeeks     = 8
	maxRoadmapWeeks     = 12

	quizLength = 10
)

type QuizRequest struct {
	Answers []any `json:"answers"`
}

type NextQuestionRequest struct {
	History []ai.Message `json:"history" validate:"dive"`
}

type MarketRequest struct {
	Role   string `json:"role" validate:"notblank"`
	Region string `json:"region"`
}

type RecommendRequest struct {
	Role       string `json:"role" validate:"notblank"`
	Background string `json:"background"`
	// Weeks is loosely typed: clients send numbers, numeric strings or null.
	Weeks any `json:"weeks"`
}

type CompareRequest struct {
	RoleA  string `json:"role_a" validate:"notblank"`
	RoleB  string `json:"role_b" validate:"notblank"`
	Region string `json:"region"`
}

type ResumeRequest struct {
	ResumeText     string `json:"resume_text" validate:"notblank"`
	TargetRole     string `json:"target_role"`
	JobDescription string `json:"job_description"`
}

type RoadmapRequest struct {
	Job   string `json:"job" validate:"notblank"`
	Weeks any    `json:"weeks"`
}

// RecommendWeeks returns v as a week count in 1..52, or 8 when v is missing,
// not an integer or out of range.
func RecommendWeeks(v any) int {
	n, ok := wholeNumber(v)
	if !ok || n < 1 || n > maxRecommendWeeks {
		return defaultRecommendWeeks
	}
	return n
}

// RoadmapWeeks returns v clamped to 8..12; missing or invalid input yields 10.
func RoadmapWeeks(v any) int {
	n, ok := wholeNumber(v)
	if !ok || n == 0 {
		return defaultRoadmapWeeks
	}
	return max(minRoadmapWeeks, min(maxRoadmapWeeks, n))
}

// wholeNumber truncates JSON numbers and parses integer strings.
func wholeNumber(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return int(val), true
	case int:
		return val, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		return n, err == nil
	default:
		return 0, false
	}
}

func regionOrDefault(region string) string {
	if region = strings.TrimSpace(region); region == "" {
		return defaultRegion
	}
	return region
}
