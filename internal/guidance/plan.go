package guidance

import (
	"context"
	"strconv"
	"strings"

	"github.com/spigell/careerlens/internal/career"
	"github.com/spigell/careerlens/internal/normalize"
)

// Recommend builds a learning plan with weekly milestones and resume tips.
func (s *Service) Recommend(ctx context.Context, req RecommendRequest) career.Recommendation {
	role := strings.TrimSpace(req.Role)
	weeks := RecommendWeeks(req.Weeks)

	payload, degraded := s.ask(ctx, whereRecommend, render(promptRecommend, map[string]string{
		"ROLE":       role,
		"BACKGROUND": strings.TrimSpace(req.Background),
		"WEEKS":      strconv.Itoa(weeks),
	}))

	result := normalize.Recommend(payload, role, weeks)
	result.Degradation = degraded
	return result
}

// Roadmap builds a weekly skill roadmap of 8 to 12 weeks.
func (s *Service) Roadmap(ctx context.Context, req RoadmapRequest) career.Roadmap {
	job := strings.TrimSpace(req.Job)
	weeks := RoadmapWeeks(req.Weeks)

	payload, degraded := s.ask(ctx, whereRoadmap, render(promptRoadmap, map[string]string{
		"JOB":   job,
		"WEEKS": strconv.Itoa(weeks),
	}))

	result := normalize.Roadmap(payload, job, weeks)
	result.Degradation = degraded
	return result
}
