package guidance

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/spigell/careerlens/internal/ai"
	"github.com/spigell/careerlens/internal/career"
	"github.com/spigell/careerlens/internal/normalize"
)

// Quiz maps quiz answers to the best fitting roles. The keyword heuristic
// fills in when the model gives no usable matches.
func (s *Service) Quiz(ctx context.Context, req QuizRequest) career.QuizResult {
	answers := req.Answers
	if answers == nil {
		answers = []any{}
	}

	encoded, err := json.Marshal(answers)
	if err != nil {
		encoded = []byte("[]")
	}

	payload, degraded := s.ask(ctx, whereQuiz, render(promptQuiz, map[string]string{
		"ANSWERS": string(encoded),
	}))

	result := normalize.Quiz(payload, answers)
	result.Degradation = degraded
	return result
}

// StartQuiz returns the first adaptive quiz question.
func (s *Service) StartQuiz(ctx context.Context) career.QuestionResult {
	payload, degraded := s.ask(ctx, whereAdaptiveStart, render(promptAdaptiveStart, nil))

	result := normalize.Question(payload, 1)
	result.Degradation = degraded
	return result
}

// NextQuestion asks for the next adaptive question given the conversation so
// far. Each answered question adds two messages to the history.
func (s *Service) NextQuestion(ctx context.Context, req NextQuestionRequest) career.QuestionResult {
	number := QuestionNumber(req.History)
	vars := map[string]string{
		"NUMBER": strconv.Itoa(number),
		"TOTAL":  strconv.Itoa(quizLength),
	}

	messages := make([]ai.Message, 0, len(req.History)+2)
	messages = append(messages, req.History...)
	messages = append(messages,
		ai.Message{Role: ai.RoleSystem, Content: render(promptAdaptiveNext, vars)},
		ai.Message{Role: ai.RoleUser, Content: render(promptAdaptiveNextUser, vars)},
	)

	payload, degraded := s.chat(ctx, whereAdaptiveNext, messages)

	result := normalize.Question(payload, number)
	result.Degradation = degraded
	return result
}

// QuestionNumber is the 1-based number of the question that follows history.
func QuestionNumber(history []ai.Message) int {
	return len(history)/2 + 1
}
