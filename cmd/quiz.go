package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/careerlens/internal/ai"
	"github.com/spigell/careerlens/internal/career"
	"github.com/spigell/careerlens/internal/guidance"
	"github.com/spigell/careerlens/internal/logger"
)

const (
	optionOther  = "Other (type your own answer)"
	optionFinish = "Finish quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the adaptive career quiz in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		questions, _ := cmd.Flags().GetInt("questions")
		quiz(questions)
	},
}

func init() {
	rootCmd.AddCommand(quizCmd)

	quizCmd.Flags().IntP("questions", "n", 10, "maximum number of questions to ask")
}

func quiz(questions int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	svc, err := newService(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating the guidance service", zap.Error(err))
	}

	history, answers, err := askQuestions(ctx, svc, questions)
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, context.Canceled) {
			logger.Info("quiz aborted")
			return
		}
		logger.Fatal("running the quiz", zap.Error(err))
	}

	logger.Debug("quiz finished", zap.Int("answers", len(answers)), zap.Int("messages", len(history)))

	if len(answers) == 0 {
		fmt.Println("No answers given, nothing to match.")
		return
	}

	result := svc.Quiz(ctx, guidance.QuizRequest{Answers: answers})
	if result.Degraded() {
		logger.Warn("model unavailable, showing keyword matches", zap.String("error", result.Error))
	}

	printMatches(result.Matches)
}

// askQuestions runs the adaptive loop until the limit is reached or the user finishes.
func askQuestions(ctx context.Context, svc *guidance.Service, limit int) ([]ai.Message, []any, error) {
	var (
		history []ai.Message
		answers []any
	)

	for len(answers) < limit {
		if err := ctx.Err(); err != nil {
			return history, answers, err
		}

		var result career.QuestionResult
		if len(history) == 0 {
			result = svc.StartQuiz(ctx)
		} else {
			result = svc.NextQuestion(ctx, guidance.NextQuestionRequest{History: history})
		}

		question := result.Question
		answer, err := askOne(guidance.QuestionNumber(history), question)
		if err != nil {
			return history, answers, err
		}
		if answer == "" {
			break
		}

		history = append(history,
			ai.Message{Role: ai.RoleAssistant, Content: question.Text},
			ai.Message{Role: ai.RoleUser, Content: answer},
		)
		answers = append(answers, answer)
	}

	return history, answers, nil
}

// askOne returns an empty answer when the user chooses to finish.
func askOne(number int, question career.Question) (string, error) {
	items := make([]string, 0, len(question.Options)+2)
	items = append(items, question.Options...)
	items = append(items, optionOther, optionFinish)

	sel := promptui.Select{
		Label: fmt.Sprintf("Q%d. %s", number, question.Text),
		Items: items,
		Size:  len(items),
	}

	_, choice, err := sel.Run()
	if err != nil {
		return "", err
	}

	switch choice {
	case optionFinish:
		return "", nil
	case optionOther:
		prompt := promptui.Prompt{
			Label: "Your answer",
			Validate: func(input string) error {
				if strings.TrimSpace(input) == "" {
					return errors.New("answer cannot be empty")
				}
				return nil
			},
		}

		text, err := prompt.Run()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(text), nil
	default:
		return choice, nil
	}
}

func printMatches(matches []career.RoleMatch) {
	fmt.Println()
	fmt.Println("Your best fitting roles:")
	for i, m := range matches {
		fmt.Printf("%d. %s (%d%%)\n", i+1, m.Role, m.Confidence)
		if m.Reasoning != "" {
			fmt.Printf("   %s\n", m.Reasoning)
		}
		if len(m.PersonalityFit) > 0 {
			fmt.Printf("   personality: %s\n", strings.Join(m.PersonalityFit, ", "))
		}
		if len(m.SkillsFit) > 0 {
			fmt.Printf("   skills: %s\n", strings.Join(m.SkillsFit, ", "))
		}
	}
}
