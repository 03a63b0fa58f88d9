// Package guidance runs the career guidance operations: it renders a prompt,
// calls the configured model, decodes and normalizes the reply and caches the
// cacheable results. Model and decode failures never surface as errors; the
// caller always gets a complete response, annotated when it is degraded.
package guidance

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/careerlens/internal/ai"
	"github.com/spigell/careerlens/internal/cache"
	"github.com/spigell/careerlens/internal/career"
	"github.com/spigell/careerlens/internal/decode"
	"github.com/spigell/careerlens/internal/logger"
	"github.com/spigell/careerlens/internal/utils"
)

const (
	whereQuiz          = "quiz"
	whereAdaptiveStart = "adaptive_quiz_start"
	whereAdaptiveNext  = "adaptive_quiz_next"
	whereMarket        = "market"
	whereRecommend     = "recommend"
	whereCompare       = "compare"
	whereResume        = "resume"
	whereRoadmap       = "roadmap"

	DefaultTimeout      = 60 * time.Second
	DefaultMarketTTL    = time.Hour
	DefaultCompareTTL   = time.Hour
	DefaultMaxLogLength = 200
)

type Config struct {
	// Timeout bounds a single model call.
	Timeout      time.Duration
	MarketTTL    time.Duration
	CompareTTL   time.Duration
	MaxLogLength int
}

type Service struct {
	gen    ai.Generator
	cache  *cache.Cache
	logger *zap.Logger
	cfg    Config
}

// New returns a Service. Zero config values are replaced by defaults and a nil
// cache disables caching.
func New(gen ai.Generator, c *cache.Cache, log *zap.Logger, cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MarketTTL <= 0 {
		cfg.MarketTTL = DefaultMarketTTL
	}
	if cfg.CompareTTL <= 0 {
		cfg.CompareTTL = DefaultCompareTTL
	}
	if cfg.MaxLogLength <= 0 {
		cfg.MaxLogLength = DefaultMaxLogLength
	}

	return &Service{
		gen:    gen,
		cache:  c,
		logger: logger.ForModel(log, gen.Provider(), gen.Model()),
		cfg:    cfg,
	}
}

// Ping checks that the model provider answers.
func (s *Service) Ping(ctx context.Context) career.PingStatus {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if err := s.gen.Ping(ctx); err != nil {
		s.logger.Warn("ai connectivity check failed", zap.Error(err))
		return career.PingStatus{OK: false, Error: err.Error()}
	}

	s.logger.Debug("ai connectivity check succeeded")
	return career.PingStatus{OK: true}
}

// ask sends a single prompt and decodes the reply.
func (s *Service) ask(ctx context.Context, where, prompt string) (any, career.Degradation) {
	log := logger.ForEndpoint(s.logger, where)
	log.Debug("model request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.cfg.MaxLogLength)),
	)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	text, err := s.gen.Generate(ctx, prompt)
	return s.decodeReply(log, where, text, err)
}

// chat sends a conversation and decodes the reply.
func (s *Service) chat(ctx context.Context, where string, messages []ai.Message) (any, career.Degradation) {
	log := logger.ForEndpoint(s.logger, where)
	log.Debug("model chat request", zap.Int("messages", len(messages)))

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	text, err := s.gen.Chat(ctx, messages)
	return s.decodeReply(log, where, text, err)
}

func (s *Service) decodeReply(log *zap.Logger, where, text string, err error) (any, career.Degradation) {
	if err != nil {
		log.Warn("model request failed", zap.Error(err))
		return nil, career.Degradation{Error: err.Error(), Where: where}
	}

	log.Debug("model response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
		zap.String("response_preview", utils.TruncateForLog(text, s.cfg.MaxLogLength)),
	)

	payload := decode.Decode(text)
	if decode.Failed(payload) {
		log.Warn("model reply is not valid json", zap.String("raw", utils.TruncateForLog(text, s.cfg.MaxLogLength)))
		return payload, career.Degradation{Error: decode.ErrInvalidJSON, Where: where}
	}

	return payload, career.Degradation{}
}

// cached returns the value stored under key when it has type T.
func cached[T any](c *cache.Cache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
