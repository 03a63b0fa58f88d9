// Package server exposes the guidance operations over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/spigell/careerlens/internal/career"
	"github.com/spigell/careerlens/internal/guidance"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8000

	defaultReadTimeout    = 15 * time.Second
	defaultWriteTimeout   = 120 * time.Second
	defaultShutdown       = 10 * time.Second
	defaultMaxUploadBytes = 5 << 20
)

// Guide is the set of guidance operations served by the API.
type Guide interface {
	Ping(ctx context.Context) career.PingStatus
	Quiz(ctx context.Context, req guidance.QuizRequest) career.QuizResult
	StartQuiz(ctx context.Context) career.QuestionResult
	NextQuestion(ctx context.Context, req guidance.NextQuestionRequest) career.QuestionResult
	Market(ctx context.Context, req guidance.MarketRequest) career.MarketInsights
	Recommend(ctx context.Context, req guidance.RecommendRequest) career.Recommendation
	Compare(ctx context.Context, req guidance.CompareRequest) career.Comparison
	AnalyzeResume(ctx context.Context, req guidance.ResumeRequest) career.ResumeAnalysis
	Roadmap(ctx context.Context, req guidance.RoadmapRequest) career.Roadmap
}

type Config struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed-origins"`
	ReadTimeout    time.Duration `mapstructure:"read-timeout"`
	WriteTimeout   time.Duration `mapstructure:"write-timeout"`
	// SlowRequest marks slower requests at warn level in the access log.
	SlowRequest    time.Duration `mapstructure:"slow-request"`
	MaxUploadBytes int64         `mapstructure:"max-upload-bytes"`
	// StaticDir serves the web pages when set.
	StaticDir string `mapstructure:"static-dir"`
}

type Server struct {
	cfg    Config
	guide  Guide
	logger *zap.Logger
	mux    *chi.Mux
}

func New(guide Guide, log *zap.Logger, cfg Config) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}

	s := &Server{cfg: cfg, guide: guide, logger: log}
	s.mux = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.mux,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdown)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
