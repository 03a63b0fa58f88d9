package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// pages maps the pretty web routes to files in the static directory.
var pages = map[string]string{
	"/":          "index.html",
	"/quiz":      "quiz.html",
	"/insights":  "insights.html",
	"/recommend": "recommend.html",
	"/compare":   "compare.html",
	"/resume":    "resume.html",
	"/grow":      "grow.html",
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.logger, s.cfg.SlowRequest))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", s.handlePing)
		r.Post("/quiz", s.handleQuiz)
		r.Post("/adaptive_quiz/start", s.handleQuizStart)
		r.Post("/adaptive_quiz/next", s.handleQuizNext)
		r.Post("/market", s.handleMarket)
		r.Post("/recommend", s.handleRecommend)
		r.Post("/compare", s.handleCompare)
		r.Post("/resume/analyze", s.handleResumeAnalyze)
		r.Post("/resume/extract", s.handleResumeExtract)
		r.Post("/roadmap", s.handleRoadmap)
	})

	if s.cfg.StaticDir != "" {
		s.mountStatic(r, s.cfg.StaticDir)
	}

	return r
}

func (s *Server) mountStatic(r chi.Router, dir string) {
	files := http.FileServer(http.Dir(dir))
	r.Handle("/static/*", http.StripPrefix("/static", files))

	for route, page := range pages {
		path := filepath.Join(dir, page)
		r.Get(route, func(w http.ResponseWriter, r *http.Request) {
			if _, err := os.Stat(path); err != nil {
				writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
				return
			}
			http.ServeFile(w, r, path)
		})
	}
}
