package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/spigell/careerlens/internal/guidance"
	"github.com/spigell/careerlens/internal/resumefile"
)

const formFile = "file"

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.guide.Ping(r.Context()))
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	req, err := bindJSON[guidance.QuizRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "quiz", err)
		return
	}
	writeJSON(w, http.StatusOK, s.guide.Quiz(r.Context(), req))
}

func (s *Server) handleQuizStart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.guide.StartQuiz(r.Context()))
}

func (s *Server) handleQuizNext(w http.ResponseWriter, r *http.Request) {
	req, err := bindJSON[guidance.NextQuestionRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "adaptive_quiz_next", err)
		return
	}
	writeJSON(w, http.StatusOK, s.guide.NextQuestion(r.Context(), req))
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	req, err := bindJSON[guidance.MarketRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "market", err)
		return
	}
	writeJSON(w, http.StatusOK, s.guide.Market(r.Context(), req))
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	req, err := bindJSON[guidance.RecommendRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "recommend", err)
		return
	}
	writeJSON(w, http.StatusOK, s.guide.Recommend(r.Context(), req))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	req, err := bindJSON[guidance.CompareRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "compare", err)
		return
	}
	writeJSON(w, http.StatusOK, s.guide.Compare(r.Context(), req))
}

func (s *Server) handleResumeAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := bindJSON[guidance.ResumeRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "resume", err)
		return
	}
	writeJSON(w, http.StatusOK, s.guide.AnalyzeResume(r.Context(), req))
}

func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	req, err := bindJSON[guidance.RoadmapRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "roadmap", err)
		return
	}
	writeJSON(w, http.StatusOK, s.guide.Roadmap(r.Context(), req))
}

type extractResponse struct {
	Text string `json:"text"`
}

// handleResumeExtract turns an uploaded pdf, docx or text resume into plain text.
func (s *Server) handleResumeExtract(w http.ResponseWriter, r *http.Request) {
	const where = "resume_extract"

	tooLarge := fmt.Errorf("upload exceeds %d bytes", s.cfg.MaxUploadBytes)
	if r.ContentLength > s.cfg.MaxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, where, tooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	file, header, err := r.FormFile(formFile)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, where, tooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, where, fmt.Errorf("multipart field %q is required", formFile))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, where, fmt.Errorf("read upload: %w", err))
		return
	}

	text, err := resumefile.Extract(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.logger.Debug("resume extraction failed", zap.String("filename", header.Filename), zap.Error(err))
		status := http.StatusUnprocessableEntity
		if errors.Is(err, resumefile.ErrUnsupported) {
			status = http.StatusUnsupportedMediaType
		}
		writeError(w, status, where, err)
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{Text: text})
}
