package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/minatolab/kouhou/internal/models"
	"go.uber.org/zap"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.cfg.Server.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20) // form overhead slack

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	if int64(len(data)) > maxBytes {
		s.respondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds max size (%d bytes)", maxBytes))
		return
	}

	name := filepath.Base(header.Filename)
	if title := r.FormValue("title"); title != "" {
		name = title
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))

	s.logger.Debug("upload request", zap.String("name", name), zap.Int("bytes", len(data)))
	info, err := s.engine.LoadDocument(r.Context(), name, data, ext)
	if err != nil {
		s.logger.Error("upload failed", zap.String("name", name), zap.Error(err))
		s.respondEngineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	info, err := s.engine.Info()
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	sections, err := s.engine.Sections()
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	out := make([]sectionResponse, len(sections))
	for i := range sections {
		out[i] = newSectionResponse(&sections[i])
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"document": info,
		"sections": out,
	})
}

func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid section index")
		return
	}
	sec, err := s.engine.Section(i)
	if err != nil {
		if errors.Is(err, models.ErrNoDocument) {
			s.respondEngineError(w, err)
			return
		}
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, newSectionResponse(sec))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", query.Query), zap.Int("limit", query.Limit))
	response, err := s.engine.Search(r.Context(), &query)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"document_loaded": false,
		"config": map[string]interface{}{
			"ngram_size":        s.cfg.Search.NGramSize,
			"max_section_chars": s.cfg.Search.MaxSectionChars,
			"default_limit":     s.cfg.Search.DefaultLimit,
		},
	}
	if info, err := s.engine.Info(); err == nil {
		resp["document_loaded"] = true
		resp["document"] = info
		resp["vocab_size"] = s.engine.VocabSize()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sectionResponse is the wire form of a section: index, display title, text.
type sectionResponse struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

func newSectionResponse(sec *models.Section) sectionResponse {
	return sectionResponse{Index: sec.Index, Title: sec.DisplayTitle(), Text: sec.Text}
}

// respondEngineError maps the engine's sentinel errors onto HTTP statuses:
// empty query or degenerate document → 400/422, no active document → 404.
func (s *Server) respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyQuery):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNoDocument):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrEmptyDocument), errors.Is(err, models.ErrEmptyVocabulary):
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
