package server

import (
	"encoding/json"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/josephgoksu/monadgen/internal/config"
	"github.com/josephgoksu/monadgen/internal/generation"
	"github.com/josephgoksu/monadgen/internal/generators"
	"github.com/spf13/afero"
)

const maxBodyBytes = 1 << 20

// handleIndex serves the single-page front-end.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := afero.ReadFile(s.staticFs, filepath.Join(s.staticDir, "index.html"))
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, "index.html not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

// handleGenerators lists generators grouped by platform and category.
func (s *Server) handleGenerators(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, http.StatusOK, s.registry.Grouped())
}

// handleGenerate runs a single generator and persists both formats.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !s.decode(w, r, &req) {
		return
	}

	g, err := s.registry.Lookup(req.GeneratorType)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Unknown generator: "+req.GeneratorType)
		return
	}

	job := generators.Job(g)
	out, err := s.orch.Run(r.Context(), job, req.options())
	if err != nil {
		s.writeGenerationError(w, r, err)
		return
	}

	res := out.Result
	writeAPIJSON(w, http.StatusOK, GenerateResponse{
		Status:      "success",
		Message:     out.Message,
		OutputFiles: out.Artifacts,
		Timestamp:   s.timestamp(),
		TokensUsed:  res.Usage.TotalTokens(),
		Cost:        res.Usage.Cost,
	})
}

// handleListOutputs lists persisted artifacts, newest first.
func (s *Server) handleListOutputs(w http.ResponseWriter, r *http.Request) {
	files, err := s.store.List()
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeAPIJSON(w, http.StatusOK, OutputsResponse{Files: files})
}

// handleDownloadOutput returns one artifact as an attachment.
func (s *Server) handleDownloadOutput(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")
	data, err := s.store.Open(name)
	switch {
	case errors.Is(err, generation.ErrInvalidArtifact):
		s.writeError(w, r, http.StatusBadRequest, "invalid file name")
		return
	case errors.Is(err, fs.ErrNotExist):
		s.writeError(w, r, http.StatusNotFound, "File not found")
		return
	case err != nil:
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	ctype := "text/markdown; charset=utf-8"
	if filepath.Ext(name) == ".json" {
		ctype = "application/json"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	_, _ = w.Write(data)
}

// handleArticleInputs lists stored demographics and styles.
func (s *Server) handleArticleInputs(w http.ResponseWriter, r *http.Request) {
	inputs, err := generators.LoadInputs(s.store)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeAPIJSON(w, http.StatusOK, inputs)
}

// handleGenerateArticle writes an article for a stored demographic and style.
func (s *Server) handleGenerateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Missing required fields: demographic_label, style_name, topic")
		return
	}

	g, err := s.registry.Lookup(generators.IDSubstackArticle)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	out, err := s.orch.Run(r.Context(), generators.Job(g), req.options())
	if err != nil {
		s.writeGenerationError(w, r, err)
		return
	}

	words, _ := out.Result.Field("actual_word_count")
	writeAPIJSON(w, http.StatusOK, ArticleResponse{
		Status:            "success",
		Message:           out.Message,
		OutputFiles:       out.Artifacts,
		Timestamp:         s.timestamp(),
		WordCount:         words,
		TargetDemographic: req.DemographicLabel,
		WritingStyle:      req.StyleName,
	})
}

// handleGenerateAbout writes an About page, targeted when inputs are named.
func (s *Server) handleGenerateAbout(w http.ResponseWriter, r *http.Request) {
	var req AboutRequest
	if !s.decode(w, r, &req) {
		return
	}

	g, err := s.registry.Lookup(generators.IDSubstackAbout)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	out, err := s.orch.Run(r.Context(), generators.Job(g), req.options())
	if err != nil {
		s.writeGenerationError(w, r, err)
		return
	}

	res := out.Result
	words, _ := res.Field("word_count")
	usedDemo, _ := res.Field("used_demographic")
	usedStyle, _ := res.Field("used_style")
	writeAPIJSON(w, http.StatusOK, AboutResponse{
		Status:          "success",
		Message:         out.Message,
		OutputFiles:     out.Artifacts,
		Timestamp:       s.timestamp(),
		WordCount:       words,
		UsedDemographic: usedDemo == true,
		UsedStyle:       usedStyle == true,
	})
}

// handleStatus reports liveness and whether credentials are configured.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	keySet := true
	if s.orch.Preflight != nil {
		keySet = s.orch.Preflight.CheckCredentials() == nil
	}
	writeAPIJSON(w, http.StatusOK, StatusResponse{
		Status:              "operational",
		Timestamp:           s.timestamp(),
		GeneratorsAvailable: s.registry.Len(),
		OpenAIKeySet:        keySet,
		Provider:            s.provider,
		Version:             s.version,
	})
}

func (s *Server) timestamp() string {
	return s.now().Format(time.RFC3339)
}

// decodeBody reads a bounded JSON body into v.
func (s *Server) decodeBody(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

// decode reads and validates the body, replying 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := s.decodeBody(r, v); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// statusFor maps a generation error onto an HTTP status.
func statusFor(err error) int {
	var missing *config.MissingCredentialError
	switch {
	case errors.As(err, &missing):
		return http.StatusServiceUnavailable
	case errors.Is(err, generators.ErrUnknownGenerator), errors.Is(err, generators.ErrMissingInput):
		return http.StatusBadRequest
	case errors.Is(err, generators.ErrInputNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		detail = "Generation error: " + detail
	}
	s.writeError(w, r, status, detail)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeAPIJSON(w, status, ErrorResponse{Detail: detail, RequestID: RequestID(r.Context())})
}

func writeAPIJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
