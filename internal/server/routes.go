package server

import (
	"net/http"

	"github.com/spf13/afero"
)

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/",
		http.FileServer(afero.NewHttpFs(s.staticFs).Dir(s.staticDir))))

	mux.HandleFunc("GET /api/generators", s.handleGenerators)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/outputs", s.handleListOutputs)
	mux.HandleFunc("GET /api/outputs/{filename}", s.handleDownloadOutput)
	mux.HandleFunc("GET /api/status", s.handleStatus)

	// Composed content
	mux.HandleFunc("GET /api/article/inputs", s.handleArticleInputs)
	mux.HandleFunc("POST /api/article/generate", s.handleGenerateArticle)
	mux.HandleFunc("POST /api/about/generate", s.handleGenerateAbout)

	return s.requestIDMiddleware(s.accessLogMiddleware(s.recoverMiddleware(s.corsMiddleware(mux))))
}
