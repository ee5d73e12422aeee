package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/praline/internal/blob"
	"github.com/example/praline/internal/catalog"
	"github.com/example/praline/internal/config"
	"github.com/example/praline/internal/swaggerui"
)

type Server struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	blobs   *blob.Store
	logger  *slog.Logger
}

var (
	openapiOnce sync.Once
	openapiData []byte
	openapiErr  error
)

func loadOpenAPI() ([]byte, error) {
	openapiOnce.Do(func() {
		path := filepath.Clean("openapi.yaml")
		openapiData, openapiErr = os.ReadFile(path)
	})
	return openapiData, openapiErr
}

func NewRouter(cfg *config.Config, cat *catalog.Catalog, blobs *blob.Store, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	s := &Server{cfg: cfg, catalog: cat, blobs: blobs, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(loggingMiddleware(logger))
	r.Use(metricsMiddleware)

	if len(cfg.CORSAllowedOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Accept"},
			AllowCredentials: false,
		})
		r.Use(c.Handler)
	}

	r.Get("/healthz", s.GetHealthz)
	r.Get("/readyz", s.GetReadyz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get(cfg.OpenAPIPath, s.serveOpenAPI)
	r.Mount(cfg.SwaggerUIPath, swaggerui.Handler(cfg.OpenAPIPath))

	wrapper := ServerInterfaceWrapper{Handler: s, ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
	}}

	r.Post("/images/album/{album}", wrapper.CreateImage)
	r.Get("/images/album/{album}", wrapper.ListAlbum)
	r.Get("/images/album/{album}/starred", wrapper.GetStarred)
	r.Patch("/images/album/{album}/starred", wrapper.SetStarred)
	r.Get("/images/{id}", wrapper.GetImage)
	r.Delete("/images/{id}", wrapper.DeleteImage)

	return r
}

func (s *Server) GetHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Health{Status: Ok})
}

func (s *Server) GetReadyz(w http.ResponseWriter, _ *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.catalog.Ping(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", "database unreachable", map[string]any{"error": err.Error()})
		return
	}
	if err := s.blobs.IsWritable(); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", "storage not writable", map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Health{Status: Ok})
}

func (s *Server) serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	data, err := loadOpenAPI()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "unable to load openapi.yaml", map[string]any{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) CreateImage(w http.ResponseWriter, r *http.Request, album AlbumId) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "failed to parse multipart", map[string]any{"error": err.Error()})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "file is required", nil)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "upload has no content type", nil)
		return
	}
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusNotAcceptable, "invalid_file_type", "upload must be an image", map[string]any{"contentType": contentType})
		return
	}

	img, err := s.catalog.CreateImage(r.Context(), album, contentType, file, s.cfg.MaxUploadBytes)
	if err != nil {
		if errors.Is(err, blob.ErrTooLarge) {
			writeError(w, http.StatusBadRequest, "upload_failed", "upload too large", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "failed to persist image", map[string]any{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, toAPIImage(img))
}

func (s *Server) ListAlbum(w http.ResponseWriter, r *http.Request, album AlbumId) {
	images, err := s.catalog.ListAlbum(r.Context(), album)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to list album", map[string]any{"error": err.Error()})
		return
	}
	resp := make([]Image, 0, len(images))
	for i := range images {
		resp = append(resp, toAPIImage(&images[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) GetImage(w http.ResponseWriter, r *http.Request, id ImageId) {
	content, err := s.catalog.GetImage(r.Context(), id)
	if err != nil {
		s.writeContentError(w, err, "image")
		return
	}
	writeContent(w, content)
}

func (s *Server) GetStarred(w http.ResponseWriter, r *http.Request, album AlbumId) {
	content, err := s.catalog.GetStarred(r.Context(), album)
	if err != nil {
		s.writeContentError(w, err, "starred image")
		return
	}
	writeContent(w, content)
}

func (s *Server) SetStarred(w http.ResponseWriter, r *http.Request, album AlbumId, params SetStarredParams) {
	err := s.catalog.SetStarred(r.Context(), album, params.ImageId)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "image not found", nil)
	case errors.Is(err, catalog.ErrWrongAlbum):
		writeError(w, http.StatusBadRequest, "wrong_album", "image belongs to a different album", nil)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal", "failed to star image", map[string]any{"error": err.Error()})
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) DeleteImage(w http.ResponseWriter, r *http.Request, id ImageId) {
	err := s.catalog.DeleteImage(r.Context(), id)
	switch {
	case errors.Is(err, catalog.ErrBlobCleanup):
		// The record is gone, so the delete stands; the stray file is a
		// sweep's problem.
		s.logger.Warn("orphaned blob after delete", "id", id, "error", err)
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "image not found", nil)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "delete_failed", "could not delete image", map[string]any{"error": err.Error()})
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) writeContentError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, catalog.ErrMissingBlob):
		s.logger.Error("catalog/store drift", "error", err)
		writeError(w, http.StatusInternalServerError, "inconsistent", what+" record exists but file is missing", nil)
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", what+" not found", nil)
	default:
		writeError(w, http.StatusInternalServerError, "internal", "failed to read "+what, map[string]any{"error": err.Error()})
	}
}

func toAPIImage(img *catalog.Image) Image {
	return Image{
		Id:          img.ID,
		Album:       img.Album,
		Starred:     img.Starred,
		ContentType: img.Mime,
		Bytes:       img.Bytes,
		Width:       img.Width,
		Height:      img.Height,
		CreatedAt:   img.CreatedAt,
	}
}

func writeContent(w http.ResponseWriter, content *catalog.Content) {
	w.Header().Set("Content-Type", content.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(content.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content.Data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, details map[string]any) {
	e := Error{Code: code, Message: message}
	if len(details) > 0 {
		e.Details = &details
	}
	writeJSON(w, status, e)
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
		})
	}
}
