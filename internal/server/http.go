// Package server exposes the parsing pipeline over HTTP: a parse endpoint
// accepting raw Document AI output, an XLSX export endpoint, health and
// Prometheus metrics.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Cpaul777/docai-parse-codes/constants"
	"github.com/Cpaul777/docai-parse-codes/internal/export"
	"github.com/Cpaul777/docai-parse-codes/internal/extract"
	"github.com/Cpaul777/docai-parse-codes/internal/pipeline"
	"github.com/Cpaul777/docai-parse-codes/internal/repository"
	"github.com/Cpaul777/docai-parse-codes/internal/webhook"
)

// maxBodyBytes caps parse request bodies; Document AI shards for a single
// page sit well under this.
const maxBodyBytes = 32 << 20

type Server struct {
	logger            *slog.Logger
	pipe              *pipeline.Pipeline
	store             repository.Store
	sender            *webhook.Sender
	exporter          *export.Service
	registry          *prometheus.Registry
	defaultCollection string
}

func New(logger *slog.Logger, pipe *pipeline.Pipeline, store repository.Store, sender *webhook.Sender, registry *prometheus.Registry, defaultCollection string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultCollection == "" {
		defaultCollection = "user"
	}
	return &Server{
		logger:            logger,
		pipe:              pipe,
		store:             store,
		sender:            sender,
		exporter:          export.NewService(store, logger),
		registry:          registry,
		defaultCollection: defaultCollection,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/documents:parse", s.handleParse)
	mux.HandleFunc("GET /v1/collections/{collection}/export", s.handleExport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return mux
}

// parseResponse is the body returned for a processed document. Record is the
// flattened payload as persisted; it is null for filtered documents.
type parseResponse struct {
	Name       string          `json:"name,omitempty"`
	Collection string          `json:"collection"`
	DocType    string          `json:"doc_type"`
	Relevant   bool            `json:"relevant"`
	Record     json.RawMessage `json:"record,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleParse runs one Document AI JSON payload through the pipeline and,
// when the page is relevant, persists it and notifies the webhook.
// Query parameters: doc_type (defaults to the withholding certificate),
// collection, pdf_name.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log := s.logger.With("request_id", requestID)
	started := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "read body", err)
		return
	}

	entities, err := extract.ParseDocument(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "decode document", err)
		return
	}

	docType := r.URL.Query().Get("doc_type")
	collection := r.URL.Query().Get("collection")
	if collection == "" {
		collection = s.defaultCollection
	}
	pdfName := r.URL.Query().Get("pdf_name")
	if pdfName != "" {
		ext := constants.NormalizeExt(filepath.Ext(pdfName))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			s.writeError(w, http.StatusBadRequest, "unsupported source file",
				fmt.Errorf("%q is not a supported document type", pdfName))
			return
		}
		log = log.With("source_mime", constants.DetectMIMEType(pdfName))
	}

	res, err := s.pipe.Run(entities, docType)
	if err != nil {
		log.Error("pipeline failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "process document", err)
		return
	}

	resp := parseResponse{
		Collection: collection,
		DocType:    res.DocType,
		Relevant:   res.Relevant,
	}
	if !res.Relevant {
		log.Info("document filtered", "doc_type", res.DocType, "elapsed", time.Since(started))
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	payload, err := json.Marshal(res.Record)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "encode record", err)
		return
	}

	suggested := strings.TrimSuffix(pdfName, filepath.Ext(pdfName))
	if suggested == "" {
		suggested = requestID
	}
	name, err := s.store.Put(r.Context(), collection, suggested, payload, pdfName)
	if err != nil {
		log.Error("store put failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "persist record", err)
		return
	}

	if s.sender != nil && s.sender.Enabled() {
		if err := s.sender.Send(r.Context(), payload); err != nil {
			// delivery is best-effort; the record is already persisted
			log.Warn("webhook delivery failed", "error", err)
		}
	}

	resp.Name = name
	resp.Record = payload
	log.Info("document parsed",
		"doc_type", res.DocType,
		"collection", collection,
		"name", name,
		"elapsed", time.Since(started))
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	data, err := s.exporter.ExportCollectionXLSX(r.Context(), collection)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "export collection", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", collection+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		s.logger.Warn("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string, err error) {
	s.logger.Warn(msg, "error", err, "status", status)
	s.writeJSON(w, status, errorResponse{Error: fmt.Sprintf("%s: %v", msg, err)})
}
