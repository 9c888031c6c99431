package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/schemavis/schemavis/pkg/diagram"
	apperrors "github.com/schemavis/schemavis/pkg/errors"
	"github.com/schemavis/schemavis/pkg/pipeline"
	"github.com/schemavis/schemavis/pkg/store"
)

// maxBodySize caps request bodies. Schemas are text; anything past this
// is not a schema.
const maxBodySize = 10 << 20

// createRequest is the body for document creation.
type createRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// toggleRequest is the body for the expand toggle endpoint. NodeID is
// the data-node-id attribute of the clicked diagram element.
type toggleRequest struct {
	NodeID string `json:"node_id"`
}

// toggleResponse reports the node's new expand state and the full
// override set, so clients can re-request the diagram without a second
// round trip to the document.
type toggleResponse struct {
	NodeID    string          `json:"node_id"`
	Expanded  bool            `json:"expanded"`
	Overrides map[string]bool `json:"overrides"`
}

// documentSummary is the list representation of a document, omitting
// the schema source.
type documentSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	summaries := make([]documentSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, documentSummary{
			ID:        doc.ID,
			Name:      doc.Name,
			CreatedAt: doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			UpdatedAt: doc.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Name == "" || req.Source == "" {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidOptions, "name and source are required"))
		return
	}

	doc := store.New(req.Name, []byte(req.Source))

	// Reject schemas that don't build before persisting them. This also
	// warms the diagram cache for the first render.
	if _, err := s.runner.Build(r.Context(), pipeline.Options{Source: doc.Source}); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidSchema, err, "build %s", doc.Name))
		return
	}

	if err := s.store.Put(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetOptions(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var opts diagram.Options
	if err := decodeBody(r, &opts); err != nil {
		writeError(w, err)
		return
	}

	doc.Options = opts
	if err := s.store.Put(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleToggle flips the expand state of one node and persists it. The
// node id must address an item in the document's diagram. The flip is
// computed against the item's current effective state, so toggling a
// default-expanded group collapses it; overrides that land back on the
// built default are dropped rather than stored.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req toggleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	d, err := s.runner.Build(r.Context(), s.buildOptions(doc))
	if err != nil {
		writeError(w, err)
		return
	}
	it := d.Find(req.NodeID)
	if it == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidNodeID, "unknown node: %q", req.NodeID))
		return
	}

	current := it.Expanded
	if override, ok := doc.Expanded[req.NodeID]; ok {
		current = override
	}
	next := !current
	if next == it.Expanded {
		delete(doc.Expanded, req.NodeID)
	} else {
		if doc.Expanded == nil {
			doc.Expanded = make(map[string]bool)
		}
		doc.Expanded[req.NodeID] = next
	}

	if err := s.store.Put(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{
		NodeID:    req.NodeID,
		Expanded:  next,
		Overrides: doc.Expanded,
	})
}

// handleDiagram renders the document's diagram. Query parameters:
//
//	format  svg (default), nodelink, dot, json
//	scale   render scale factor
//	refresh bypass cached artifacts
func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "diagram format"))
		return
	}

	opts := s.buildOptions(doc)
	opts.Formats = []string{format}
	opts.Refresh = r.URL.Query().Get("refresh") == "true"
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			writeError(w, apperrors.New(apperrors.ErrCodeInvalidOptions, "invalid scale: %q", v))
			return
		}
		opts.Scale = scale
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// buildOptions assembles pipeline options from a document's saved
// display state.
func (s *Server) buildOptions(doc *store.Document) pipeline.Options {
	style := s.style
	return pipeline.Options{
		Source:               doc.Source,
		ShowDocumentation:    doc.Options.ShowDocumentation,
		AlwaysShowOccurrence: doc.Options.AlwaysShowOccurrence,
		ShowTypeLabels:       doc.Options.ShowTypeLabels,
		Expanded:             doc.Expanded,
		Style:                &style,
		Logger:               s.logger,
	}
}

// contentTypeFor maps a render format to its response content type.
func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatSVG, pipeline.FormatNodelink:
		return "image/svg+xml"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/json"
	}
}

// decodeBody decodes a JSON request body, mapping failures to an
// invalid-options error.
func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidOptions, err, "read request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidOptions, err, "parse request body")
	}
	return nil
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  string(apperrors.GetCode(err)),
	})
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidNodeID,
		apperrors.ErrCodeInvalidSchema,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidOptions,
		apperrors.ErrCodeInvalidTheme:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeDocumentNotFound,
		apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = w.Write(data)
}
