package requests

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/triage/internal/classifier"
	"github.com/JaimeStill/triage/internal/extract"
	"github.com/JaimeStill/triage/pkg/handlers"
	"github.com/JaimeStill/triage/pkg/pagination"
	"github.com/JaimeStill/triage/pkg/routes"
)

// Handler provides HTTP endpoints for request operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// Submission is the JSON body for inline content processing. Content for the
// document kind may carry binary bytes reinterpreted as text; they are
// restored before processing.
type Submission struct {
	InputType string `json:"input_type"`
	Content   string `json:"content"`
}

// NewHandler creates a Handler with the given system, logger, pagination config, and upload size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "requests"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for request endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/requests",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Process},
			{Method: "POST", Pattern: "/batch", Handler: h.ProcessBatch},
		},
	}
}

// List returns a paginated list of request summaries, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single request by its UUID path parameter, including every
// pipeline stage output persisted so far.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	req, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, req)
}

// Process accepts one piece of content, either a multipart form upload
// (input_type + file) or a JSON submission, runs it through the pipeline,
// and returns the completed request record.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	cmd, err := h.parseSubmission(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	req, err := h.sys.Process(r.Context(), *cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, req)
}

// ProcessBatch accepts either a JSON array of submissions or a multipart form
// with an input_type and multiple files, processing the items concurrently.
// Items succeed or fail independently.
func (h *Handler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	cmds, err := h.parseBatch(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if len(cmds) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyContent)
		return
	}

	results := h.sys.ProcessBatch(r.Context(), cmds)
	handlers.RespondJSON(w, http.StatusOK, results)
}

func (h *Handler) parseSubmission(r *http.Request) (*ProcessCommand, error) {
	if isMultipart(r) {
		if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
			return nil, ErrFileTooLarge
		}

		kind, err := classifier.ParseKind(r.FormValue("input_type"))
		if err != nil {
			return nil, ErrInvalidKind
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, ErrInvalidBody
		}
		defer file.Close()

		return fileCommand(kind, file, header)
	}

	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		return nil, ErrInvalidBody
	}

	return submissionCommand(sub)
}

func (h *Handler) parseBatch(r *http.Request) ([]ProcessCommand, error) {
	if isMultipart(r) {
		if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
			return nil, ErrFileTooLarge
		}

		kind, err := classifier.ParseKind(r.FormValue("input_type"))
		if err != nil {
			return nil, ErrInvalidKind
		}

		var cmds []ProcessCommand
		for _, header := range r.MultipartForm.File["files"] {
			file, err := header.Open()
			if err != nil {
				return nil, ErrInvalidBody
			}

			cmd, err := fileCommand(kind, file, header)
			file.Close()
			if err != nil {
				return nil, err
			}

			cmds = append(cmds, *cmd)
		}
		return cmds, nil
	}

	var subs []Submission
	if err := json.NewDecoder(r.Body).Decode(&subs); err != nil {
		return nil, ErrInvalidBody
	}

	cmds := make([]ProcessCommand, 0, len(subs))
	for _, sub := range subs {
		cmd, err := submissionCommand(sub)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, *cmd)
	}
	return cmds, nil
}

func submissionCommand(sub Submission) (*ProcessCommand, error) {
	kind, err := classifier.ParseKind(sub.InputType)
	if err != nil {
		return nil, ErrInvalidKind
	}

	content := []byte(sub.Content)
	if kind == classifier.KindDocument {
		content = extract.DecodeLatin1(sub.Content)
	}

	return &ProcessCommand{
		InputKind: kind,
		Content:   content,
	}, nil
}

func fileCommand(kind classifier.Kind, file multipart.File, header *multipart.FileHeader) (*ProcessCommand, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, ErrInvalidBody
	}

	return &ProcessCommand{
		InputKind:   kind,
		Content:     data,
		Filename:    header.Filename,
		ContentType: detectContentType(header.Header.Get("Content-Type"), data),
	}, nil
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
