package statementshttp

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/grapfin/grapfin/internal/platform/httpx"
	"github.com/grapfin/grapfin/internal/statements"
	"github.com/grapfin/grapfin/internal/trialbalance"
	"github.com/grapfin/grapfin/jobs"
)

// Handler wires the statements REST endpoints.
type Handler struct {
	logger     *slog.Logger
	service    *statements.Service
	renderJob  *statements.RenderJob
	jobs       *jobs.Client
	validator  *validator.Validate
	uploadDir  string
	maxUpload  int64
	rateLimit  func(http.Handler) http.Handler
	timestamps func() time.Time
}

// NewHandler constructs a Handler instance. renderJob and jobsClient may be
// nil when worker infrastructure is not available; PDF endpoints degrade
// accordingly.
func NewHandler(logger *slog.Logger, service *statements.Service, renderJob *statements.RenderJob, jobsClient *jobs.Client, uploadDir string, maxUpload int64) *Handler {
	limiter := httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return "ip:" + r.RemoteAddr, nil
		}
		return "ip:" + host, nil
	}))
	return &Handler{
		logger:     logger,
		service:    service,
		renderJob:  renderJob,
		jobs:       jobsClient,
		validator:  validator.New(),
		uploadDir:  uploadDir,
		maxUpload:  maxUpload,
		rateLimit:  limiter,
		timestamps: time.Now,
	}
}

// MountRoutes registers statements routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/upload", h.handleUpload)
	r.Post("/process", h.handleProcess)
	r.Get("/runs", h.handleListRuns)
	r.Get("/runs/{id}", h.handleGetRun)
	r.Group(func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Get("/runs/{id}/report.pdf", h.handleReportPDF)
	})
}

type uploadResponse struct {
	Filename string `json:"filename"`
	StoredAs string `json:"stored_as"`
	Size     int64  `json:"size"`
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		httpx.Problem(w, http.StatusRequestEntityTooLarge, "Upload too large", "The uploaded file exceeds the size limit.")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Missing file", "Request must include a multipart field named 'file'.")
		return
	}
	defer file.Close()
	if !trialbalance.AllowedExtension(header.Filename) {
		httpx.Problem(w, http.StatusBadRequest, "Unsupported file type", fmt.Sprintf("File %q is not a CSV file.", header.Filename))
		return
	}
	stored := fmt.Sprintf("%s_%s", h.timestamps().UTC().Format("20060102T150405"), sanitizeFilename(header.Filename))
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.Error("create upload dir", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Upload failed", "Could not store the uploaded file.")
		return
	}
	dst, err := os.Create(filepath.Join(h.uploadDir, stored))
	if err != nil {
		h.logger.Error("store upload", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Upload failed", "Could not store the uploaded file.")
		return
	}
	defer dst.Close()
	size, err := io.Copy(dst, file)
	if err != nil {
		h.logger.Error("store upload", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Upload failed", "Could not store the uploaded file.")
		return
	}
	httpx.JSON(w, http.StatusCreated, uploadResponse{
		Filename: header.Filename,
		StoredAs: stored,
		Size:     size,
	})
}

type processRequest struct {
	Filename string `json:"filename" validate:"required"`
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid request", "Request body must be JSON with a 'filename' field.")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid request", "Field 'filename' is required.")
		return
	}
	name := sanitizeFilename(req.Filename)
	if !trialbalance.AllowedExtension(name) {
		httpx.Problem(w, http.StatusBadRequest, "Unsupported file type", fmt.Sprintf("File %q is not a CSV file.", req.Filename))
		return
	}
	f, err := os.Open(filepath.Join(h.uploadDir, name))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "File not found", fmt.Sprintf("No uploaded file named %q.", req.Filename))
		return
	}
	defer f.Close()
	table, err := trialbalance.ReadCSV(f)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Unreadable file", err.Error())
		return
	}
	run, err := h.service.Process(r.Context(), name, table)
	if err != nil {
		h.respondProcessError(w, err)
		return
	}
	if h.jobs != nil {
		if _, err := h.jobs.EnqueueRenderReport(r.Context(), jobs.RenderReportPayload{RunID: run.ID.String()}); err != nil {
			h.logger.Warn("enqueue render report", slog.Any("error", err))
		}
	}
	httpx.JSON(w, http.StatusCreated, runResponse(run))
}

func (h *Handler) respondProcessError(w http.ResponseWriter, err error) {
	var mapErr *statements.MappingError
	if errors.As(err, &mapErr) {
		httpx.ProblemWith(w, http.StatusUnprocessableEntity, "Unmapped accounts",
			fmt.Sprintf("%d account(s) have no GRAP mapping; statements cannot be generated.", len(mapErr.Unmapped)),
			map[string]any{"unmapped_accounts": mapErr.Unmapped})
		return
	}
	var valErr *trialbalance.ValidationError
	if errors.As(err, &valErr) {
		httpx.Problem(w, http.StatusBadRequest, "Invalid trial balance", valErr.Error())
		return
	}
	var stmtErr *statements.ValidationError
	if errors.As(err, &stmtErr) {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Statement validation failed", stmtErr.Error())
		return
	}
	var fileErr *trialbalance.FileProcessingError
	if errors.As(err, &fileErr) {
		httpx.Problem(w, http.StatusBadRequest, "Unreadable file", fileErr.Error())
		return
	}
	h.logger.Error("process trial balance", slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Processing failed", "The trial balance could not be processed.")
}

type runView struct {
	ID         uuid.UUID         `json:"id"`
	SourceFile string            `json:"source_file"`
	Result     statements.Result `json:"result"`
	PDFReady   bool              `json:"pdf_ready"`
	CreatedAt  time.Time         `json:"created_at"`
}

func runResponse(run statements.Run) runView {
	return runView{
		ID:         run.ID,
		SourceFile: run.SourceFile,
		Result:     run.Result,
		PDFReady:   run.PDFPath != "",
		CreatedAt:  run.CreatedAt,
	}
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > 500 {
			httpx.Problem(w, http.StatusBadRequest, "Invalid limit", "Query parameter 'limit' must be between 1 and 500.")
			return
		}
		limit = v
	}
	runs, err := h.service.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.Error("list runs", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Listing failed", "Could not list statement runs.")
		return
	}
	views := make([]runView, 0, len(runs))
	for _, run := range runs {
		views = append(views, runResponse(run))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"runs": views})
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid run id", "Run id must be a UUID.")
		return
	}
	run, err := h.service.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, statements.ErrRunNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Run not found", fmt.Sprintf("No statement run with id %s.", id))
			return
		}
		h.logger.Error("get run", slog.String("run_id", id.String()), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Lookup failed", "Could not load the statement run.")
		return
	}
	httpx.JSON(w, http.StatusOK, runResponse(run))
}

func (h *Handler) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid run id", "Run id must be a UUID.")
		return
	}
	run, err := h.service.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, statements.ErrRunNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Run not found", fmt.Sprintf("No statement run with id %s.", id))
			return
		}
		h.logger.Error("get run", slog.String("run_id", id.String()), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Lookup failed", "Could not load the statement run.")
		return
	}
	path := run.PDFPath
	if path == "" {
		if h.renderJob == nil {
			httpx.Problem(w, http.StatusServiceUnavailable, "Report unavailable", "The PDF for this run has not been generated yet.")
			return
		}
		rendered, err := h.renderOnce(r.Context(), id)
		if err != nil {
			h.logger.Error("render report", slog.String("run_id", id.String()), slog.Any("error", err))
			httpx.Problem(w, http.StatusBadGateway, "Render failed", "The PDF report could not be generated.")
			return
		}
		path = rendered
	}
	f, err := os.Open(path)
	if err != nil {
		h.logger.Error("open report pdf", slog.String("path", path), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Report unavailable", "The PDF report could not be read.")
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=statements_%s.pdf", id))
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Warn("stream report pdf", slog.Any("error", err))
	}
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	return name
}
