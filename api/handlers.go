/*
handlers.go - HTTP API handlers for admission benefit calculations

PURPOSE:
  Exposes the schedule and benefit calculators via HTTP. Handles request
  parsing, input validation, JSON/zip responses, and delegates every number
  to benefit.Calculate.

ENDPOINTS:
  GET    /health                 Liveness check
  GET    /api/rotations          Rotation catalog
  GET    /api/plan               Active benefit plan
  POST   /api/calculations       JSON calculation (schedule, totals, installments)
  POST   /api/admissions         Admission form (form or JSON) -> zip of documents

ARCHITECTURE:
  Handler holds only read-only dependencies:
  - Plan: benefit plan loaded once at startup
  - Logger: zap logger
  Each request is calculated from scratch; nothing is cached or shared.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid date, unknown rotation, invalid or missing daily rate
  - 500: Internal errors (rendering, plan misconfiguration)

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/warp/admission-benefits/benefit"
	"github.com/warp/admission-benefits/factory"
	"github.com/warp/admission-benefits/generic"
	"github.com/warp/admission-benefits/report"
	"github.com/warp/admission-benefits/schedule"
	"go.uber.org/zap"
)

// maxFormMemory bounds multipart form parsing.
const maxFormMemory = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Plan   benefit.Plan
	Logger *zap.Logger
}

// NewHandler creates a new handler for the given plan.
func NewHandler(plan benefit.Plan, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Plan: plan, Logger: logger}
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListRotations returns the rotation catalog.
// GET /api/rotations
func (h *Handler) ListRotations(w http.ResponseWriter, r *http.Request) {
	specs := schedule.Rotations()
	dtos := make([]RotationDTO, len(specs))
	for i, s := range specs {
		dtos[i] = RotationDTO{
			ID:          s.Rotation.String(),
			Description: s.Description,
			Business:    s.Business,
			WorkDays:    s.Cycle.Work,
			RestDays:    s.Cycle.Rest,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"rotations": dtos})
}

// GetPlan returns the active benefit plan.
// GET /api/plan
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, factory.NewPlanFactory().ToJSON(h.Plan))
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// Calculate returns the schedule and benefit breakdown as JSON.
// POST /api/calculations
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.calculate(req.HireDate, req.Rotation, req.DailyRates)
	if err != nil {
		h.writeCalculationError(w, r, err)
		return
	}

	id := uuid.NewString()
	h.Logger.Info("calculation completed",
		zap.String("calculation_id", id),
		zap.String("hire_date", result.HireDate.String()),
		zap.String("rotation", result.Rotation.String()),
		zap.Int("day_count", result.DayCount()),
	)
	writeJSON(w, http.StatusOK, ToCalculationDTO(id, result))
}

// CreateAdmission calculates and returns the document bundle as a zip download.
// Accepts the HTML form (urlencoded or multipart) or a JSON body.
// POST /api/admissions
func (h *Handler) CreateAdmission(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseAdmission(r)
	if err != nil {
		h.writeCalculationError(w, r, err)
		return
	}

	result, err := h.calculate(req.HireDate, req.Rotation, req.DailyRates)
	if err != nil {
		h.writeCalculationError(w, r, err)
		return
	}

	bundle, err := report.Build(report.Admission{
		Name:       req.Name,
		Company:    req.Company,
		Client:     req.Client,
		HireDate:   result.HireDate,
		Rotation:   result.Rotation.String(),
		Role:       req.Role,
		Shift:      req.Shift,
		Bank:       req.Bank,
		PixKeyType: req.PixKeyType,
		PixKey:     req.PixKey,
	}, result)
	if err != nil {
		h.Logger.Error("failed to build admission bundle", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to build documents", err)
		return
	}

	data, err := bundle.Zip()
	if err != nil {
		h.Logger.Error("failed to package admission bundle", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to package documents", err)
		return
	}

	h.Logger.Info("admission bundle generated",
		zap.String("document_id", bundle.ID.String()),
		zap.String("hire_date", result.HireDate.String()),
		zap.String("rotation", result.Rotation.String()),
		zap.Int("day_count", result.DayCount()),
		zap.Int("size_bytes", len(data)),
	)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": bundle.Filename}))
	w.Header().Set("X-Document-ID", bundle.ID.String())
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// calculate validates the raw inputs and runs the benefit calculation.
func (h *Handler) calculate(hireDate, rotation string, rates map[string]float64) (*benefit.Result, error) {
	hire, err := generic.ParseDate(strings.TrimSpace(hireDate))
	if err != nil {
		return nil, &inputError{message: "Invalid hire date (use YYYY-MM-DD)", err: err}
	}
	rot, err := schedule.ParseRotation(rotation)
	if err != nil {
		return nil, err
	}

	supplied := make(map[benefit.Kind]float64, len(rates))
	for kind, v := range rates {
		supplied[benefit.Kind(strings.ToLower(kind))] = v
	}

	return benefit.Calculate(h.Plan, benefit.Request{
		HireDate:      hire,
		Rotation:      rot,
		SuppliedRates: supplied,
	})
}

// parseAdmission reads the admission from JSON or form fields. Supplied
// rates come from "valor_<kind>" form fields (e.g. valor_vt).
func (h *Handler) parseAdmission(r *http.Request) (AdmissionRequest, error) {
	var req AdmissionRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, &inputError{message: "Invalid request body", err: err}
		}
		return req, nil
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return req, &inputError{message: "Invalid form", err: err}
	}
	req = AdmissionRequest{
		Name:       r.FormValue("nome"),
		Company:    r.FormValue("empresa"),
		Client:     r.FormValue("cliente"),
		HireDate:   r.FormValue("data_admissao"),
		Rotation:   r.FormValue("escala"),
		Role:       r.FormValue("cargo"),
		Shift:      r.FormValue("turno"),
		Bank:       r.FormValue("banco"),
		PixKeyType: r.FormValue("tipo_pix"),
		PixKey:     r.FormValue("chave_pix"),
		DailyRates: make(map[string]float64),
	}
	for _, def := range h.Plan.Supplied() {
		field := "valor_" + string(def.Kind)
		raw := strings.TrimSpace(strings.Replace(r.FormValue(field), ",", ".", 1))
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, &generic.InvalidRateError{Benefit: def.Label, Reason: "not a number"}
		}
		req.DailyRates[string(def.Kind)] = v
	}
	return req, nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

// inputError is a request that could not be parsed far enough to calculate.
type inputError struct {
	message string
	err     error
}

func (e *inputError) Error() string { return e.message + ": " + e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

func (h *Handler) writeCalculationError(w http.ResponseWriter, r *http.Request, err error) {
	var inErr *inputError
	var rateErr *generic.InvalidRateError
	switch {
	case errors.As(err, &inErr):
		writeError(w, http.StatusBadRequest, inErr.message, inErr.err)
	case errors.As(err, &rateErr):
		label := rateErr.Benefit
		if label == "" {
			label = "Daily"
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s daily rate must be a valid positive number", label), err)
	case errors.Is(err, generic.ErrUnknownPattern):
		writeError(w, http.StatusBadRequest, "Unknown rotation", err)
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	default:
		h.Logger.Error("calculation failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Calculation failed", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
