// Package server exposes the calculators as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/inmocalc/internal/calculation"
	"github.com/rgehrsitz/inmocalc/internal/compare"
	"github.com/rgehrsitz/inmocalc/internal/config"
	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/rgehrsitz/inmocalc/internal/store"
	"go.uber.org/zap"
)

const (
	headerUserID   = "X-User-ID"
	headerUserPlan = "X-User-Plan"
)

// Options wires the handler's collaborators. Nil Store and Quota fall back
// to in-memory implementations.
type Options struct {
	Logger       *zap.Logger
	Engine       *calculation.Engine
	Store        store.Store
	Quota        store.QuotaTracker
	MaxBodyBytes int64
	Version      string
	// RateLimit caps stateless compute requests per client and RateWindow;
	// zero disables limiting.
	RateLimit  int
	RateWindow time.Duration
}

type handler struct {
	logger       *zap.Logger
	engine       *calculation.Engine
	compare      *compare.CompareEngine
	store        store.Store
	quota        store.QuotaTracker
	limiter      *RateLimiter
	maxBodyBytes int64
	version      string
	now          func() time.Time
}

// Handler is the API handler. Close releases background resources.
type Handler struct {
	http.Handler
	h *handler
}

// Close stops the rate limiter, if any.
func (s *Handler) Close() {
	if s.h.limiter != nil {
		s.h.limiter.Stop()
	}
}

// NewHandler constructs the HTTP handler serving the calculation API.
func NewHandler(opts Options) *Handler {
	h := &handler{
		logger:       opts.Logger,
		engine:       opts.Engine,
		store:        opts.Store,
		quota:        opts.Quota,
		maxBodyBytes: opts.MaxBodyBytes,
		version:      strings.TrimSpace(opts.Version),
		now:          time.Now,
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.engine == nil {
		h.engine = calculation.NewEngine()
	}
	if h.store == nil {
		h.store = store.NewMemoryStore()
	}
	if h.quota == nil {
		h.quota = store.NewMemoryQuota()
	}
	if h.maxBodyBytes <= 0 {
		h.maxBodyBytes = config.DefaultMaxBodyBytes
	}
	if h.version == "" {
		h.version = "dev"
	}
	if opts.RateLimit > 0 && opts.RateWindow > 0 {
		h.limiter = NewRateLimiter(opts.RateLimit, opts.RateWindow)
	}
	h.compare = compare.NewCompareEngine(h.engine)

	mux := http.NewServeMux()

	// Stateless calculators
	mux.HandleFunc("POST /api/v1/mortgage", h.rateLimited(h.handleMortgage))
	mux.HandleFunc("POST /api/v1/purchase-costs", h.rateLimited(h.handlePurchaseCosts))
	mux.HandleFunc("POST /api/v1/debt-capacity", h.rateLimited(h.handleDebtCapacity))
	mux.HandleFunc("POST /api/v1/capital-gains", h.rateLimited(h.handleCapitalGains))
	mux.HandleFunc("POST /api/v1/compare", h.rateLimited(h.handleCompare))
	mux.HandleFunc("GET /api/v1/regions", h.handleRegions)

	// Saved calculations, per user
	mux.HandleFunc("POST /api/v1/calculations", h.handleCreateCalculation)
	mux.HandleFunc("GET /api/v1/calculations", h.handleListCalculations)
	mux.HandleFunc("GET /api/v1/calculations/{id}", h.handleGetCalculation)
	mux.HandleFunc("DELETE /api/v1/calculations/{id}", h.handleDeleteCalculation)
	mux.HandleFunc("GET /api/v1/usage", h.handleUsage)

	mux.HandleFunc("GET /api/version", h.handleVersion)

	return &Handler{Handler: mux, h: h}
}

func (h *handler) handleMortgage(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleMortgage"
	var p domain.MortgageParams
	if !h.decode(w, r, &p, op) {
		return
	}
	res, err := h.engine.Mortgage(p)
	if err != nil {
		h.respondErr(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, res.Rounded())
}

func (h *handler) handlePurchaseCosts(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePurchaseCosts"
	var p domain.PurchaseCostParams
	if !h.decode(w, r, &p, op) {
		return
	}
	res, err := h.engine.PurchaseCosts(p)
	if err != nil {
		h.respondErr(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, res.Rounded())
}

func (h *handler) handleDebtCapacity(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDebtCapacity"
	var in domain.DebtCapacityInputs
	if !h.decode(w, r, &in, op) {
		return
	}
	res, err := h.engine.DebtCapacity(in)
	if err != nil {
		h.respondErr(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, res.Rounded())
}

func (h *handler) handleCapitalGains(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCapitalGains"
	var p domain.CapitalGainsParams
	if !h.decode(w, r, &p, op) {
		return
	}
	res, err := h.engine.CapitalGains(p)
	if err != nil {
		h.respondErr(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, res.Rounded())
}

type compareRequest struct {
	Base         compare.Offer   `json:"base"`
	Alternatives []compare.Offer `json:"alternatives"`
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	var req compareRequest
	if !h.decode(w, r, &req, op) {
		return
	}
	if len(req.Alternatives) == 0 {
		h.respondErr(w, r, domain.NewInvalidInput("alternatives", nil, "at least one alternative offer is required"), op)
		return
	}
	set, err := h.compare.Compare(r.Context(), req.Base, req.Alternatives)
	if err != nil {
		h.respondErr(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, set.Rounded())
}

type regionsResponse struct {
	Version string                 `json:"version"`
	Regions []domain.RegionTaxRate `json:"regions"`
}

func (h *handler) handleRegions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, regionsResponse{
		Version: h.engine.Tables().Metadata.Version,
		Regions: h.engine.Regions().Rows(),
	})
}

type identity struct {
	user string
	plan store.Plan
}

// identify reads the caller from the authentication collaborator's headers.
func (h *handler) identify(w http.ResponseWriter, r *http.Request, op string) (identity, bool) {
	user := strings.TrimSpace(r.Header.Get(headerUserID))
	if user == "" {
		h.respondError(w, r, http.StatusUnauthorized, "missing "+headerUserID+" header", op)
		return identity{}, false
	}
	plan, err := store.ParsePlan(r.Header.Get(headerUserPlan))
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return identity{}, false
	}
	return identity{user: user, plan: plan}, true
}

type calculationResponse struct {
	Record store.Record `json:"record"`
	Usage  store.Usage  `json:"usage"`
}

func (h *handler) handleCreateCalculation(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCreateCalculation"
	id, ok := h.identify(w, r, op)
	if !ok {
		return
	}
	var calc domain.Calculation
	if !h.decode(w, r, &calc, op) {
		return
	}
	if err := config.ValidateCalculation(&calc); err != nil {
		h.respondErr(w, r, err, op)
		return
	}

	outcome, err := h.engine.Run(r.Context(), calc)
	if err != nil {
		h.respondErr(w, r, err, op)
		return
	}

	input, err := json.Marshal(calc)
	if err != nil {
		h.respondErr(w, r, err, op)
		return
	}
	result, err := json.Marshal(outcome.Rounded().Result())
	if err != nil {
		h.respondErr(w, r, err, op)
		return
	}

	month := store.Month(h.now())
	used, err := h.quota.Consume(r.Context(), id.user, id.plan, month)
	if err != nil {
		h.respondErr(w, r, err, op)
		return
	}
	rec, err := h.store.Save(r.Context(), store.Record{
		Owner:  id.user,
		Kind:   calc.Kind,
		Name:   calc.Name,
		Input:  input,
		Result: result,
	})
	if err != nil {
		if relErr := h.quota.Release(r.Context(), id.user, month); relErr != nil {
			h.logger.Warn("failed to release quota after save error",
				zap.String("op", op),
				zap.String("user", id.user),
				zap.Error(relErr),
			)
		}
		h.respondErr(w, r, err, op)
		return
	}

	h.logger.Info("calculation saved",
		zap.String("op", op),
		zap.String("user", id.user),
		zap.String("kind", string(calc.Kind)),
		zap.String("id", rec.ID.String()),
		zap.Int("used", used),
	)
	h.writeJSON(w, http.StatusCreated, calculationResponse{
		Record: rec,
		Usage:  store.Usage{User: id.user, Plan: id.plan, Month: month, Used: used, Limit: id.plan.Limit()},
	})
}

func (h *handler) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListCalculations"
	id, ok := h.identify(w, r, op)
	if !ok {
		return
	}
	recs, err := h.store.List(r.Context(), id.user)
	if err != nil {
		h.respondErr(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string][]store.Record{"calculations": recs})
}

func (h *handler) recordID(w http.ResponseWriter, r *http.Request, op string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid calculation id %q", r.PathValue("id")), op)
		return uuid.Nil, false
	}
	return id, true
}

func (h *handler) handleGetCalculation(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGetCalculation"
	who, ok := h.identify(w, r, op)
	if !ok {
		return
	}
	id, ok := h.recordID(w, r, op)
	if !ok {
		return
	}
	rec, err := h.store.Get(r.Context(), who.user, id)
	if err != nil {
		h.respondErr(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *handler) handleDeleteCalculation(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeleteCalculation"
	who, ok := h.identify(w, r, op)
	if !ok {
		return
	}
	id, ok := h.recordID(w, r, op)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), who.user, id); err != nil {
		h.respondErr(w, r, err, op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleUsage(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUsage"
	id, ok := h.identify(w, r, op)
	if !ok {
		return
	}
	month := store.Month(h.now())
	used, err := h.quota.Usage(r.Context(), id.user, month)
	if err != nil {
		h.respondErr(w, r, err, op)
		return
	}
	usage := store.Usage{User: id.user, Plan: id.plan, Month: month, Used: used, Limit: id.plan.Limit()}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"usage":     usage,
		"remaining": usage.Remaining(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decode reads a JSON body into dst, answering the request itself on failure.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodyBytes), op)
			return false
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), op)
		return false
	}
	return true
}

// statusFor maps domain and store errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownRegion):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondErr(w http.ResponseWriter, r *http.Request, err error, op string) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
		h.logger.Error("request failed", zap.String("op", op), zap.Error(err))
	}
	h.respondError(w, r, status, msg, op)
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Warn("request rejected",
		zap.String("op", op),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
