// Package handlers exposes the read-only presentation boundary: the UI
// consumes recommendation snapshots and transaction lists, and can ask
// for a refresh; it never mutates engine output.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/giftcardmax/recommender/internal/api/middleware"
	"github.com/giftcardmax/recommender/internal/engine"
	"github.com/giftcardmax/recommender/internal/jobs"
	"github.com/giftcardmax/recommender/internal/refresh"
	"github.com/giftcardmax/recommender/internal/store"
)

// RecommendationsHandler serves the latest recommendation snapshot and
// accepts refresh requests.
type RecommendationsHandler struct {
	holder    *refresh.Holder
	publisher jobs.Publisher
	log       zerolog.Logger
}

// NewRecommendationsHandler creates a recommendations handler.
func NewRecommendationsHandler(holder *refresh.Holder, publisher jobs.Publisher, log zerolog.Logger) *RecommendationsHandler {
	return &RecommendationsHandler{holder: holder, publisher: publisher, log: log}
}

// List handles GET /api/recommendations.
func (h *RecommendationsHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.holder.Latest()
	if !ok {
		middleware.WriteError(w, http.StatusServiceUnavailable, "No snapshot yet - trigger a refresh first")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"generated_at":    snap.GeneratedAt,
		"as_of":           snap.AsOf,
		"recommendations": snap.Recommendations,
		"count":           len(snap.Recommendations),
	})
}

// Get handles GET /api/recommendations/:id.
func (h *RecommendationsHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	snap, ok := h.holder.Latest()
	if !ok {
		middleware.WriteError(w, http.StatusServiceUnavailable, "No snapshot yet - trigger a refresh first")
		return
	}

	rec, found := engine.FindRecommendation(snap.Recommendations, id)
	if !found {
		middleware.WriteError(w, http.StatusNotFound, "Recommendation not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, rec)
}

// Refresh handles POST /api/recommendations/refresh by enqueueing a
// refresh job and returning its ID for polling.
func (h *RecommendationsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	job := &jobs.RefreshJob{Trigger: "api"}
	if err := h.publisher.PublishRefresh(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue refresh job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue refresh")
		return
	}

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"status": string(job.Status),
	})
}

// MerchantsHandler serves the merchant profiles from the latest
// snapshot.
type MerchantsHandler struct {
	holder *refresh.Holder
	log    zerolog.Logger
}

// NewMerchantsHandler creates a merchants handler.
func NewMerchantsHandler(holder *refresh.Holder, log zerolog.Logger) *MerchantsHandler {
	return &MerchantsHandler{holder: holder, log: log}
}

// List handles GET /api/merchants.
func (h *MerchantsHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.holder.Latest()
	if !ok {
		middleware.WriteError(w, http.StatusServiceUnavailable, "No snapshot yet - trigger a refresh first")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"merchants": snap.Profiles,
		"count":     len(snap.Profiles),
	})
}

// TransactionsHandler serves the stored transaction list.
type TransactionsHandler struct {
	store store.TransactionStore
	log   zerolog.Logger
}

// NewTransactionsHandler creates a transactions handler.
func NewTransactionsHandler(s store.TransactionStore, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{store: s, log: log}
}

// List handles GET /api/transactions. An optional ?days=N query limits
// the result to the last N days, evaluated against the wall clock.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	txns, err := h.store.Load(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		days, err := strconv.Atoi(daysParam)
		if err != nil || days < 0 {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid days parameter")
			return
		}
		txns = engine.LastNDaysNow(txns, days)
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txns,
		"count":        len(txns),
	})
}

// JobsHandler serves refresh job status for polling.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a jobs handler.
func NewJobsHandler(s jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{store: s, log: log}
}

// List handles GET /api/jobs.
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := jobs.JobFilter{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = jobs.JobStatus(status)
	}

	list, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  list,
		"count": len(list),
	})
}

// Get handles GET /api/jobs/:id.
func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, job)
}
