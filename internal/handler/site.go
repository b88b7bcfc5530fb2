package handler

import (
	"net"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/caviteventure/caviteventure-api/internal/usecase"
)

// SiteHandler serves statistics, visit tracking and health endpoints.
type SiteHandler struct {
	siteUsecase usecase.SiteUsecase
	logger      *zerolog.Logger
}

// NewSiteHandler creates a new SiteHandler instance.
func NewSiteHandler(siteUsecase usecase.SiteUsecase, logger *zerolog.Logger) *SiteHandler {
	return &SiteHandler{
		siteUsecase: siteUsecase,
		logger:      logger,
	}
}

func (h *SiteHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.siteUsecase.Statistics(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch user statistics")
		writeError(w, http.StatusInternalServerError, "failed to fetch user statistics")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *SiteHandler) VisitCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.siteUsecase.VisitCount(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read visit count")
		writeError(w, http.StatusInternalServerError, "failed to read visit count")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *SiteHandler) IncrementVisitCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.siteUsecase.RecordVisit(r.Context(), clientIP(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to record visit")
		writeError(w, http.StatusInternalServerError, "failed to log visit")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *SiteHandler) LogVisit(w http.ResponseWriter, r *http.Request) {
	if _, err := h.siteUsecase.RecordVisit(r.Context(), clientIP(r)); err != nil {
		h.logger.Error().Err(err).Msg("failed to record visit")
		writeError(w, http.StatusInternalServerError, "failed to log visit")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "visit logged"})
}

func (h *SiteHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
