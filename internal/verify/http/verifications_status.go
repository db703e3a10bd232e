package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/verify/internal/verify/service"
	"github.com/aussiebroadwan/verify/pkg/httpx"
	"github.com/aussiebroadwan/verify/pkg/slogx"
	"github.com/aussiebroadwan/verify/pkg/verifysdk"
)

// StatusHandler reports the state of a principal's most recent token.
type StatusHandler struct {
	VerificationService *service.VerificationService
}

// ServeHTTP godoc
//
//	@Summary		Query Verification Status
//	@Description	Returns the lazily-resolved status of the principal's most recently
//	@Description	issued token. Principals with no tokens get an inactive view rather
//	@Description	than an error.
//	@Tags			Verifications
//	@Produce		json
//	@Param			principal_id	query		string					true	"Chat-platform principal identifier"
//	@Success		200				{object}	verifysdk.StatusResponse	"active, status, status_text"
//	@Failure		400				{object}	verifysdk.ErrorResponse		"error, error_description"
//	@Failure		500				{object}	verifysdk.ErrorResponse		"error, error_description"
//	@Router			/v1/verifications/status [get].
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	platformID := r.URL.Query().Get("principal_id")
	if platformID == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, verifysdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "principal_id is required",
		})
		return
	}

	view, err := h.VerificationService.QueryStatus(ctx, platformID)
	if err != nil {
		log.Error("failed to query verification status", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, verifysdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to query verification status",
		})
		return
	}

	resp := verifysdk.StatusResponse{
		Active:     view.Active,
		StatusText: view.Human(),
	}
	if view.Active {
		resp.Status = string(view.Status)
		resp.ExpiresAt = view.ExpiresAt.Format(time.RFC3339)
		if view.CompletedAt != nil {
			resp.CompletedAt = view.CompletedAt.Format(time.RFC3339)
		}
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, resp)
}
