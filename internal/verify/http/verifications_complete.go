package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/verify/internal/verify/service"
	"github.com/aussiebroadwan/verify/pkg/httpx"
	"github.com/aussiebroadwan/verify/pkg/slogx"
	"github.com/aussiebroadwan/verify/pkg/verifysdk"
)

// CompleteHandler accepts collected attribute bundles from the
// verification page.
type CompleteHandler struct {
	VerificationService *service.VerificationService
}

// ServeHTTP godoc
//
//	@Summary		Complete Verification
//	@Description	Redeems a verification token with the collected attribute bundle. The
//	@Description	transition is at-most-once: concurrent submissions race and exactly one
//	@Description	wins. The response includes the rendered operator report.
//	@Tags			Verifications
//	@Accept			json
//	@Produce		json
//	@Security		ApiSecretAuth
//	@Param			request	body		verifysdk.CompleteVerificationRequest	true	"Token and collected bundle"
//	@Success		200		{object}	verifysdk.CompleteVerificationResponse	"platform_id, completed_at, report"
//	@Failure		400		{object}	verifysdk.ErrorResponse					"error, error_description"
//	@Failure		401		{object}	verifysdk.ErrorResponse					"error, error_description"
//	@Failure		404		{object}	verifysdk.ErrorResponse					"error, error_description"
//	@Failure		409		{object}	verifysdk.ErrorResponse					"error, error_description"
//	@Failure		410		{object}	verifysdk.ErrorResponse					"error, error_description"
//	@Failure		500		{object}	verifysdk.ErrorResponse					"error, error_description"
//	@Router			/v1/verifications/complete [post].
func (h *CompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req verifysdk.CompleteVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, verifysdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	if req.Token == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, verifysdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "token is required",
		})
		return
	}

	payload, err := h.VerificationService.Complete(ctx, req.Token, req.Bundle)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMalformedBundle):
			httpx.WriteJSON(w, http.StatusBadRequest, verifysdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "bundle must be a JSON object",
			})
		case errors.Is(err, service.ErrTokenNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, verifysdk.ErrorResponse{
				Error:            "not_found",
				ErrorDescription: "Verification token is unknown",
			})
		case errors.Is(err, service.ErrTokenExpired):
			httpx.WriteJSON(w, http.StatusGone, verifysdk.ErrorResponse{
				Error:            "expired",
				ErrorDescription: "Verification token has expired",
			})
		case errors.Is(err, service.ErrAlreadyCompleted):
			httpx.WriteJSON(w, http.StatusConflict, verifysdk.ErrorResponse{
				Error:            "already_completed",
				ErrorDescription: "Verification token was already redeemed",
			})
		default:
			log.Error("failed to complete verification", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, verifysdk.ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to complete verification",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, verifysdk.CompleteVerificationResponse{
		PlatformID:  payload.Principal.PlatformID,
		DisplayName: payload.Principal.DisplayName,
		CompletedAt: payload.CompletedAt.Format(time.RFC3339),
		Report:      service.FormatNotification(payload),
	})
}
