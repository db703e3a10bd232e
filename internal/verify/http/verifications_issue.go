package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/verify/internal/verify/service"
	"github.com/aussiebroadwan/verify/pkg/httpx"
	"github.com/aussiebroadwan/verify/pkg/slogx"
	"github.com/aussiebroadwan/verify/pkg/verifysdk"
)

// IssueHandler mints verification tokens.
type IssueHandler struct {
	VerificationService *service.VerificationService
}

// ServeHTTP godoc
//
//	@Summary		Issue Verification Token
//	@Description	Mints a single-use verification token for a chat-platform principal and
//	@Description	composes the link the principal should open. The raw token appears only
//	@Description	in this response; the service stores its fingerprint.
//	@Tags			Verifications
//	@Accept			json
//	@Produce		json
//	@Param			request	body		verifysdk.IssueVerificationRequest	true	"Principal to verify"
//	@Success		200		{object}	verifysdk.IssueVerificationResponse	"token, verification_url, expires_at"
//	@Failure		400		{object}	verifysdk.ErrorResponse				"error, error_description"
//	@Failure		500		{object}	verifysdk.ErrorResponse				"error, error_description"
//	@Router			/v1/verifications [post].
func (h *IssueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Parse request body
	var req verifysdk.IssueVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, verifysdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	if strings.TrimSpace(req.PlatformID) == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, verifysdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "platform_id is required",
		})
		return
	}

	issued, err := h.VerificationService.IssueToken(ctx, service.PrincipalInfo{
		PlatformID:  req.PlatformID,
		DisplayName: req.DisplayName,
		Handle:      req.Handle,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPrincipal) {
			httpx.WriteJSON(w, http.StatusBadRequest, verifysdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "platform_id is required",
			})
			return
		}
		log.Error("failed to issue verification token", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, verifysdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to issue verification token",
		})
		return
	}

	// The response carries a live credential; never let it be cached.
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, verifysdk.IssueVerificationResponse{
		Token:           issued.Token,
		VerificationURL: issued.VerificationURL,
		ExpiresAt:       issued.ExpiresAt.Format(time.RFC3339),
	})
}
