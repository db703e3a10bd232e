package verifysdk

import (
	"context"
	"net/http"
	"net/url"
)

// IssueVerification mints a single-use verification token for a principal.
// The raw token in the response exists nowhere else; losing it means
// issuing a new one.
func (c *SDKClient) IssueVerification(
	ctx context.Context,
	req IssueVerificationRequest,
) (*IssueVerificationResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/verifications", req, nil)
	if err != nil {
		return nil, err
	}

	var issueResp IssueVerificationResponse
	if err := decodeJSON(resp, &issueResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &issueResp, nil
}

// CompleteVerification submits a collected attribute bundle against a
// token. Sends the client's APISecret when configured.
func (c *SDKClient) CompleteVerification(
	ctx context.Context,
	req CompleteVerificationRequest,
) (*CompleteVerificationResponse, error) {
	var headers map[string]string
	if c.APISecret != "" {
		headers = map[string]string{"X-Api-Secret": c.APISecret}
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/verifications/complete", req, headers)
	if err != nil {
		return nil, err
	}

	var completeResp CompleteVerificationResponse
	if err := decodeJSON(resp, &completeResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &completeResp, nil
}

// GetStatus queries the status of a principal's most recent verification.
func (c *SDKClient) GetStatus(
	ctx context.Context,
	platformID string,
) (*StatusResponse, error) {
	path := "/v1/verifications/status?principal_id=" + url.QueryEscape(platformID)

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var statusResp StatusResponse
	if err := decodeJSON(resp, &statusResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &statusResp, nil
}
