/*
Package verifysdk provides a client SDK for the verification service.

# Overview

The SDK covers the full verification lifecycle: issuing a single-use token
for a chat-platform principal, submitting the collected attribute bundle
from the verification page, and querying a principal's current status.

Create an SDKClient and call operations directly:

	client := verifysdk.NewSDKClient("https://verify.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Issue a verification token
	issued, err := client.IssueVerification(ctx, verifysdk.IssueVerificationRequest{
		PlatformID:  "555001",
		DisplayName: "Ana",
	})

	// Submit the collected bundle (completion callback)
	client.APISecret = "shared-secret"
	result, err := client.CompleteVerification(ctx, verifysdk.CompleteVerificationRequest{
		Token:  issued.Token,
		Bundle: map[string]any{"ip": "203.0.113.9"},
	})

	// Query the principal's most recent verification
	status, err := client.GetStatus(ctx, "555001")

# Error Handling

Service rejections are returned as *APIError with the machine-readable
code preserved:

	_, err := client.CompleteVerification(ctx, req)
	var apiErr *verifysdk.APIError
	if errors.As(err, &apiErr) && apiErr.IsExpired() {
		// ask the principal to request a fresh link
	}
*/
package verifysdk
