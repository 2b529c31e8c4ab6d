package enoki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	httpClient "github.com/galerie-com/app-galerie/internal/client/http"
	"github.com/galerie-com/app-galerie/internal/sponsorship"

	pkgerrors "github.com/pkg/errors"
)

// CreateSponsoredTransactionRequest is the wire request for a sponsorship.
// AllowedMoveCallTargets is omitted entirely when empty so the provider
// default applies; an empty list and an absent list are not the same thing
// to the provider.
type CreateSponsoredTransactionRequest struct {
	Network                string   `json:"network"`
	TransactionKindBytes   string   `json:"transactionKindBytes"`
	Sender                 string   `json:"sender"`
	AllowedMoveCallTargets []string `json:"allowedMoveCallTargets,omitempty"`
	AllowedAddresses       []string `json:"allowedAddresses,omitempty"`
}

// CreateSponsoredTransactionResponse is the wire response for a sponsorship
type CreateSponsoredTransactionResponse struct {
	Data struct {
		Bytes  string `json:"bytes"`
		Digest string `json:"digest"`
	} `json:"data"`
}

// ExecuteSponsoredTransactionRequest is the wire request for an execution
type ExecuteSponsoredTransactionRequest struct {
	Signature string `json:"signature"`
}

// ExecuteSponsoredTransactionResponse is the wire response for an execution
type ExecuteSponsoredTransactionResponse struct {
	Data json.RawMessage `json:"data"`
}

// CreateSponsoredTransaction submits an unsigned transaction kind plus
// allow-list constraints and returns the sponsor-cosigned transaction bytes
// together with the digest that correlates the later execution call.
//
// Each call produces at most one sponsored transaction; no local state is
// mutated and nothing is retried.
func (c *EnokiClient) CreateSponsoredTransaction(ctx context.Context, request CreateSponsoredTransactionRequest) (*CreateSponsoredTransactionResponse, error) {
	if request.TransactionKindBytes == "" {
		return nil, fmt.Errorf("transactionKindBytes is required")
	}
	if request.Sender == "" {
		return nil, fmt.Errorf("sender is required")
	}
	if request.Network == "" {
		request.Network = string(sponsorship.NetworkTestnet)
	}

	resp, err := c.httpClient.Post(
		ctx,
		"/transaction-blocks/sponsor",
		request,
		httpClient.WithBearerToken(c.apiKey),
	)
	if err != nil {
		return nil, providerError("sponsor", err)
	}

	var sponsored CreateSponsoredTransactionResponse
	if err := c.httpClient.ProcessJSONResponse(resp, &sponsored); err != nil {
		return nil, providerError("sponsor", pkgerrors.Wrap(err, "failed to process sponsor response"))
	}
	if sponsored.Data.Bytes == "" || sponsored.Data.Digest == "" {
		return nil, providerError("sponsor", fmt.Errorf("provider returned an incomplete sponsorship: bytes or digest missing"))
	}

	return &sponsored, nil
}

// ExecuteSponsoredTransaction submits the user signature for a previously
// sponsored transaction. The provider rejects unknown, expired, and
// already-executed digests; the caller must not execute a digest twice.
func (c *EnokiClient) ExecuteSponsoredTransaction(ctx context.Context, digest, signature string) (*ExecuteSponsoredTransactionResponse, error) {
	if digest == "" {
		return nil, fmt.Errorf("digest is required")
	}
	if signature == "" {
		return nil, fmt.Errorf("signature is required")
	}

	// The digest is caller-supplied; escaping keeps it a single path
	// segment of this endpoint no matter what it contains.
	resp, err := c.httpClient.Post(
		ctx,
		"/transaction-blocks/sponsor/"+url.PathEscape(digest),
		ExecuteSponsoredTransactionRequest{Signature: signature},
		httpClient.WithBearerToken(c.apiKey),
	)
	if err != nil {
		return nil, executionError(err)
	}

	var executed ExecuteSponsoredTransactionResponse
	if err := c.httpClient.ProcessJSONResponse(resp, &executed); err != nil {
		return nil, executionError(pkgerrors.Wrap(err, "failed to process execute response"))
	}

	return &executed, nil
}

// providerError wraps a transport or provider failure as a SponsorshipError,
// preserving the provider's raw body for operator logs only.
func providerError(op string, err error) error {
	return &sponsorship.SponsorshipError{
		Detail: providerDetail(err),
		Err:    pkgerrors.Wrapf(err, "enoki %s call failed", op),
	}
}

func executionError(err error) error {
	return &sponsorship.ExecutionError{
		Detail: providerDetail(err),
		Err:    pkgerrors.Wrap(err, "enoki execute call failed"),
	}
}

func providerDetail(err error) string {
	var httpErr *httpClient.HTTPError
	if errors.As(err, &httpErr) && httpErr.Body != "" {
		return httpErr.Body
	}
	return err.Error()
}
