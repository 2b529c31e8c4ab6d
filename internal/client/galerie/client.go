// Package galerie is the credential-less client for the sponsor backend's
// public API. It implements the sponsorship orchestration interfaces by
// calling /api/sponsor-transaction and /api/execute-transaction, so the same
// orchestrator that runs inside the backend can drive a full
// sponsor → sign → execute flow from a party that never sees the Enoki key.
package galerie

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	httpClient "github.com/galerie-com/app-galerie/internal/client/http"
	"github.com/galerie-com/app-galerie/internal/sponsorship"

	pkgerrors "github.com/pkg/errors"
)

// Client talks to the sponsor backend. It holds no credential.
type Client struct {
	httpClient *httpClient.HTTPClient
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: httpClient.NewHTTPClient(
			httpClient.WithBaseURL(baseURL),
			httpClient.WithTimeout(timeout),
		),
	}
}

var (
	_ sponsorship.SponsorshipService = (*Client)(nil)
	_ sponsorship.ExecutionService   = (*Client)(nil)
)

type sponsorTransactionRequest struct {
	TransactionKindBytes   string   `json:"transactionKindBytes"`
	Sender                 string   `json:"sender"`
	AllowedMoveCallTargets []string `json:"allowedMoveCallTargets,omitempty"`
	AllowedAddresses       []string `json:"allowedAddresses,omitempty"`
	Network                string   `json:"network,omitempty"`
}

type sponsorTransactionResponse struct {
	Success bool   `json:"success"`
	Bytes   string `json:"bytes"`
	Digest  string `json:"digest"`
}

type executeTransactionRequest struct {
	Digest    string `json:"digest"`
	Signature string `json:"signature"`
}

type executeTransactionResponse struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// SponsorTransaction implements sponsorship.SponsorshipService.
func (c *Client) SponsorTransaction(ctx context.Context, intent sponsorship.TransactionIntent, constraints sponsorship.AllowListConstraints, network sponsorship.Network) (*sponsorship.SponsorshipRecord, error) {
	resp, err := c.httpClient.Post(ctx, "/api/sponsor-transaction", sponsorTransactionRequest{
		TransactionKindBytes:   intent.TransactionKindBytes,
		Sender:                 intent.Sender,
		AllowedMoveCallTargets: constraints.CallTargets,
		AllowedAddresses:       constraints.Addresses,
		Network:                string(network),
	})
	if err != nil {
		return nil, &sponsorship.SponsorshipError{
			Detail: backendDetail(err),
			Err:    pkgerrors.Wrap(err, "sponsor request failed"),
		}
	}

	var sponsored sponsorTransactionResponse
	if err := c.httpClient.ProcessJSONResponse(resp, &sponsored); err != nil {
		return nil, &sponsorship.SponsorshipError{
			Detail: backendDetail(err),
			Err:    pkgerrors.Wrap(err, "failed to process sponsor response"),
		}
	}

	return &sponsorship.SponsorshipRecord{
		TransactionBytes: sponsored.Bytes,
		Digest:           sponsored.Digest,
	}, nil
}

// ExecuteTransaction implements sponsorship.ExecutionService.
func (c *Client) ExecuteTransaction(ctx context.Context, exec sponsorship.SignedExecution) (*sponsorship.ExecutionReceipt, error) {
	resp, err := c.httpClient.Post(ctx, "/api/execute-transaction", executeTransactionRequest{
		Digest:    exec.Digest,
		Signature: exec.Signature,
	})
	if err != nil {
		return nil, &sponsorship.ExecutionError{
			Detail: backendDetail(err),
			Err:    pkgerrors.Wrap(err, "execute request failed"),
		}
	}

	var executed executeTransactionResponse
	if err := c.httpClient.ProcessJSONResponse(resp, &executed); err != nil {
		return nil, &sponsorship.ExecutionError{
			Detail: backendDetail(err),
			Err:    pkgerrors.Wrap(err, "failed to process execute response"),
		}
	}

	return &sponsorship.ExecutionReceipt{Raw: executed.Result}, nil
}

// backendDetail pulls the backend's error message out of a failed response
// body when there is one.
func backendDetail(err error) string {
	var httpErr *httpClient.HTTPError
	if errors.As(err, &httpErr) && httpErr.Body != "" {
		var body errorResponse
		if jsonErr := json.Unmarshal([]byte(httpErr.Body), &body); jsonErr == nil && body.Error != "" {
			return body.Error
		}
		return httpErr.Body
	}
	return err.Error()
}
