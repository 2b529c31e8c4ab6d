package handlers

import "encoding/json"

// Request Types

type SponsorTransactionRequest struct {
	TransactionKindBytes   string   `json:"transactionKindBytes"`
	Sender                 string   `json:"sender"`
	AllowedMoveCallTargets []string `json:"allowedMoveCallTargets,omitempty"`
	AllowedAddresses       []string `json:"allowedAddresses,omitempty"`
	Network                string   `json:"network,omitempty"`
}

type ExecuteTransactionRequest struct {
	Digest    string `json:"digest"`
	Signature string `json:"signature"`
}

// Response Types

type SponsorTransactionResponse struct {
	Success bool   `json:"success"`
	Bytes   string `json:"bytes"`
	Digest  string `json:"digest"`
}

type ExecuteTransactionResponse struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
