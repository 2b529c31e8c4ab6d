package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/galerie-com/app-galerie/internal/logger"
	"github.com/galerie-com/app-galerie/internal/sponsorship"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SponsorshipHandler exposes the two stateless sponsorship operations. It
// is the only place the credential-holding provider services are reachable
// from; the operations share no state, so any number of requests may run
// concurrently.
type SponsorshipHandler struct {
	policy   *sponsorship.Policy
	sponsor  sponsorship.SponsorshipService
	executor sponsorship.ExecutionService
}

// NewSponsorshipHandler creates a handler backed by the given provider
// services and allow-list policy.
func NewSponsorshipHandler(policy *sponsorship.Policy, sponsor sponsorship.SponsorshipService, executor sponsorship.ExecutionService) *SponsorshipHandler {
	if policy == nil {
		policy = sponsorship.NewPolicy(nil)
	}
	return &SponsorshipHandler{
		policy:   policy,
		sponsor:  sponsor,
		executor: executor,
	}
}

// SponsorTransaction godoc
// @Summary      Sponsor a transaction
// @Description  Builds a gas-sponsored transaction envelope for the given transaction kind, bounded by the allow-list constraints
// @Tags         sponsorship
// @Accept       json
// @Produce      json
// @Param        request  body      SponsorTransactionRequest  true  "Transaction kind bytes, sender, and optional allow-lists"
// @Success      200  {object}  SponsorTransactionResponse  "Sponsor-cosigned transaction bytes and digest"
// @Failure      400  {object}  ErrorResponse               "Missing or invalid fields"
// @Failure      500  {object}  ErrorResponse               "Provider failure"
// @Router       /api/sponsor-transaction [post]
func (h *SponsorshipHandler) SponsorTransaction(c *gin.Context) {
	var req SponsorTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// Field checks and policy run before any outbound call; a structurally
	// invalid request never reaches the provider.
	if req.TransactionKindBytes == "" || req.Sender == "" {
		sendError(c, http.StatusBadRequest,
			"Missing required fields: transactionKindBytes, sender", nil)
		return
	}
	if _, err := base64.StdEncoding.DecodeString(req.TransactionKindBytes); err != nil {
		sendError(c, http.StatusBadRequest,
			"transactionKindBytes must be valid base64", err)
		return
	}

	network, ok := sponsorship.ParseNetwork(req.Network)
	if !ok {
		sendError(c, http.StatusBadRequest,
			"network must be one of testnet, mainnet, devnet", nil)
		return
	}

	constraints, err := h.policy.Validate(req.Sender, req.AllowedMoveCallTargets, req.AllowedAddresses)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	logger.Info("Sponsoring transaction",
		zap.String("sender", req.Sender),
		zap.String("network", string(network)),
		zap.String("request_id", c.GetString("request_id")),
	)

	record, err := h.sponsor.SponsorTransaction(c.Request.Context(), sponsorship.TransactionIntent{
		TransactionKindBytes: req.TransactionKindBytes,
		Sender:               req.Sender,
	}, constraints, network)
	if err != nil {
		var sponsorErr *sponsorship.SponsorshipError
		detail := err.Error()
		if errors.As(err, &sponsorErr) {
			detail = sponsorErr.Detail
		}
		sendProviderError(c, http.StatusInternalServerError,
			"Failed to sponsor transaction", detail, err)
		return
	}

	sendSuccess(c, http.StatusOK, SponsorTransactionResponse{
		Success: true,
		Bytes:   record.TransactionBytes,
		Digest:  record.Digest,
	})
}

// ExecuteTransaction godoc
// @Summary      Execute a sponsored transaction
// @Description  Submits the user signature for a previously sponsored transaction and broadcasts it
// @Tags         sponsorship
// @Accept       json
// @Produce      json
// @Param        request  body      ExecuteTransactionRequest  true  "Sponsorship digest and user signature"
// @Success      200  {object}  ExecuteTransactionResponse  "Provider execution receipt"
// @Failure      400  {object}  ErrorResponse               "Missing digest or signature"
// @Failure      500  {object}  ErrorResponse               "Provider failure"
// @Router       /api/execute-transaction [post]
func (h *SponsorshipHandler) ExecuteTransaction(c *gin.Context) {
	var req ExecuteTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Digest == "" || req.Signature == "" {
		sendError(c, http.StatusBadRequest,
			"Missing required fields: digest, signature", nil)
		return
	}
	// The digest names a provider resource; a caller must not be able to
	// steer the credentialed request anywhere else with path or query
	// metacharacters.
	if !sponsorship.IsDigestValid(req.Digest) {
		sendError(c, http.StatusBadRequest,
			"digest is not a valid transaction digest", nil)
		return
	}

	logger.Info("Executing sponsored transaction",
		zap.String("digest", req.Digest),
		zap.String("request_id", c.GetString("request_id")),
	)

	receipt, err := h.executor.ExecuteTransaction(c.Request.Context(), sponsorship.SignedExecution{
		Digest:    req.Digest,
		Signature: req.Signature,
	})
	if err != nil {
		var execErr *sponsorship.ExecutionError
		detail := err.Error()
		if errors.As(err, &execErr) {
			detail = execErr.Detail
		}
		sendProviderError(c, http.StatusInternalServerError,
			"Failed to execute transaction", detail, err)
		return
	}

	sendSuccess(c, http.StatusOK, ExecuteTransactionResponse{
		Success: true,
		Result:  receipt.Raw,
	})
}
