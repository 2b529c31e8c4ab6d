package enoki

import (
	"context"

	"github.com/galerie-com/app-galerie/internal/sponsorship"
)

// Service adapts the EnokiClient to the sponsorship orchestration
// interfaces for callers that run inside the trusted backend and may hold
// the credential, such as the request handlers.
type Service struct {
	client *EnokiClient
}

// NewService wraps an EnokiClient.
func NewService(client *EnokiClient) *Service {
	return &Service{client: client}
}

var (
	_ sponsorship.SponsorshipService = (*Service)(nil)
	_ sponsorship.ExecutionService   = (*Service)(nil)
)

// SponsorTransaction implements sponsorship.SponsorshipService.
func (s *Service) SponsorTransaction(ctx context.Context, intent sponsorship.TransactionIntent, constraints sponsorship.AllowListConstraints, network sponsorship.Network) (*sponsorship.SponsorshipRecord, error) {
	sponsored, err := s.client.CreateSponsoredTransaction(ctx, CreateSponsoredTransactionRequest{
		Network:                string(network),
		TransactionKindBytes:   intent.TransactionKindBytes,
		Sender:                 intent.Sender,
		AllowedMoveCallTargets: constraints.CallTargets,
		AllowedAddresses:       constraints.Addresses,
	})
	if err != nil {
		return nil, err
	}

	return &sponsorship.SponsorshipRecord{
		TransactionBytes: sponsored.Data.Bytes,
		Digest:           sponsored.Data.Digest,
	}, nil
}

// ExecuteTransaction implements sponsorship.ExecutionService.
func (s *Service) ExecuteTransaction(ctx context.Context, exec sponsorship.SignedExecution) (*sponsorship.ExecutionReceipt, error) {
	executed, err := s.client.ExecuteSponsoredTransaction(ctx, exec.Digest, exec.Signature)
	if err != nil {
		return nil, err
	}

	return &sponsorship.ExecutionReceipt{Raw: executed.Data}, nil
}
