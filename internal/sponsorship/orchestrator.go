package sponsorship

import (
	"context"
	"errors"

	"github.com/galerie-com/app-galerie/internal/logger"

	"go.uber.org/zap"
)

// State is the position of an orchestration run in the
// Built → Sponsored → Signed → Executed pipeline.
type State string

const (
	StateBuilt     State = "built"
	StateSponsored State = "sponsored"
	StateSigned    State = "signed"
	StateExecuted  State = "executed"
	StateFailed    State = "failed"
)

// SponsorshipService submits an unsigned transaction kind plus allow-list
// constraints and returns the sponsor-cosigned transaction. Implementations
// must not retry internally; retry policy belongs to the caller.
type SponsorshipService interface {
	SponsorTransaction(ctx context.Context, intent TransactionIntent, constraints AllowListConstraints, network Network) (*SponsorshipRecord, error)
}

// ExecutionService submits the digest and user signature for broadcast.
// Implementations must not retry internally: executing twice for the same
// digest after a first success is provider-defined behavior.
type ExecutionService interface {
	ExecuteTransaction(ctx context.Context, exec SignedExecution) (*ExecutionReceipt, error)
}

// Signer produces the user's signature over the sponsor-cosigned transaction
// bytes. It may suspend indefinitely awaiting user interaction and returns a
// *SigningError with Cancelled set when the user abandons the flow.
type Signer interface {
	SignTransaction(ctx context.Context, transactionBytes string) (signature string, err error)
}

// Result reports where an orchestration run ended up. On failure, Stage
// names the step that failed and Err carries the cause; Record is populated
// from the Sponsored state onward so a caller can tell whether a sponsored
// transaction was left outstanding at the provider.
type Result struct {
	State   State
	Stage   Stage
	Record  *SponsorshipRecord
	Receipt *ExecutionReceipt
	Err     error
}

// Orchestrator sequences one transaction attempt through
// validate → sponsor → sign → execute. Each transition is attempted at most
// once; a caller that wants to retry must re-enter with a freshly built
// intent, never with a digest from a prior run (the provider may have
// invalidated it).
//
// The orchestrator holds no sponsor credential. Only the services behind the
// SponsorshipService and ExecutionService interfaces do, which lets the same
// decision logic run on a party that must never see the credential.
type Orchestrator struct {
	policy   *Policy
	sponsor  SponsorshipService
	signer   Signer
	executor ExecutionService
}

// NewOrchestrator wires an orchestrator. policy may be nil, in which case a
// default policy with no operator target list is used.
func NewOrchestrator(policy *Policy, sponsor SponsorshipService, signer Signer, executor ExecutionService) *Orchestrator {
	if policy == nil {
		policy = NewPolicy(nil)
	}
	return &Orchestrator{
		policy:   policy,
		sponsor:  sponsor,
		signer:   signer,
		executor: executor,
	}
}

// Run drives a single transaction attempt to completion. Runs are
// independent: concurrent calls share no mutable state, and each run owns
// its digest and transaction bytes exclusively.
//
// The returned Result is always non-nil; its Err field matches the returned
// error. A cancelled ctx fails the run at the stage it was about to enter;
// a step already in flight sees the cancellation through its own ctx.
func (o *Orchestrator) Run(ctx context.Context, intent TransactionIntent, requestedTargets, requestedAddresses []string, network Network) (*Result, error) {
	result := &Result{State: StateBuilt}

	constraints, err := o.policy.Validate(intent.Sender, requestedTargets, requestedAddresses)
	if err != nil {
		return o.fail(result, StageSponsoring, err)
	}
	if err := ctx.Err(); err != nil {
		return o.fail(result, StageSponsoring, err)
	}

	record, err := o.sponsor.SponsorTransaction(ctx, intent, constraints, network)
	if err != nil {
		return o.fail(result, StageSponsoring, err)
	}
	result.State = StateSponsored
	result.Record = record

	if err := ctx.Err(); err != nil {
		return o.fail(result, StageSigning, err)
	}
	signature, err := o.signer.SignTransaction(ctx, record.TransactionBytes)
	if err != nil {
		// A sponsored-but-never-executed transaction is now outstanding at
		// the provider; it is the provider's job to expire it.
		return o.fail(result, StageSigning, err)
	}
	result.State = StateSigned

	if err := ctx.Err(); err != nil {
		return o.fail(result, StageExecuting, err)
	}
	receipt, err := o.executor.ExecuteTransaction(ctx, SignedExecution{
		Digest:    record.Digest,
		Signature: signature,
	})
	if err != nil {
		return o.fail(result, StageExecuting, err)
	}
	result.State = StateExecuted
	result.Receipt = receipt

	logger.Debug("sponsored transaction executed",
		zap.String("sender", intent.Sender),
		zap.String("digest", record.Digest),
		zap.String("network", string(network)))

	return result, nil
}

func (o *Orchestrator) fail(result *Result, stage Stage, err error) (*Result, error) {
	result.State = StateFailed
	result.Stage = stage
	result.Err = err

	var sigErr *SigningError
	if stage == StageSigning && errors.As(err, &sigErr) && sigErr.Cancelled {
		// User abandonment is benign: the transaction was simply not sent.
		logger.Debug("sponsored transaction abandoned by user",
			zap.String("digest", result.Record.Digest))
		return result, err
	}

	logger.Warn("sponsored transaction failed",
		zap.String("stage", string(stage)),
		zap.Error(err))
	return result, err
}
