package sponsorship

import "encoding/json"

// Network identifies the Sui network a sponsored transaction targets.
type Network string

const (
	NetworkTestnet Network = "testnet"
	NetworkMainnet Network = "mainnet"
	NetworkDevnet  Network = "devnet"
)

// ParseNetwork maps a request-supplied network name onto the closed
// enumeration, defaulting to testnet when unspecified.
func ParseNetwork(s string) (Network, bool) {
	switch Network(s) {
	case "":
		return NetworkTestnet, true
	case NetworkTestnet, NetworkMainnet, NetworkDevnet:
		return Network(s), true
	default:
		return "", false
	}
}

// TransactionIntent describes the on-chain operations the user wants
// performed. The kind bytes are an opaque, BCS-encoded transaction kind:
// they carry no sender or gas payer, those are bound by the sponsor. The
// requesting sender travels alongside so the allow-list can be checked
// against it. Immutable once built; consumed by a single orchestration run.
type TransactionIntent struct {
	// TransactionKindBytes is the base64-encoded transaction kind.
	TransactionKindBytes string
	// Sender is the address initiating the transaction.
	Sender string
}

// AllowListConstraints bounds what a sponsored transaction is permitted to
// do. A nil CallTargets slice means the provider default applies; Addresses
// always contains at least the requesting sender after validation.
type AllowListConstraints struct {
	CallTargets []string
	Addresses   []string
}

// SponsorshipRecord is the result of a successful sponsorship request. The
// digest correlates the later execution call with this exact sponsored
// transaction; neither field outlives one orchestration attempt.
type SponsorshipRecord struct {
	// TransactionBytes is the base64-encoded, sponsor-cosigned transaction.
	// The user signature must cover exactly these bytes.
	TransactionBytes string
	// Digest uniquely identifies this sponsored-transaction instance.
	Digest string
}

// SignedExecution pairs a sponsorship digest with the user's signature over
// the matching transaction bytes.
type SignedExecution struct {
	Digest string
	// Signature is the base64-encoded user signature.
	Signature string
}

// ExecutionReceipt is the provider's confirmation that the transaction was
// broadcast. Its shape is provider-defined; callers treat it as opaque.
type ExecutionReceipt struct {
	Raw json.RawMessage
}
