package sponsorship

import (
	"regexp"
	"strings"
)

var (
	addressPattern    = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	digestPattern     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// IsAddressValid reports whether s is a well-formed Sui address.
func IsAddressValid(s string) bool {
	return addressPattern.MatchString(s)
}

// IsDigestValid reports whether s is plausible transaction digest syntax.
// Digests end up in provider URL paths, so anything outside the base58-style
// alphabet is rejected before it reaches a credentialed request.
func IsDigestValid(s string) bool {
	return digestPattern.MatchString(s)
}

// IsCallTargetValid reports whether s is a fully-qualified move call target
// of the form package::module::function.
func IsCallTargetValid(s string) bool {
	parts := strings.Split(s, "::")
	if len(parts) != 3 {
		return false
	}
	return addressPattern.MatchString(parts[0]) &&
		identifierPattern.MatchString(parts[1]) &&
		identifierPattern.MatchString(parts[2])
}

// Policy normalizes and validates the allow-list constraints attached to a
// sponsorship request. It is pure: no I/O, no mutation, safe for concurrent
// use.
//
// An operator-wide target allow-list may be configured. When present,
// requests without explicit targets inherit it instead of falling through to
// the provider default, and explicit targets must be a subset of it.
type Policy struct {
	allowedCallTargets map[string]struct{}
	allowedOrder       []string
}

// NewPolicy builds a Policy. operatorTargets may be nil, in which case
// target absence is forwarded to the provider as absence.
func NewPolicy(operatorTargets []string) *Policy {
	p := &Policy{}
	if len(operatorTargets) > 0 {
		p.allowedCallTargets = make(map[string]struct{}, len(operatorTargets))
		for _, t := range operatorTargets {
			if _, seen := p.allowedCallTargets[t]; seen {
				continue
			}
			p.allowedCallTargets[t] = struct{}{}
			p.allowedOrder = append(p.allowedOrder, t)
		}
	}
	return p
}

// Validate checks a proposed transaction's sender, call targets, and
// affected addresses, and returns the normalized constraints to attach to
// the sponsorship request.
//
// Addresses default to the single requesting sender when absent. A request
// whose address list already contains the sender is returned unchanged. The
// sender must always be a member of the returned address set: a transaction
// the user initiates that excludes its own sender is self-inconsistent.
func (p *Policy) Validate(sender string, requestedTargets, requestedAddresses []string) (AllowListConstraints, error) {
	if sender == "" {
		return AllowListConstraints{}, newValidationError("sender", ReasonMissingSender,
			"sender is required")
	}
	if !IsAddressValid(sender) {
		return AllowListConstraints{}, newValidationError("sender", ReasonInvalidAddress,
			"sender %q is not a valid address", sender)
	}

	addresses := requestedAddresses
	if len(addresses) == 0 {
		addresses = []string{sender}
	} else {
		senderAllowed := false
		for _, addr := range addresses {
			if !IsAddressValid(addr) {
				return AllowListConstraints{}, newValidationError("allowedAddresses", ReasonInvalidAddress,
					"allowed address %q is not a valid address", addr)
			}
			if addr == sender {
				senderAllowed = true
			}
		}
		if !senderAllowed {
			return AllowListConstraints{}, newValidationError("allowedAddresses", ReasonSenderNotAllowed,
				"sender %q is not in the allowed addresses", sender)
		}
	}

	targets := requestedTargets
	for _, t := range targets {
		if !IsCallTargetValid(t) {
			return AllowListConstraints{}, newValidationError("allowedMoveCallTargets", ReasonInvalidTarget,
				"move call target %q is not a valid package::module::function identifier", t)
		}
	}
	if p.allowedCallTargets != nil {
		if len(targets) == 0 {
			// Fail closed: without an explicit request the operator list
			// bounds the sponsorship, not the provider default. Copied so a
			// caller mutating the result cannot reach back into the policy.
			targets = append([]string(nil), p.allowedOrder...)
		} else {
			for _, t := range targets {
				if _, ok := p.allowedCallTargets[t]; !ok {
					return AllowListConstraints{}, newValidationError("allowedMoveCallTargets", ReasonTargetNotAllowed,
						"move call target %q is not permitted by the operator allow-list", t)
				}
			}
		}
	}

	return AllowListConstraints{
		CallTargets: targets,
		Addresses:   addresses,
	}, nil
}
