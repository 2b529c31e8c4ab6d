package sponsorship

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSender = "0xabc"
	testTarget = "0x940d379eda1e4080460be94e20cc79b4f073cc60334e395cee9b798aff6a071b::template::buy"
)

func TestValidateDefaultsAddressesToSender(t *testing.T) {
	policy := NewPolicy(nil)

	constraints, err := policy.Validate(testSender, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{testSender}, constraints.Addresses)
	assert.Empty(t, constraints.CallTargets)
}

func TestValidateSenderAlwaysMemberOfAddresses(t *testing.T) {
	policy := NewPolicy(nil)

	cases := [][]string{
		nil,
		{testSender},
		{"0xdef", testSender},
		{testSender, "0x123", "0x456"},
	}
	for _, addresses := range cases {
		constraints, err := policy.Validate(testSender, nil, addresses)
		require.NoError(t, err)
		assert.Contains(t, constraints.Addresses, testSender)
	}
}

func TestValidateIdempotentNormalization(t *testing.T) {
	policy := NewPolicy(nil)

	addresses := []string{"0xdef", testSender, "0x123"}
	constraints, err := policy.Validate(testSender, nil, addresses)
	require.NoError(t, err)

	// A list that already contains the sender comes back unchanged.
	assert.Equal(t, addresses, constraints.Addresses)

	again, err := policy.Validate(testSender, nil, constraints.Addresses)
	require.NoError(t, err)
	assert.Equal(t, constraints.Addresses, again.Addresses)
}

func TestValidateMissingSender(t *testing.T) {
	policy := NewPolicy(nil)

	_, err := policy.Validate("", nil, nil)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, ReasonMissingSender, validationErr.Reason)
	assert.Equal(t, "sender", validationErr.Field)
}

func TestValidateMalformedSender(t *testing.T) {
	policy := NewPolicy(nil)

	for _, sender := range []string{"abc", "0x", "0xzzz", "0x" + strings.Repeat("a", 100)} {
		_, err := policy.Validate(sender, nil, nil)
		require.Error(t, err, "sender %q should be rejected", sender)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, ReasonInvalidAddress, validationErr.Reason)
	}
}

func TestValidateSenderNotAllowed(t *testing.T) {
	policy := NewPolicy(nil)

	_, err := policy.Validate(testSender, nil, []string{"0xother"})
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, ReasonSenderNotAllowed, validationErr.Reason)
	assert.Equal(t, "allowedAddresses", validationErr.Field)
}

func TestValidateEmptyTargetsPassThrough(t *testing.T) {
	policy := NewPolicy(nil)

	// Absence of targets is not an error and no default list is invented;
	// the provider default governs.
	constraints, err := policy.Validate(testSender, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, constraints.CallTargets)
}

func TestValidateTargetSyntax(t *testing.T) {
	policy := NewPolicy(nil)

	constraints, err := policy.Validate(testSender, []string{testTarget}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{testTarget}, constraints.CallTargets)

	for _, target := range []string{"buy", "0xabc::template", "0xabc::template::", "template::buy::0xabc", "0xabc::te mplate::buy"} {
		_, err := policy.Validate(testSender, []string{target}, nil)
		require.Error(t, err, "target %q should be rejected", target)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, ReasonInvalidTarget, validationErr.Reason)
	}
}

func TestValidateOperatorAllowListSubset(t *testing.T) {
	policy := NewPolicy([]string{testTarget})

	// Targets within the operator list pass.
	constraints, err := policy.Validate(testSender, []string{testTarget}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{testTarget}, constraints.CallTargets)

	// Targets outside it are rejected.
	_, err = policy.Validate(testSender, []string{"0xdef::other::call"}, nil)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, ReasonTargetNotAllowed, validationErr.Reason)
}

func TestValidateOperatorAllowListFallback(t *testing.T) {
	policy := NewPolicy([]string{testTarget})

	// With an operator list configured, a request without targets inherits
	// it instead of falling through to the provider default.
	constraints, err := policy.Validate(testSender, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{testTarget}, constraints.CallTargets)
}

func TestValidateOperatorAllowListImmuneToCallerMutation(t *testing.T) {
	policy := NewPolicy([]string{testTarget})

	constraints, err := policy.Validate(testSender, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []string{testTarget}, constraints.CallTargets)

	// The inherited list is the caller's to mangle; the policy's own copy
	// must be unaffected on the next validation.
	constraints.CallTargets[0] = "0xdef::other::call"

	again, err := policy.Validate(testSender, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{testTarget}, again.CallTargets)

	_, err = policy.Validate(testSender, []string{"0xdef::other::call"}, nil)
	require.Error(t, err)
}

func TestIsDigestValid(t *testing.T) {
	for _, digest := range []string{"d1", "digest-0xabc", "7sGhUXvTbQ3v8wpDVFuoGGD8aTFe3kNLkhSzQgFv7mNd"} {
		assert.True(t, IsDigestValid(digest), "digest %q should be accepted", digest)
	}
	for _, digest := range []string{"", "d1?admin=true", "../v2/secrets", "d1/extra", "d1#x", "d1%2e", strings.Repeat("a", 65)} {
		assert.False(t, IsDigestValid(digest), "digest %q should be rejected", digest)
	}
}

func TestValidateInvalidAllowedAddress(t *testing.T) {
	policy := NewPolicy(nil)

	_, err := policy.Validate(testSender, nil, []string{testSender, "not-an-address"})
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, ReasonInvalidAddress, validationErr.Reason)
}

func TestParseNetwork(t *testing.T) {
	network, ok := ParseNetwork("")
	require.True(t, ok)
	assert.Equal(t, NetworkTestnet, network)

	for _, name := range []string{"testnet", "mainnet", "devnet"} {
		network, ok := ParseNetwork(name)
		require.True(t, ok)
		assert.Equal(t, Network(name), network)
	}

	_, ok = ParseNetwork("localnet")
	assert.False(t, ok)
}
