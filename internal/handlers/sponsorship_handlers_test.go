package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/galerie-com/app-galerie/internal/sponsorship"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSponsorService is a mock implementation of sponsorship.SponsorshipService
type MockSponsorService struct {
	mock.Mock
}

func (m *MockSponsorService) SponsorTransaction(ctx context.Context, intent sponsorship.TransactionIntent, constraints sponsorship.AllowListConstraints, network sponsorship.Network) (*sponsorship.SponsorshipRecord, error) {
	args := m.Called(ctx, intent, constraints, network)
	if record := args.Get(0); record != nil {
		return record.(*sponsorship.SponsorshipRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockExecutionService is a mock implementation of sponsorship.ExecutionService
type MockExecutionService struct {
	mock.Mock
}

func (m *MockExecutionService) ExecuteTransaction(ctx context.Context, exec sponsorship.SignedExecution) (*sponsorship.ExecutionReceipt, error) {
	args := m.Called(ctx, exec)
	if receipt := args.Get(0); receipt != nil {
		return receipt.(*sponsorship.ExecutionReceipt), args.Error(1)
	}
	return nil, args.Error(1)
}

func setupRouter(sponsor *MockSponsorService, executor *MockExecutionService, operatorTargets []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewSponsorshipHandler(sponsorship.NewPolicy(operatorTargets), sponsor, executor)

	router := gin.New()
	router.POST("/api/sponsor-transaction", handler.SponsorTransaction)
	router.POST("/api/execute-transaction", handler.ExecuteTransaction)
	router.GET("/health", NewHealthHandler().Health)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSponsorTransactionSuccess(t *testing.T) {
	sponsor := new(MockSponsorService)
	executor := new(MockExecutionService)
	router := setupRouter(sponsor, executor, nil)

	sponsor.On("SponsorTransaction", mock.Anything,
		sponsorship.TransactionIntent{TransactionKindBytes: "dHgta2luZA==", Sender: "0xabc"},
		sponsorship.AllowListConstraints{Addresses: []string{"0xabc"}},
		sponsorship.NetworkTestnet,
	).Return(&sponsorship.SponsorshipRecord{TransactionBytes: "c3BvbnNvcmVk", Digest: "d1"}, nil).Once()

	w := postJSON(router, "/api/sponsor-transaction", SponsorTransactionRequest{
		TransactionKindBytes: "dHgta2luZA==",
		Sender:               "0xabc",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp SponsorTransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "c3BvbnNvcmVk", resp.Bytes)
	assert.Equal(t, "d1", resp.Digest)
	sponsor.AssertExpectations(t)
}

func TestSponsorTransactionMissingFields(t *testing.T) {
	cases := []SponsorTransactionRequest{
		{},
		{Sender: "0xabc"},
		{TransactionKindBytes: "dHgta2luZA=="},
	}
	for _, body := range cases {
		sponsor := new(MockSponsorService)
		executor := new(MockExecutionService)
		router := setupRouter(sponsor, executor, nil)

		w := postJSON(router, "/api/sponsor-transaction", body)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "Missing required fields")

		// A 400 must be produced without any outbound provider call.
		sponsor.AssertNotCalled(t, "SponsorTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestSponsorTransactionInvalidBase64(t *testing.T) {
	sponsor := new(MockSponsorService)
	executor := new(MockExecutionService)
	router := setupRouter(sponsor, executor, nil)

	w := postJSON(router, "/api/sponsor-transaction", SponsorTransactionRequest{
		TransactionKindBytes: "not base64!!!",
		Sender:               "0xabc",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	sponsor.AssertNotCalled(t, "SponsorTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSponsorTransactionSenderNotAllowed(t *testing.T) {
	sponsor := new(MockSponsorService)
	executor := new(MockExecutionService)
	router := setupRouter(sponsor, executor, nil)

	w := postJSON(router, "/api/sponsor-transaction", SponsorTransactionRequest{
		TransactionKindBytes: "dHgta2luZA==",
		Sender:               "0xabc",
		AllowedAddresses:     []string{"0xother"},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "not in the allowed addresses")

	sponsor.AssertNotCalled(t, "SponsorTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSponsorTransactionInvalidNetwork(t *testing.T) {
	sponsor := new(MockSponsorService)
	executor := new(MockExecutionService)
	router := setupRouter(sponsor, executor, nil)

	w := postJSON(router, "/api/sponsor-transaction", SponsorTransactionRequest{
		TransactionKindBytes: "dHgta2luZA==",
		Sender:               "0xabc",
		Network:              "localnet",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	sponsor.AssertNotCalled(t, "SponsorTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSponsorTransactionProviderFailure(t *testing.T) {
	sponsor := new(MockSponsorService)
	executor := new(MockExecutionService)
	router := setupRouter(sponsor, executor, nil)

	sponsor.On("SponsorTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &sponsorship.SponsorshipError{
			Detail: "sponsor pool exhausted\ninternal trace: frame 1",
		}).Once()

	w := postJSON(router, "/api/sponsor-transaction", SponsorTransactionRequest{
		TransactionKindBytes: "dHgta2luZA==",
		Sender:               "0xabc",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to sponsor transaction", resp.Error)
	// Detail is sanitized: no raw newlines from the provider reach the caller.
	assert.NotContains(t, resp.Details, "\n")
}

func TestSponsorTransactionOperatorAllowList(t *testing.T) {
	target := "0x940d379eda1e4080460be94e20cc79b4f073cc60334e395cee9b798aff6a071b::template::buy"
	sponsor := new(MockSponsorService)
	executor := new(MockExecutionService)
	router := setupRouter(sponsor, executor, []string{target})

	// A request without targets inherits the operator list.
	sponsor.On("SponsorTransaction", mock.Anything, mock.Anything,
		sponsorship.AllowListConstraints{
			CallTargets: []string{target},
			Addresses:   []string{"0xabc"},
		}, sponsorship.NetworkTestnet,
	).Return(&sponsorship.SponsorshipRecord{TransactionBytes: "Yg==", Digest: "d1"}, nil).Once()

	w := postJSON(router, "/api/sponsor-transaction", SponsorTransactionRequest{
		TransactionKindBytes: "dHgta2luZA==",
		Sender:               "0xabc",
	})
	require.Equal(t, http.StatusOK, w.Code)
	sponsor.AssertExpectations(t)

	// A target outside the operator list is rejected before any call.
	w = postJSON(router, "/api/sponsor-transaction", SponsorTransactionRequest{
		TransactionKindBytes:   "dHgta2luZA==",
		Sender:                 "0xabc",
		AllowedMoveCallTargets: []string{"0xdef::other::call"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	sponsor.AssertNumberOfCalls(t, "SponsorTransaction", 1)
}

func TestExecuteTransactionSuccess(t *testing.T) {
	sponsor := new(MockSponsorService)
	executor := new(MockExecutionService)
	router := setupRouter(sponsor, executor, nil)

	executor.On("ExecuteTransaction", mock.Anything, sponsorship.SignedExecution{
		Digest:    "d1",
		Signature: "c2ln",
	}).Return(&sponsorship.ExecutionReceipt{Raw: json.RawMessage(`{"digest":"d1","status":"success"}`)}, nil).Once()

	w := postJSON(router, "/api/execute-transaction", ExecuteTransactionRequest{
		Digest:    "d1",
		Signature: "c2ln",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp ExecuteTransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.JSONEq(t, `{"digest":"d1","status":"success"}`, string(resp.Result))
	executor.AssertExpectations(t)
}

func TestExecuteTransactionMissingFields(t *testing.T) {
	cases := []ExecuteTransactionRequest{
		{},
		{Digest: "d1"},
		{Signature: "c2ln"},
	}
	for _, body := range cases {
		sponsor := new(MockSponsorService)
		executor := new(MockExecutionService)
		router := setupRouter(sponsor, executor, nil)

		w := postJSON(router, "/api/execute-transaction", body)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "Missing required fields")

		executor.AssertNotCalled(t, "ExecuteTransaction", mock.Anything, mock.Anything)
	}
}

func TestExecuteTransactionRejectsDigestMetacharacters(t *testing.T) {
	cases := []string{
		"d1?admin=true",
		"../v2/secrets",
		"d1/extra",
		"d1#fragment",
		"d1%2e%2e",
	}
	for _, digest := range cases {
		sponsor := new(MockSponsorService)
		executor := new(MockExecutionService)
		router := setupRouter(sponsor, executor, nil)

		w := postJSON(router, "/api/execute-transaction", ExecuteTransactionRequest{
			Digest:    digest,
			Signature: "c2ln",
		})

		require.Equal(t, http.StatusBadRequest, w.Code, "digest %q must be rejected", digest)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "not a valid transaction digest")

		// Nothing with URL metacharacters may reach the credentialed client.
		executor.AssertNotCalled(t, "ExecuteTransaction", mock.Anything, mock.Anything)
	}
}

func TestExecuteTransactionProviderFailure(t *testing.T) {
	sponsor := new(MockSponsorService)
	executor := new(MockExecutionService)
	router := setupRouter(sponsor, executor, nil)

	executor.On("ExecuteTransaction", mock.Anything, mock.Anything).
		Return(nil, &sponsorship.ExecutionError{Detail: "digest expired"}).Once()

	w := postJSON(router, "/api/execute-transaction", ExecuteTransactionRequest{
		Digest:    "d1",
		Signature: "c2ln",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to execute transaction", resp.Error)
	assert.Contains(t, resp.Details, "digest expired")
}

func TestHealth(t *testing.T) {
	router := setupRouter(new(MockSponsorService), new(MockExecutionService), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Message)
}
