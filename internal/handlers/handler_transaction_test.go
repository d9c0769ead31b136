package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/personal_banking_app/internal/apperrors"
	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	portssvc "github.com/SscSPs/personal_banking_app/internal/core/ports/services"
	"github.com/SscSPs/personal_banking_app/internal/dto"
	"github.com/SscSPs/personal_banking_app/internal/handlers"
	"github.com/SscSPs/personal_banking_app/internal/middleware"
	"github.com/SscSPs/personal_banking_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Deposit(ctx context.Context, userID, kindToken string, amount decimal.Decimal) (*domain.MovementResult, error) {
	args := m.Called(ctx, userID, kindToken, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementResult), args.Error(1)
}

func (m *MockTransactionService) Withdraw(ctx context.Context, userID, kindToken string, amount decimal.Decimal) (*domain.MovementResult, error) {
	args := m.Called(ctx, userID, kindToken, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementResult), args.Error(1)
}

func (m *MockTransactionService) Purchase(ctx context.Context, userID, kindToken string, amount decimal.Decimal, seller, item string) (*domain.MovementResult, error) {
	args := m.Called(ctx, userID, kindToken, amount, seller, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementResult), args.Error(1)
}

func (m *MockTransactionService) Transfer(ctx context.Context, userID, fromKindToken string, amount decimal.Decimal) (*domain.MovementResult, error) {
	args := m.Called(ctx, userID, fromKindToken, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite Setup ---

const testJWTSecret = "test-secret-for-handler-tests"

type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
	userID      string
	token       string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockService = new(MockTransactionService)
	suite.userID = uuid.NewString()

	token, err := utils.GenerateJWT(suite.userID, testJWTSecret, time.Hour, "test-issuer")
	suite.Require().NoError(err)
	suite.token = token

	handler := handlers.NewTransactionHandler(suite.mockService)

	suite.router = gin.New()
	accounts := suite.router.Group("/api/v1/accounts", middleware.AuthMiddleware(testJWTSecret))
	accounts.POST("/:kind/deposit", handler.Deposit)
	accounts.POST("/:kind/withdraw", handler.Withdraw)
	accounts.POST("/:kind/transfer", handler.Transfer)
}

func (suite *TransactionHandlerTestSuite) doPost(path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestDeposit_Success() {
	accountID := uuid.NewString()
	amount := decimal.RequireFromString("100.50")
	result := &domain.MovementResult{
		Entry: domain.LedgerEntry{
			TransactionID: uuid.NewString(),
			EntryType:     domain.Deposit,
			Amount:        amount,
			UserID:        suite.userID,
			AccountID:     accountID,
			CreatedAt:     time.Now().UTC(),
		},
		Balances: map[string]decimal.Decimal{accountID: amount},
	}

	suite.mockService.On("Deposit", mock.Anything, suite.userID, "checking", amount).Return(result, nil).Once()

	w := suite.doPost("/api/v1/accounts/checking/deposit", `{"amount": "100.50"}`, suite.token)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.MovementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.Deposit), resp.Entry.EntryType)
	suite.Equal("100.5", resp.Balances[accountID])
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeposit_MissingToken() {
	w := suite.doPost("/api/v1/accounts/checking/deposit", `{"amount": "10"}`, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "Deposit")
}

func (suite *TransactionHandlerTestSuite) TestDeposit_MalformedAmount() {
	w := suite.doPost("/api/v1/accounts/checking/deposit", `{"amount": "ten"}`, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "Deposit")
}

func (suite *TransactionHandlerTestSuite) TestWithdraw_InsufficientFunds() {
	amount := decimal.NewFromInt(500)
	suite.mockService.On("Withdraw", mock.Anything, suite.userID, "checking", amount).
		Return(nil, fmt.Errorf("%w: balance 10, requested 500", apperrors.ErrInsufficientFunds)).Once()

	w := suite.doPost("/api/v1/accounts/checking/withdraw", `{"amount": "500"}`, suite.token)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestWithdraw_UnknownKind() {
	amount := decimal.NewFromInt(5)
	suite.mockService.On("Withdraw", mock.Anything, suite.userID, "offshore", amount).
		Return(nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidAccountKind, "offshore")).Once()

	w := suite.doPost("/api/v1/accounts/offshore/withdraw", `{"amount": "5"}`, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestTransfer_StoreUnavailable() {
	amount := decimal.NewFromInt(25)
	suite.mockService.On("Transfer", mock.Anything, suite.userID, "savings", amount).
		Return(nil, apperrors.ErrStoreUnavailable).Once()

	w := suite.doPost("/api/v1/accounts/savings/transfer", `{"amount": "25"}`, suite.token)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
