package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/personal_banking_app/internal/apperrors"
	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	portssvc "github.com/SscSPs/personal_banking_app/internal/core/ports/services"
	"github.com/SscSPs/personal_banking_app/internal/dto"
	"github.com/SscSPs/personal_banking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles HTTP requests that move money.
type TransactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ts portssvc.TransactionSvcFacade) *TransactionHandler {
	return &TransactionHandler{transactionService: ts}
}

// respondMovement translates the outcome of a money movement into an HTTP
// response. All four operations share the same error surface.
func respondMovement(c *gin.Context, result *domain.MovementResult, err error) {
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAccountKind),
			errors.Is(err, apperrors.ErrInvalidAmount),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Insufficient funds"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		case errors.Is(err, apperrors.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Store unavailable, please retry"})
		default:
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Money movement failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToMovementResponse(result))
}

func callerID(c *gin.Context) (context.Context, string, bool) {
	ctx := c.Request.Context()
	userID, ok := middleware.GetUserIDFromCtx(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return ctx, userID, ok
}

// Deposit godoc
// @Summary Deposit money into an account
// @Description Credits the given amount to the logged-in user's account of the given kind and records a DEPOSIT entry.
// @Tags transactions
// @Accept json
// @Produce json
// @Param kind path string true "Account kind" Enums(checking, savings)
// @Param deposit body dto.MoveMoneyRequest true "Deposit amount"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{kind}/deposit [post]
func (h *TransactionHandler) Deposit(c *gin.Context) {
	ctx, userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.MoveMoneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.transactionService.Deposit(ctx, userID, c.Param("kind"), req.Amount)
	respondMovement(c, result, err)
}

// Withdraw godoc
// @Summary Withdraw money from an account
// @Description Debits the given amount from the logged-in user's account of the given kind and records a WITHDRAWAL entry.
// @Tags transactions
// @Accept json
// @Produce json
// @Param kind path string true "Account kind" Enums(checking, savings)
// @Param withdraw body dto.MoveMoneyRequest true "Withdrawal amount"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{kind}/withdraw [post]
func (h *TransactionHandler) Withdraw(c *gin.Context) {
	ctx, userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.MoveMoneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.transactionService.Withdraw(ctx, userID, c.Param("kind"), req.Amount)
	respondMovement(c, result, err)
}

// Purchase godoc
// @Summary Record a purchase against an account
// @Description Debits the given amount from the logged-in user's account of the given kind and records a PURCHASE entry with seller and item.
// @Tags transactions
// @Accept json
// @Produce json
// @Param kind path string true "Account kind" Enums(checking, savings)
// @Param purchase body dto.PurchaseRequest true "Purchase details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{kind}/purchase [post]
func (h *TransactionHandler) Purchase(c *gin.Context) {
	ctx, userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.transactionService.Purchase(ctx, userID, c.Param("kind"), req.Amount, req.Seller, req.Item)
	respondMovement(c, result, err)
}

// Transfer godoc
// @Summary Transfer money to the sibling account
// @Description Moves the given amount from the logged-in user's account of the given kind to their other account and records a single TRANSFER entry.
// @Tags transactions
// @Accept json
// @Produce json
// @Param kind path string true "Source account kind" Enums(checking, savings)
// @Param transfer body dto.MoveMoneyRequest true "Transfer amount"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{kind}/transfer [post]
func (h *TransactionHandler) Transfer(c *gin.Context) {
	ctx, userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.MoveMoneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.transactionService.Transfer(ctx, userID, c.Param("kind"), req.Amount)
	respondMovement(c, result, err)
}
