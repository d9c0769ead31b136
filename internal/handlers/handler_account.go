package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/personal_banking_app/internal/apperrors"
	portssvc "github.com/SscSPs/personal_banking_app/internal/core/ports/services"
	"github.com/SscSPs/personal_banking_app/internal/dto"
	"github.com/SscSPs/personal_banking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles HTTP requests related to accounts.
type AccountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(as portssvc.AccountSvcFacade) *AccountHandler {
	return &AccountHandler{accountService: as}
}

// ListAccounts godoc
// @Summary List the caller's accounts
// @Description Retrieves the checking and savings accounts of the logged-in user.
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// GetAccount godoc
// @Summary Get one account by kind
// @Description Retrieves the logged-in user's account of the given kind.
// @Tags accounts
// @Produce json
// @Param kind path string true "Account kind" Enums(checking, savings)
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Unknown account kind"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{kind} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), userID, c.Param("kind"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAccountKind):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		default:
			logger.Error("Failed to get account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// ListAccountEntries godoc
// @Summary List ledger entries for one account
// @Description Retrieves the movement history of the logged-in user's account of the given kind, newest first.
// @Tags accounts
// @Produce json
// @Param kind path string true "Account kind" Enums(checking, savings)
// @Param limit query int false "Limit number of results" default(50)
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{kind}/entries [get]
func (h *AccountHandler) ListAccountEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.accountService.ListAccountEntries(c.Request.Context(), userID, c.Param("kind"), limit)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAccountKind):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		default:
			logger.Error("Failed to list account entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list entries"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries))
}
