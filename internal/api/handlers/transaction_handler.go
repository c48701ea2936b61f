package handlers

import (
	"context"
	"errors"

	"stock-ledger/internal/dto"
	"stock-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Ledger is the part of service.LedgerService the handlers need.
type Ledger interface {
	AddTransaction(ctx context.Context, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	ListTransactions(ctx context.Context) ([]dto.TransactionResponse, error)
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
	Holdings(ctx context.Context) ([]dto.HoldingResponse, error)
}

var validationMessages = map[error]string{
	service.ErrInvalidSymbol:          "Invalid stock symbol",
	service.ErrInvalidTransactionType: "Transaction type must be BUY or SELL",
	service.ErrInvalidQuantity:        "Quantity must be a positive whole number",
	service.ErrInvalidPrice:           "Price must be a positive number",
	service.ErrInsufficientHoldings:   "Not enough stock to sell",
}

type TransactionHandler struct {
	ledger Ledger
	logger *zap.Logger
}

func NewTransactionHandler(ledger Ledger, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		ledger: ledger,
		logger: logger,
	}
}

// AddTransaction godoc
// @Summary Add a transaction
// @Description Book a buy or sell of a stock symbol. Sells larger than the current holding are rejected.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/transactions [post]
func (h *TransactionHandler) AddTransaction(c *fiber.Ctx) error {
	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if _, err := h.ledger.AddTransaction(c.UserContext(), &req); err != nil {
		for target, msg := range validationMessages {
			if errors.Is(err, target) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
			}
		}
		h.logger.Error("Failed to add transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to add transaction",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{
		Message: "Transaction added",
	})
}

// ListTransactions godoc
// @Summary List transactions
// @Description All transactions of the ledger user, newest first
// @Tags transactions
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	txs, err := h.ledger.ListTransactions(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to list transactions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to list transactions",
		})
	}

	return c.JSON(txs)
}

// Summary godoc
// @Summary Buy and sell totals
// @Description Sum of quantity times price over all buys and all sells
// @Tags summary
// @Produce json
// @Success 200 {object} dto.SummaryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/summary [get]
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.ledger.Summary(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to load summary", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to load summary",
		})
	}

	return c.JSON(summary)
}

// Holdings godoc
// @Summary Net holdings
// @Description Net quantity per symbol, only symbols still held
// @Tags holdings
// @Produce json
// @Success 200 {array} dto.HoldingResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/holdings [get]
func (h *TransactionHandler) Holdings(c *fiber.Ctx) error {
	holdings, err := h.ledger.Holdings(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to load holdings", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to load holdings",
		})
	}

	return c.JSON(holdings)
}
