package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"stock-ledger/internal/dto"
	"stock-ledger/internal/models"
	"stock-ledger/internal/repository"
	"stock-ledger/pkg/config"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidSymbol          = errors.New("invalid stock symbol")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrInvalidPrice           = errors.New("invalid price")
	ErrInsufficientHoldings   = errors.New("not enough stock to sell")
)

// Prices are stored as NUMERIC(18, 4).
const priceScale = 4

var maxPrice = decimal.New(1, 18-priceScale)

type LedgerService struct {
	txRepo   repository.TransactionStore
	userRepo repository.UserStore
	user     *models.User
	logger   *zap.Logger

	// writeMu serializes adds so a sell cannot race another sell past the
	// holdings check.
	writeMu sync.Mutex
	now     func() time.Time
}

func NewLedgerService(
	txRepo repository.TransactionStore,
	userRepo repository.UserStore,
	cfg *config.LedgerConfig,
	logger *zap.Logger,
) (*LedgerService, error) {
	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger user id %q: %w", cfg.UserID, err)
	}

	return &LedgerService{
		txRepo:   txRepo,
		userRepo: userRepo,
		user:     &models.User{ID: userID, Username: cfg.Username},
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Init prepares the schema and makes sure the ledger user exists.
func (s *LedgerService) Init(ctx context.Context) error {
	if err := s.txRepo.EnsureSchema(ctx); err != nil {
		return err
	}

	s.user.CreatedAt = s.now()
	if err := s.userRepo.EnsureExists(ctx, s.user); err != nil {
		return fmt.Errorf("failed to ensure ledger user: %w", err)
	}
	return nil
}

func (s *LedgerService) UserID() uuid.UUID {
	return s.user.ID
}

// AddTransaction validates and books one buy or sell. A sell larger than
// the current net holding of the symbol is rejected with
// ErrInsufficientHoldings.
func (s *LedgerService) AddTransaction(ctx context.Context, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	tx, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if tx.TransactionType == models.TransactionTypeSell {
		held, err := s.txRepo.NetQuantity(ctx, tx.UserID, tx.StockSymbol)
		if err != nil {
			return nil, fmt.Errorf("failed to load holding: %w", err)
		}
		if tx.Quantity > held {
			s.logger.Info("Rejected sell above holding",
				zap.String("symbol", tx.StockSymbol),
				zap.Int64("quantity", tx.Quantity),
				zap.Int64("held", held),
			)
			return nil, ErrInsufficientHoldings
		}
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.logger.Info("Transaction added",
		zap.String("id", tx.ID.String()),
		zap.String("symbol", tx.StockSymbol),
		zap.String("type", string(tx.TransactionType)),
		zap.Int64("quantity", tx.Quantity),
		zap.String("price", tx.Price.String()),
		zap.String("value", tx.Value().String()),
	)

	resp := toTransactionResponse(tx)
	return &resp, nil
}

func (s *LedgerService) parseRequest(req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	symbol, ok := normalizeSymbol(req.StockSymbol)
	if !ok {
		return nil, ErrInvalidSymbol
	}

	var ttype models.TransactionType
	switch models.TransactionType(strings.ToUpper(strings.TrimSpace(req.TransactionType))) {
	case models.TransactionTypeBuy:
		ttype = models.TransactionTypeBuy
	case models.TransactionTypeSell:
		ttype = models.TransactionTypeSell
	default:
		return nil, ErrInvalidTransactionType
	}

	qty, err := strconv.ParseInt(strings.TrimSpace(string(req.Quantity)), 10, 64)
	if err != nil || qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	price, err := decimal.NewFromString(strings.TrimSpace(string(req.Price)))
	if err != nil || !price.IsPositive() || price.GreaterThanOrEqual(maxPrice) ||
		!price.Equal(price.Truncate(priceScale)) {
		return nil, ErrInvalidPrice
	}

	return &models.Transaction{
		ID:              uuid.New(),
		UserID:          s.user.ID,
		StockSymbol:     symbol,
		TransactionType: ttype,
		Quantity:        qty,
		Price:           price,
		TransactionDate: s.now(),
	}, nil
}

func (s *LedgerService) ListTransactions(ctx context.Context) ([]dto.TransactionResponse, error) {
	txs, err := s.txRepo.ListByUserID(ctx, s.user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, toTransactionResponse(tx))
	}
	return resp, nil
}

func (s *LedgerService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	totals, err := s.txRepo.Totals(ctx, s.user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load totals: %w", err)
	}

	return &dto.SummaryResponse{
		TotalBuy:  totals.TotalBuy.InexactFloat64(),
		TotalSell: totals.TotalSell.InexactFloat64(),
	}, nil
}

func (s *LedgerService) Holdings(ctx context.Context) ([]dto.HoldingResponse, error) {
	holdings, err := s.txRepo.Holdings(ctx, s.user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	resp := make([]dto.HoldingResponse, 0, len(holdings))
	for _, h := range holdings {
		resp = append(resp, dto.HoldingResponse{
			StockSymbol: h.StockSymbol,
			NetQuantity: h.NetQuantity,
		})
	}
	return resp, nil
}

func toTransactionResponse(tx *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:              tx.ID.String(),
		UserID:          tx.UserID.String(),
		StockSymbol:     tx.StockSymbol,
		TransactionType: string(tx.TransactionType),
		Quantity:        tx.Quantity,
		Price:           tx.Price.InexactFloat64(),
		TransactionDate: tx.TransactionDate.Format(time.RFC3339),
	}
}
