package exchange

import (
	"context"
	"fmt"
	"sync"
)

// SimExecutor is a deterministic simulated venue: orders fill immediately
// and in full at the configured mark price plus a fixed slippage fraction.
type SimExecutor struct {
	mu       sync.Mutex
	price    float64
	slippage float64
}

// NewSimExecutor creates a simulated executor with a starting mark price
// and a slippage fraction applied against the taker
func NewSimExecutor(price, slippage float64) *SimExecutor {
	return &SimExecutor{price: price, slippage: slippage}
}

// SetPrice moves the simulated mark price
func (s *SimExecutor) SetPrice(price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.price = price
}

// PlaceOrder fills the order at the mark price adjusted by slippage
func (s *SimExecutor) PlaceOrder(_ context.Context, req OrderRequest) (Fill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Size <= 0 {
		return Fill{}, fmt.Errorf("invalid order size %.4f for %s", req.Size, req.Symbol)
	}

	fillPrice := s.price
	switch req.Side {
	case OrderSideBuy:
		fillPrice *= 1 + s.slippage
	case OrderSideSell:
		fillPrice *= 1 - s.slippage
	default:
		return Fill{}, fmt.Errorf("unknown order side %q", req.Side)
	}

	return Fill{FillPrice: fillPrice, FilledSize: req.Size}, nil
}

// GetName returns the adapter name
func (s *SimExecutor) GetName() string {
	return "sim"
}
