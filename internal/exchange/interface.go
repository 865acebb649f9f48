package exchange

import "context"

// OrderSide represents the direction of an order
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// OrderRequest is the order handed to the execution adapter
type OrderRequest struct {
	Symbol string
	Side   OrderSide
	Size   float64
}

// Fill is the execution result returned by the adapter
type Fill struct {
	FillPrice  float64
	FilledSize float64
}

// Executor is the outbound order-execution contract. The decision core
// never talks to a venue directly; callers plug in a real adapter or the
// simulated one.
type Executor interface {
	PlaceOrder(ctx context.Context, req OrderRequest) (Fill, error)
	GetName() string
}
