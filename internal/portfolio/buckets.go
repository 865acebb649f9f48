package portfolio

import (
	"fmt"
	"sync"
)

// BucketAllocator manages fixed capital buckets, one per venue, and keeps
// each bucket above a configured floor by transferring from the first bucket
// whose balance exceeds twice the floor. Donor selection is first-match in
// registration order, not largest surplus.
type BucketAllocator struct {
	mu       sync.Mutex
	floor    float64
	order    []string
	balances map[string]float64
}

// NewBucketAllocator creates a bucket allocator with a per-bucket floor.
// Bucket iteration follows registration order.
func NewBucketAllocator(floor float64) *BucketAllocator {
	return &BucketAllocator{
		floor:    floor,
		balances: make(map[string]float64),
	}
}

// Register adds a bucket with an initial balance
func (b *BucketAllocator) Register(bucket string, initial float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.balances[bucket]; exists {
		return fmt.Errorf("bucket %s already registered", bucket)
	}
	b.order = append(b.order, bucket)
	b.balances[bucket] = initial
	return nil
}

// ApplyPnL adjusts a bucket's balance by a realized PnL amount
func (b *BucketAllocator) ApplyPnL(bucket string, pnl float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.balances[bucket]; !exists {
		return fmt.Errorf("bucket %s not registered", bucket)
	}
	b.balances[bucket] += pnl
	return nil
}

// EnforceFloors tops up every bucket below the floor by transferring the
// shortfall from the first bucket found above 2x the floor. A donation can
// drop the donor itself below the floor, so passes repeat until no bucket
// an eligible donor could cover is short. Returns the transfers performed
// as "from->to" amounts.
func (b *BucketAllocator) EnforceFloors() map[string]float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	transfers := make(map[string]float64)
	for moved := true; moved; {
		moved = false
		for _, bucket := range b.order {
			bal := b.balances[bucket]
			if bal >= b.floor {
				continue
			}
			shortfall := b.floor - bal
			for _, donor := range b.order {
				if donor == bucket {
					continue
				}
				if b.balances[donor] > b.floor*2 {
					b.balances[donor] -= shortfall
					b.balances[bucket] += shortfall
					transfers[fmt.Sprintf("%s->%s", donor, bucket)] += shortfall
					moved = true
					break
				}
			}
		}
	}
	return transfers
}

// Balance returns a single bucket balance
func (b *BucketAllocator) Balance(bucket string) (float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	bal, ok := b.balances[bucket]
	return bal, ok
}

// Balances returns a copy of all bucket balances
func (b *BucketAllocator) Balances() map[string]float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string]float64, len(b.balances))
	for k, v := range b.balances {
		out[k] = v
	}
	return out
}

// Total returns the sum of all bucket balances
func (b *BucketAllocator) Total() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := 0.0
	for _, v := range b.balances {
		total += v
	}
	return total
}
