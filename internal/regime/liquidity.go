package regime

// Slippage estimation treats expected execution cost as a function of order
// size, leverage and regime liquidity depth. The estimate feeds an expected
// cost that the caller may subtract from expected PnL; it never rejects a
// trade on its own.

// sizeImpact is a step function of position notional
func sizeImpact(positionSize float64) float64 {
	switch {
	case positionSize < 1000:
		return 0.0005
	case positionSize < 5000:
		return 0.001
	case positionSize < 20000:
		return 0.002
	default:
		return 0.004
	}
}

// leverageImpact is a step function of effective leverage
func leverageImpact(leverage float64) float64 {
	switch {
	case leverage <= 5:
		return 0.0002
	case leverage <= 10:
		return 0.0005
	case leverage <= 20:
		return 0.001
	default:
		return 0.002
	}
}

// liquidityDepth is lower in stressed regimes, amplifying estimated slippage
func liquidityDepth(r Regime) float64 {
	switch r {
	case RegimeHighVolatility:
		return 0.6
	case RegimeTrending:
		return 0.85
	default:
		return 1.0
	}
}

// EstimateSlippage returns the expected slippage fraction for an order
func EstimateSlippage(positionSize, leverage float64, r Regime) float64 {
	return (sizeImpact(positionSize) + leverageImpact(leverage)) / liquidityDepth(r)
}

// EstimateCost returns the expected execution cost in capital terms
func EstimateCost(positionSize, leverage float64, r Regime) float64 {
	return positionSize * EstimateSlippage(positionSize, leverage, r)
}
