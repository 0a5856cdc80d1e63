package services

// BuyoutQuote prices a request to buy out reserved nights, keyed on how much
// advance notice the request gives.
type BuyoutQuote struct {
	NoticeDays int     `json:"noticeDays"`
	Multiplier float64 `json:"multiplier"`
	Price      float64 `json:"price"`
}

// BuyoutNoticeMultiplier maps advance-notice days to a price multiplier.
// Short-notice buyouts pay a premium.
func BuyoutNoticeMultiplier(noticeDays int) float64 {
	switch {
	case noticeDays >= 28:
		return 1.0
	case noticeDays >= 14:
		return 1.25
	case noticeDays >= 7:
		return 1.5
	default:
		return 2.0
	}
}

// QuoteBuyout applies the notice multiplier to a base amount.
func QuoteBuyout(noticeDays int, baseAmount float64) BuyoutQuote {
	multiplier := BuyoutNoticeMultiplier(noticeDays)
	return BuyoutQuote{
		NoticeDays: noticeDays,
		Multiplier: multiplier,
		Price:      baseAmount * multiplier,
	}
}
