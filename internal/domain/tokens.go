package domain

import "fmt"

// Pricing per million tokens, matching the backend's cost estimation
// table (Claude 3.5 Sonnet).
const (
	inputPerMTok      = 3.00
	outputPerMTok     = 15.00
	cacheReadPerMTok  = 0.30
	cacheWritePerMTok = 3.75
)

type TokenUsage struct {
	InputTokens         int64
	OutputTokens        int64
	CacheReadTokens     int64
	CacheCreationTokens int64
}

// BlendedTotal returns all token counts summed.
func (u TokenUsage) BlendedTotal() int64 {
	return u.InputTokens + u.OutputTokens + u.CacheReadTokens + u.CacheCreationTokens
}

// EstimatedCost returns the estimated dollar cost for this usage.
func (u TokenUsage) EstimatedCost() float64 {
	return float64(u.InputTokens)/1_000_000*inputPerMTok +
		float64(u.OutputTokens)/1_000_000*outputPerMTok +
		float64(u.CacheReadTokens)/1_000_000*cacheReadPerMTok +
		float64(u.CacheCreationTokens)/1_000_000*cacheWritePerMTok
}

func (u TokenUsage) BlendedTotalCompact() string {
	return CompactNumber(u.BlendedTotal())
}

func CompactNumber(v int64) string {
	if v < 1_000 {
		return fmt.Sprintf("%d", v)
	}

	if v < 1_000_000 {
		return fmt.Sprintf("%.1fk", float64(v)/1_000)
	}

	return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
}
