package nutrition

// Summary aggregates nutrition quality over a basket of scored items.
type Summary struct {
	AverageScore   float64 `json:"average_score"`
	HealthyItems   int     `json:"healthy_items"`
	UnhealthyItems int     `json:"unhealthy_items"`
	TotalItems     int     `json:"total_items"`
}

// Summarize computes basket-level stats from individual item scores.
func Summarize(scores []int) Summary {
	s := Summary{TotalItems: len(scores)}
	if len(scores) == 0 {
		return s
	}
	sum := 0
	for _, v := range scores {
		sum += v
		if v >= HealthyThreshold {
			s.HealthyItems++
		}
		if v <= UnhealthyThreshold {
			s.UnhealthyItems++
		}
	}
	s.AverageScore = float64(sum) / float64(len(scores))
	return s
}
