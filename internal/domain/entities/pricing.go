package entities

// CostSummary is the single cost view of an order, shared by the budget
// sender, the print receipt and the client portal so they always agree.
type CostSummary struct {
	Total     float64 `json:"total"`
	PartsCost float64 `json:"partsCost"`
	Profit    float64 `json:"profit"`
}

// ComputeCosts derives the order's costs.
//
// Dual mode: when services are attached, total is the sum of their base
// prices and parts cost the sum of their linked-part costs; otherwise the
// manually entered estimate and parts cost are used unchanged.
func ComputeCosts(o ServiceOrder) CostSummary {
	if len(o.Services) > 0 {
		var total, parts float64
		for _, s := range o.Services {
			total += s.BasePrice
			parts += s.LinkedPartCost
		}
		return CostSummary{Total: total, PartsCost: parts, Profit: total - parts}
	}
	return CostSummary{
		Total:     o.EstimatedCost,
		PartsCost: o.PartsCost,
		Profit:    o.EstimatedCost - o.PartsCost,
	}
}
