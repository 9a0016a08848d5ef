package score

// Weight derivation parameters: strictly decreasing raw weight by fixed
// priority rank, then normalization to a 100-point budget.
const (
	weightStart = 20.0
	weightDecay = 2.0
	weightFloor = 3.0
)

// Weights returns the normalized section weight map. Deterministic and
// static: CPU carries the most weight, Updates the least, and the
// normalized weights sum to 100 within rounding epsilon.
func Weights() map[string]float64 {
	raw := make(map[string]float64, len(SectionOrder))
	total := 0.0
	for rank, name := range SectionOrder {
		w := weightStart - weightDecay*float64(rank)
		if w < weightFloor {
			w = weightFloor
		}
		raw[name] = w
		total += w
	}

	normalized := make(map[string]float64, len(raw))
	for name, w := range raw {
		normalized[name] = w / total * 100
	}

	return normalized
}
