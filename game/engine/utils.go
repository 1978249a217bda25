package engine

import "math"

// GridFor returns a near-square board layout for count cards
func GridFor(count int) Layout {
	if count <= 0 {
		return Layout{}
	}
	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := int(math.Ceil(float64(count) / float64(cols)))
	return Layout{Rows: rows, Cols: cols}
}

// CountCardState counts the cards of a snapshot in the given state
func CountCardState(cards []CardView, state CardState) int {
	count := 0
	for _, card := range cards {
		if card.State == state {
			count++
		}
	}
	return count
}

// MaxPairs returns how many pairs a board can hold given the distinct
// asset count and an optional grid limit (rows*cols, 0 for none)
func MaxPairs(assets, gridCells int) int {
	pairs := assets
	if gridCells > 0 && gridCells/2 < pairs {
		pairs = gridCells / 2
	}
	if pairs < 0 {
		return 0
	}
	return pairs
}
