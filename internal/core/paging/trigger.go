package paging

// DefaultThreshold is the leading fraction of the revealed list, measured from
// its end, inside which a scroll position triggers LoadMore
const DefaultThreshold = 0.3

// Trigger decides when a scroll position is close enough to the end
type Trigger struct {
	Threshold float64
}

// DefaultTrigger returns a Trigger using DefaultThreshold
func DefaultTrigger() Trigger {
	return Trigger{Threshold: DefaultThreshold}
}

// Reached reports whether position (index of the last visible item) lies within
// Threshold*length items of the end of a revealed list of the given length.
// An empty list never triggers; a threshold outside (0, 1] uses the default.
func (t Trigger) Reached(position, length int) bool {
	if length <= 0 {
		return false
	}

	threshold := t.Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}

	if position >= length {
		position = length - 1
	}
	if position < 0 {
		position = 0
	}

	remaining := length - 1 - position
	return float64(remaining) <= threshold*float64(length)
}
