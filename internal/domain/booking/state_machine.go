package booking

// allowedTransitions is the directed graph of permitted status changes.
// PENDING is unused by the current creation path (bookings are created
// CONFIRMED) but stays reachable. Terminal states permit nothing.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusOngoing, StatusCancelled},
	StatusOngoing:   {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether from -> to is a permitted status change.
// A self-transition is treated as a no-op and allowed for non-terminal
// states only.
func CanTransition(from, to Status) bool {
	if from == to {
		return !from.Terminal()
	}
	allowed, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether a booking in status s may still be
// cancelled by its owner or an admin.
func Cancellable(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusOngoing:
		return true
	}
	return false
}
