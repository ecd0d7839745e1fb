package rental

// Status is the reservation lifecycle state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusReturned Status = "returned"
	StatusExpired  Status = "expired"
)

// transitions is the complete set of permitted moves. Anything absent is rejected.
var transitions = map[Status][]Status{
	StatusPending: {StatusActive, StatusReturned, StatusExpired},
	StatusActive:  {StatusReturned},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusReturned, StatusExpired:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// IsOpen reports whether the reservation still holds a unit of inventory.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusActive
}

func (s Status) IsTerminal() bool {
	return s == StatusReturned || s == StatusExpired
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SourcesOf lists every status that may move to target.
func SourcesOf(target Status) []Status {
	var sources []Status
	for _, from := range []Status{StatusPending, StatusActive, StatusReturned, StatusExpired} {
		if from.CanTransitionTo(target) {
			sources = append(sources, from)
		}
	}
	return sources
}

// OpenStatuses are the states that count against the one-open-rental-per-book rule.
func OpenStatuses() []Status {
	return []Status{StatusPending, StatusActive}
}
