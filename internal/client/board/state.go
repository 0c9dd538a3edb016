package board

type State int

const (
	Loading State = iota
	Ready
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Op names a mutating operation for the in-flight guard.
type Op string

const (
	OpCreate Op = "create"
	OpStatus Op = "status"
)
