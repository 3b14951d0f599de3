package importer

import "fmt"

// State is the lifecycle of a destination during one run.
// Runs move Closed → Open → SchemaEnsured → Inserted and always end Closed.
type State int

const (
	Closed State = iota
	Open
	SchemaEnsured
	Inserted
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case SchemaEnsured:
		return "schema_ensured"
	case Inserted:
		return "inserted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// next reports whether to is the only state reachable from s without closing.
func (s State) next(to State) bool {
	return to == s+1 && to <= Inserted
}
