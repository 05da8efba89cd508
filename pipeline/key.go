package pipeline

import (
	"fmt"
	"strings"
)

// KeyMode selects how a record's uniqueness key is derived.
type KeyMode int

const (
	// BySequence keys records on their upper-cased sequence.
	BySequence KeyMode = iota
	// ByID keys records on the first header token, verbatim.
	ByID
)

func (m KeyMode) String() string {
	switch m {
	case BySequence:
		return "seq"
	case ByID:
		return "id"
	}
	return fmt.Sprintf("KeyMode(%d)", int(m))
}

// Key returns the uniqueness key of rec under mode m.
func (m KeyMode) Key(rec Record) string {
	if m == ByID {
		return rec.ID()
	}
	return strings.ToUpper(rec.Seq)
}

// ParseKeyMode accepts "seq", "sequence", "id" and "name".
func ParseKeyMode(s string) (KeyMode, error) {
	switch strings.ToLower(s) {
	case "seq", "sequence":
		return BySequence, nil
	case "id", "name":
		return ByID, nil
	}
	return 0, fmt.Errorf("unknown dedup mode %q (want \"seq\" or \"id\")", s)
}
