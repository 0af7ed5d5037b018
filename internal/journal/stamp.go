package journal

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Layouts accepted for stamps, both on the wire and from user input.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = time.RFC3339
)

// Stamp is an instant plus the precision it was supplied with.
//
// A user who logs "2023-10-01" and a user who logs "2023-10-01T00:00:00Z"
// record the same instant (midnight UTC), but the date-only form must render
// and persist without a clock time. Filtering and ordering see only the
// instant; DateOnly exists purely for round-trip fidelity.
type Stamp struct {
	Time     time.Time
	DateOnly bool
}

// NewStamp creates a full-precision stamp for t.
func NewStamp(t time.Time) Stamp {
	return Stamp{Time: t}
}

// ParseStamp parses either a bare date (normalized to midnight UTC) or an
// RFC 3339 datetime. Anything else is an error.
func ParseStamp(s string) (Stamp, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Stamp{Time: t.UTC(), DateOnly: true}, nil
	}
	if t, err := time.Parse(DateTimeLayout, s); err == nil {
		return Stamp{Time: t}, nil
	}
	return Stamp{}, fmt.Errorf("cannot parse %q as %s or %s date", s, DateLayout, DateTimeLayout)
}

// String renders the stamp at its recorded precision.
func (s Stamp) String() string {
	if s.DateOnly {
		return s.Time.Format(DateLayout)
	}
	return s.Time.Format(DateTimeLayout)
}

// Before reports whether s is strictly earlier than other.
func (s Stamp) Before(other Stamp) bool {
	return s.Time.Before(other.Time)
}

// After reports whether s is strictly later than other.
func (s Stamp) After(other Stamp) bool {
	return s.Time.After(other.Time)
}

// Equal reports instant equality; precision is not compared.
func (s Stamp) Equal(other Stamp) bool {
	return s.Time.Equal(other.Time)
}

// MarshalYAML emits the stamp as a plain timestamp scalar at its recorded
// precision. The explicit tag keeps the emitter from quoting the value.
func (s Stamp) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!timestamp",
		Value: s.String(),
	}, nil
}

// UnmarshalYAML parses a scalar stamp, preserving date-only precision.
func (s *Stamp) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("datetime must be a scalar, got %v", node.Kind)
	}
	parsed, err := ParseStamp(node.Value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
