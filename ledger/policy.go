package ledger

import (
	"fmt"
	"strings"
)

// Clamp bounds a single gain before it is applied.
type Clamp string

const (
	// ClampToOne caps every gain at 1 XP, the classic KBC rule.
	ClampToOne Clamp = "clamp_to_one"
	// Unclamped applies gains as given.
	Unclamped Clamp = "unclamped"
)

// ParseClamp resolves a clamp policy by name.
func ParseClamp(name string) (Clamp, error) {
	switch c := Clamp(strings.ToLower(strings.TrimSpace(name))); c {
	case ClampToOne, Unclamped:
		return c, nil
	default:
		return "", fmt.Errorf("unknown clamp policy %q", name)
	}
}

func (c Clamp) apply(amount int) int {
	if c == ClampToOne {
		return max(0, min(amount, 1))
	}
	return amount
}

// Policy selects how a ledger treats gains.
type Policy struct {
	Name     string
	Leveling bool
	Clamp    Clamp
}

var (
	// LevelingPolicy converts XP into levels on a linear threshold.
	LevelingPolicy = Policy{Name: "leveling", Leveling: true, Clamp: Unclamped}
	// ClampToOnePolicy only accumulates, one XP per event at most.
	ClampToOnePolicy = Policy{Name: string(ClampToOne), Clamp: ClampToOne}
	// UnclampedPolicy only accumulates, with variable rewards.
	UnclampedPolicy = Policy{Name: string(Unclamped), Clamp: Unclamped}
)

// AccumulatingPolicy returns the non-leveling policy for a clamp.
func AccumulatingPolicy(c Clamp) Policy {
	if c == ClampToOne {
		return ClampToOnePolicy
	}
	return UnclampedPolicy
}
