package world

import (
	"math/rand"

	"xpquest/ledger"
)

// Span is an inclusive XP range; Min == Max is a fixed reward.
type Span struct {
	Min, Max int
}

// Draw picks a value in the span.
func (s Span) Draw(rng *rand.Rand) int {
	if s.Max <= s.Min || rng == nil {
		return s.Min
	}
	return s.Min + rng.Intn(s.Max-s.Min+1)
}

// Rewards lists what each world event proposes to the ledger.
type Rewards struct {
	Move          int
	OracleCorrect Span
	OracleWrong   Span
	Study         Span
}

var (
	// ClassicRewards: every event is worth one unit of knowledge.
	ClassicRewards = Rewards{
		Move:          1,
		OracleCorrect: Span{1, 1},
		OracleWrong:   Span{1, 1},
		Study:         Span{1, 1},
	}
	// VariableRewards pays real knowledge more than wandering.
	VariableRewards = Rewards{
		Move:          1,
		OracleCorrect: Span{10, 20},
		OracleWrong:   Span{5, 5},
		Study:         Span{5, 20},
	}
)

// RewardsFor pairs a clamp policy with its reward table.
func RewardsFor(c ledger.Clamp) Rewards {
	if c == ledger.ClampToOne {
		return ClassicRewards
	}
	return VariableRewards
}
