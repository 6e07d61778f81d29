package ledger

import (
	"errors"
	"fmt"
	"math"
)

// XPPerLevel scales the level-up threshold: level n needs n*XPPerLevel XP.
const XPPerLevel = 100

// MaxLevel is the highest level Restore accepts. Carrying from it cannot
// overflow the threshold.
const MaxLevel = math.MaxInt / XPPerLevel / 2

var (
	// ErrNegativeAmount is returned when a caller proposes a negative XP delta.
	ErrNegativeAmount = errors.New("xp amount must be non-negative")
	// ErrXPOverflow is returned when a gain would push lifetime XP past math.MaxInt.
	ErrXPOverflow = errors.New("xp gain overflows the ledger")
)

// LevelUp reports one threshold crossed during ApplyGain.
type LevelUp struct {
	Level int
}

// Snapshot is the persisted form of a Ledger.
type Snapshot struct {
	XP      int `json:"xp"`
	Level   int `json:"level"`
	TotalXP int `json:"total_xp"`
}

// Ledger tracks XP within the current level, lifetime XP and level.
type Ledger struct {
	policy  Policy
	xp      int
	totalXP int
	level   int
}

// New returns a zeroed ledger at level 1.
func New(policy Policy) *Ledger {
	return &Ledger{policy: policy, level: 1}
}

// Restore builds a ledger from a persisted snapshot.
func Restore(policy Policy, snap Snapshot) (*Ledger, error) {
	if snap.XP < 0 || snap.TotalXP < 0 || snap.Level < 0 {
		return nil, fmt.Errorf("restore ledger: negative field in snapshot %+v", snap)
	}
	if snap.Level > MaxLevel {
		return nil, fmt.Errorf("restore ledger: level %d above %d", snap.Level, MaxLevel)
	}
	l := &Ledger{policy: policy, xp: snap.XP, totalXP: snap.TotalXP, level: snap.Level}
	if l.level == 0 {
		l.level = 1
	}
	// Files written before lifetime XP existed only carry xp.
	if l.totalXP < l.xp {
		l.totalXP = l.xp
	}
	if policy.Leveling {
		for l.levelUp() {
		}
	} else {
		l.level = 1
	}
	return l, nil
}

// ApplyGain adds amount to the ledger and returns every level reached, in order.
func (l *Ledger) ApplyGain(amount int) ([]LevelUp, error) {
	if amount < 0 {
		return nil, fmt.Errorf("apply gain %d: %w", amount, ErrNegativeAmount)
	}
	amount = l.policy.Clamp.apply(amount)
	// xp never exceeds totalXP, so guarding the total guards both.
	if amount > math.MaxInt-l.totalXP {
		return nil, fmt.Errorf("apply gain %d to %d: %w", amount, l.totalXP, ErrXPOverflow)
	}
	l.xp += amount
	l.totalXP += amount
	if !l.policy.Leveling {
		return nil, nil
	}
	return l.carry(), nil
}

// carry converts xp into levels; the threshold grows after every step.
func (l *Ledger) carry() []LevelUp {
	var ups []LevelUp
	for l.levelUp() {
		ups = append(ups, LevelUp{Level: l.level})
	}
	return ups
}

func (l *Ledger) levelUp() bool {
	if l.xp < l.Threshold() {
		return false
	}
	l.xp -= l.Threshold()
	l.level++
	return true
}

// GateCheck reports whether lifetime XP meets threshold.
func (l *Ledger) GateCheck(threshold int) bool {
	return l.totalXP >= threshold
}

// Threshold is the XP needed to leave the current level.
func (l *Ledger) Threshold() int {
	return l.level * XPPerLevel
}

func (l *Ledger) XP() int        { return l.xp }
func (l *Ledger) TotalXP() int   { return l.totalXP }
func (l *Ledger) Level() int     { return l.level }
func (l *Ledger) Policy() Policy { return l.policy }

// Snapshot captures the ledger for persistence.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{XP: l.xp, Level: l.level, TotalXP: l.totalXP}
}
