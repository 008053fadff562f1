package particle

// EffectKind selects what happens when a star's life runs out.
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	// EffectCrossette splits the star into four stars.
	EffectCrossette
	// EffectCrackle scatters short-lived gold sparks.
	EffectCrackle
	// EffectFloral throws a small secondary burst that keeps the star's momentum.
	EffectFloral
	// EffectFallingLeaves throws invisible stars that shed gold sparks.
	EffectFallingLeaves
	// EffectShellBurst bursts the shell a comet was carrying.
	EffectShellBurst
)

func (k EffectKind) String() string {
	switch k {
	case EffectNone:
		return "none"
	case EffectCrossette:
		return "crossette"
	case EffectCrackle:
		return "crackle"
	case EffectFloral:
		return "floral"
	case EffectFallingLeaves:
		return "fallingLeaves"
	case EffectShellBurst:
		return "shellBurst"
	}
	return "unknown"
}

// SoundLatch is shared by every star of one burst so a death sound plays
// once per burst rather than once per star.
type SoundLatch struct {
	fired bool
}

// First reports true on the first call only. A nil latch always reports true.
func (l *SoundLatch) First() bool {
	if l == nil {
		return true
	}
	if l.fired {
		return false
	}
	l.fired = true
	return true
}

// Burster is the shell a comet carries up; it bursts where the comet dies.
type Burster interface {
	BurstAt(x, y float64) error
}

// DeathEffect is the plain-data description of a star's death behavior.
// Shell is set only for EffectShellBurst.
type DeathEffect struct {
	Kind  EffectKind
	Latch *SoundLatch
	Shell Burster
}

// DeathHandler runs a dying star's effect. The star's fields are still
// valid during the call; the store recycles it afterwards.
type DeathHandler interface {
	HandleDeath(star *Star)
}
