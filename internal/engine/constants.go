package engine

import (
	"time"

	"github.com/san-kum/sparks/internal/physics"
)

const (
	EffectsCount       = 2048
	ParticlesPerEffect = 64
	Capacity           = EffectsCount * ParticlesPerEffect

	FrameSlots = 4

	TickPeriod = 5 * time.Millisecond
	Lifetime   = 2000 * time.Millisecond

	Drag            = 0.999
	Gravity         = 9.81
	ExplosionChance = 0.25
	MaxSpeed        = 100
	MinSpeedFactor  = 0.25

	// LifetimeJitter is the half-width of the lifetime draw around Lifetime.
	LifetimeJitter = 0.5
)

// MaxLifetime is the longest lifetime a particle can be born with.
const MaxLifetime = Lifetime + Lifetime/2

var DefaultViewport = physics.Bounds{Width: 1024, Height: 768}

const (
	spawnAttempts = 8
	spawnBackoff  = 100 * time.Microsecond
	awaitPoll     = 200 * time.Microsecond
)
