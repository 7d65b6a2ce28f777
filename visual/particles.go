package visual

import (
	"math"
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// FieldConfig holds the particle field tuning. The values are aesthetic
// choices with no derivation; keep them together so they can be tuned.
type FieldConfig struct {
	// SpawnThreshold is the intensity a tick must exceed to emit particles.
	SpawnThreshold float64
	// SpawnPerIntensity particles are emitted at full intensity.
	SpawnPerIntensity float64
	// Launch speed is SpeedBase + intensity*SpeedGain, scaled by VelocityScale
	// into surface pixels per tick.
	SpeedBase     float64
	SpeedGain     float64
	VelocityScale float64
	// UpwardBias shifts the vertical launch direction; 0.5 is symmetric,
	// 0.9 sends most particles upward.
	UpwardBias float64
	// Lifespan range in ticks.
	LifeMin, LifeMax int
	// Radius range in surface pixels.
	RadiusMin, RadiusSpread float64
	// Emission anchor and jitter span as fractions of the surface size.
	AnchorX, AnchorY float64
	JitterX, JitterY float64
	// Trail is drawn TrailFactor velocity steps behind the particle.
	TrailFactor float64
	TrailAlpha  float64
	// MaxParticles caps the live population; spawns beyond it are dropped.
	MaxParticles int
}

// DefaultFieldConfig returns the tuning used for a terminal-sized canvas.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		SpawnThreshold:    0.15,
		SpawnPerIntensity: 6,
		SpeedBase:         5,
		SpeedGain:         12,
		VelocityScale:     0.08,
		UpwardBias:        0.9,
		LifeMin:           60,
		LifeMax:           90,
		RadiusMin:         0.5,
		RadiusSpread:      1.25,
		AnchorX:           0.5,
		AnchorY:           0.5,
		JitterX:           0.25,
		JitterY:           0.08,
		TrailFactor:       2,
		TrailAlpha:        0.25,
		MaxParticles:      600,
	}
}

// Particle is one short-lived spark. Age and Life count ticks.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Age    int
	Life   int
	Radius float64
	Hue    float64
}

// Opacity fades linearly from 1 at birth to 0 at the end of life.
func Opacity(p Particle) float64 {
	if p.Life <= 0 {
		return 0
	}
	return Clamp01(1 - float64(p.Age)/float64(p.Life))
}

// Field owns every live particle. It is driven from a single goroutine.
type Field struct {
	cfg       FieldConfig
	rng       *rand.Rand
	particles []Particle
}

// NewField creates an empty field. rng may be nil for a time-seeded source.
func NewField(cfg FieldConfig, rng *rand.Rand) *Field {
	if cfg.LifeMin < 1 {
		cfg.LifeMin = 1
	}
	if cfg.LifeMax < cfg.LifeMin {
		cfg.LifeMax = cfg.LifeMin
	}
	cfg.RadiusMin = max(0, cfg.RadiusMin)
	cfg.RadiusSpread = max(0, cfg.RadiusSpread)
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Field{cfg: cfg, rng: rng}
}

// Len returns the number of live particles.
func (f *Field) Len() int { return len(f.particles) }

// Particles exposes the live particles for inspection. Do not retain it.
func (f *Field) Particles() []Particle { return f.particles }

// Reset drops every particle.
func (f *Field) Reset() { f.particles = f.particles[:0] }

// Tick advances the field using the surface's current size, then draws it.
// It is the entry point for hosts that draw the field on its own; Pipeline
// calls Step and Render separately so the field lands on top of the pulse.
func (f *Field) Tick(intensity float64, s Surface) {
	f.Step(intensity, BoundsOf(s))
	if s != nil {
		f.Render(s)
	}
}

// Step emits particles for this tick's intensity, ages and moves every
// particle, and removes those past their lifespan.
func (f *Field) Step(intensity float64, b Bounds) {
	intensity = Clamp01(intensity)
	if intensity > f.cfg.SpawnThreshold && !b.Empty() {
		f.spawn(intensity, b)
	}

	for i := 0; i < len(f.particles); {
		p := &f.particles[i]
		p.Age++
		p.X += p.VX
		p.Y += p.VY
		if p.Age > p.Life {
			last := len(f.particles) - 1
			f.particles[i] = f.particles[last]
			f.particles = f.particles[:last]
			continue
		}
		i++
	}
}

func (f *Field) spawn(intensity float64, b Bounds) {
	n := int(math.Floor(intensity * f.cfg.SpawnPerIntensity))
	if f.cfg.MaxParticles > 0 {
		n = min(n, f.cfg.MaxParticles-len(f.particles))
	}
	speed := (f.cfg.SpeedBase + intensity*f.cfg.SpeedGain) * f.cfg.VelocityScale
	cx, cy := b.W*f.cfg.AnchorX, b.H*f.cfg.AnchorY

	for range n {
		f.particles = append(f.particles, Particle{
			X:      cx + (f.rng.Float64()-0.5)*b.W*f.cfg.JitterX,
			Y:      cy + (f.rng.Float64()-0.5)*b.H*f.cfg.JitterY,
			VX:     (f.rng.Float64() - 0.5) * speed,
			VY:     (f.rng.Float64() - f.cfg.UpwardBias) * speed,
			Life:   f.cfg.LifeMin + f.rng.IntN(f.cfg.LifeMax-f.cfg.LifeMin+1),
			Radius: f.cfg.RadiusMin + f.rng.Float64()*f.cfg.RadiusSpread,
			Hue:    f.rng.Float64() * 360,
		})
	}
}

// Render draws each particle with a faint trail behind it.
func (f *Field) Render(s Surface) {
	for _, p := range f.particles {
		alpha := Opacity(p)
		if alpha == 0 {
			continue
		}
		col := colorful.Hsl(p.Hue, 0.9, 0.6)
		s.FillCircle(p.X, p.Y, p.Radius*(0.6+alpha*0.6), col, alpha)

		tx := p.X - p.VX*f.cfg.TrailFactor
		ty := p.Y - p.VY*f.cfg.TrailFactor
		s.FillEllipse(tx, ty, p.Radius*1.6, p.Radius*0.8, col, alpha*f.cfg.TrailAlpha)
	}
}
