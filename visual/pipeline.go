package visual

import (
	"log"
	"time"
)

// Frame summarizes one tick of the pipeline.
type Frame struct {
	Intensity float64
	Transform Transform
	Particles int
	Elapsed   time.Duration
}

// Pipeline runs one animation tick per call:
//
//	[Sample] -> [Extract] -> [Field step] + [Pulse] -> [Render]
//
// It owns no timer. The host calls Tick once per display refresh from a
// single goroutine.
type Pipeline struct {
	sampler    *Sampler
	extractor  Extractor
	field      *Field
	pulse      PulseDriver
	background Background
	surface    Surface

	start  time.Time
	warned map[string]bool
}

// NewPipeline wires the stages to the surface they draw on.
func NewPipeline(sampler *Sampler, ex Extractor, field *Field, pulse PulseDriver, bg Background, surface Surface) *Pipeline {
	return &Pipeline{
		sampler:    sampler,
		extractor:  ex,
		field:      field,
		pulse:      pulse,
		background: bg,
		surface:    surface,
		warned:     make(map[string]bool),
	}
}

// Field returns the particle field driven by the pipeline.
func (p *Pipeline) Field() *Field { return p.field }

// Tick advances the animation to now and redraws the surface. A failing
// stage degrades to a neutral value and the next tick runs normally.
func (p *Pipeline) Tick(now time.Time) Frame {
	if p.start.IsZero() {
		p.start = now
	}
	f := Frame{Elapsed: now.Sub(p.start)}

	p.guard("sample", func() {
		if p.sampler != nil {
			f.Intensity = p.extractor.Extract(p.sampler.Sample())
		}
	})
	f.Intensity = Clamp01(f.Intensity)

	f.Transform = p.pulse.Tick(f.Intensity)

	p.guard("step", func() {
		if p.field != nil {
			p.field.Step(f.Intensity, BoundsOf(p.surface))
			f.Particles = p.field.Len()
		}
	})

	if p.surface != nil {
		ok := p.guard("render", func() {
			p.surface.Clear()
			p.background.Paint(p.surface, f.Elapsed)
			p.pulse.Draw(p.surface, f.Transform)
			if p.field != nil {
				p.field.Render(p.surface)
			}
		})
		if !ok {
			p.guard("clear", p.surface.Clear)
		}
	}
	return f
}

// guard runs stage and turns a panic into a logged, skipped stage.
func (p *Pipeline) guard(stage string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			// One line per stage: panic text may vary from tick to tick.
			if !p.warned[stage] {
				p.warned[stage] = true
				log.Printf("frame stage failed, degrading: %s: %v", stage, r)
			}
		}
	}()
	fn()
	return true
}
