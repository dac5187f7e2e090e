package background

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matjam/setroot/internal/raster"
	"github.com/matjam/setroot/internal/types"
	"go.uber.org/multierr"
)

// Plan is the timing of one fade.
type Plan struct {
	Steps       int
	StepOpacity float64
	StepSleep   time.Duration
	Easing      types.EasingMode
}

// NewPlan works out the number of frames for a fade of the given duration.
// A zero duration or frame rate gives a single, fully opaque step.
func NewPlan(duration time.Duration, fps int, easing types.EasingMode) Plan {
	steps := 1
	if duration > 0 && fps > 0 {
		steps = max(1, int(math.Round(float64(fps)*duration.Seconds())))
	}

	plan := Plan{
		Steps:       steps,
		StepOpacity: 1 / float64(steps),
		Easing:      easing,
	}
	if duration > 0 {
		plan.StepSleep = duration / time.Duration(steps)
	}
	return plan
}

// Opacity is the alpha painted at step i, counting from 1. The last step is
// always exactly 1.
func (p Plan) Opacity(i int) float64 {
	if i >= p.Steps {
		return 1
	}
	if i <= 0 {
		return 0
	}
	return applyEasing(p.Easing, float64(i)*p.StepOpacity)
}

// Fader blends an image over the current background, publishing every frame.
type Fader struct {
	store      *Store
	persister  *Persister
	compositor Compositor
	sleep      func(time.Duration)
}

func NewFader(store *Store, persister *Persister, compositor Compositor) *Fader {
	return &Fader{
		store:      store,
		persister:  persister,
		compositor: compositor,
		sleep:      time.Sleep,
	}
}

// SetSleep replaces the function used to wait between steps.
func (f *Fader) SetSleep(sleep func(time.Duration)) {
	f.sleep = sleep
}

// Fade paints src over a retained copy of the current background at
// increasing opacity, publishing the copy after each step. It returns the
// copy, which is the published background once Fade returns without error.
func (f *Fader) Fade(src *raster.Raster, plan Plan) (types.Pixmap, error) {
	current, err := f.store.CurrentBackground()
	if err != nil {
		return types.PixmapNone, err
	}
	if current == types.PixmapNone {
		return types.PixmapNone, ErrMissingBackground
	}

	dst, err := f.persister.CopyOf(current)
	if err != nil {
		return types.PixmapNone, fmt.Errorf("copying current background: %w", err)
	}

	log.Debugf("fading over 0x%x into 0x%x: %d steps, %v apart",
		uint32(current), uint32(dst), plan.Steps, plan.StepSleep)

	published, err := f.run(src, dst, plan)
	if err != nil {
		if !published {
			// nothing ever showed dst, so its client can go
			err = multierr.Append(err, f.store.Reclaim(dst, types.PixmapNone))
		}
		return types.PixmapNone, err
	}
	return dst, nil
}

func (f *Fader) run(src *raster.Raster, dst types.Pixmap, plan Plan) (published bool, err error) {
	surface, err := f.compositor.NewSurface(dst, src)
	if err != nil {
		return false, err
	}
	defer func() {
		err = multierr.Append(err, surface.Close())
	}()

	for i := 1; i <= plan.Steps; i++ {
		if err := surface.PaintWithAlpha(plan.Opacity(i)); err != nil {
			return published, fmt.Errorf("painting step %d: %w", i, err)
		}
		if err := f.store.Publish(dst); err != nil {
			return published, fmt.Errorf("publishing step %d: %w", i, err)
		}
		published = true

		if i < plan.Steps {
			f.sleep(plan.StepSleep)
		}
	}
	return true, nil
}
