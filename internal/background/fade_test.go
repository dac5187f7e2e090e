package background

import (
	"errors"
	"testing"
	"time"

	"github.com/matjam/setroot/internal/types"
	"github.com/matjam/setroot/internal/x11/x11test"
)

func TestNewPlan(t *testing.T) {
	tests := []struct {
		duration  time.Duration
		fps       int
		wantSteps int
		wantSleep time.Duration
	}{
		{duration: 5 * time.Second, fps: 20, wantSteps: 100, wantSleep: 50 * time.Millisecond},
		{duration: 0, fps: 20, wantSteps: 1, wantSleep: 0},
		{duration: -time.Second, fps: 20, wantSteps: 1, wantSleep: 0},
		{duration: time.Second, fps: 0, wantSteps: 1, wantSleep: time.Second},
		{duration: time.Second, fps: -5, wantSteps: 1, wantSleep: time.Second},
		{duration: 1500 * time.Millisecond, fps: 3, wantSteps: 5, wantSleep: 300 * time.Millisecond},
		{duration: 10 * time.Millisecond, fps: 20, wantSteps: 1, wantSleep: 10 * time.Millisecond},
	}

	for _, tt := range tests {
		plan := NewPlan(tt.duration, tt.fps, types.EasingLinear)
		if plan.Steps != tt.wantSteps {
			t.Errorf("NewPlan(%v, %d).Steps = %d, want %d", tt.duration, tt.fps, plan.Steps, tt.wantSteps)
		}
		if plan.StepSleep != tt.wantSleep {
			t.Errorf("NewPlan(%v, %d).StepSleep = %v, want %v", tt.duration, tt.fps, plan.StepSleep, tt.wantSleep)
		}
		if plan.StepOpacity != 1/float64(tt.wantSteps) {
			t.Errorf("NewPlan(%v, %d).StepOpacity = %v", tt.duration, tt.fps, plan.StepOpacity)
		}
	}
}

func TestPlanOpacity_MonotonicToOne(t *testing.T) {
	modes := []types.EasingMode{
		types.EasingLinear, types.EasingEaseIn, types.EasingEaseOut, types.EasingEaseInOut, "bogus",
	}

	for _, mode := range modes {
		for _, steps := range []int{1, 2, 7, 100} {
			plan := NewPlan(time.Duration(steps)*time.Second, 1, mode)
			prev := 0.0
			for i := 1; i <= plan.Steps; i++ {
				a := plan.Opacity(i)
				if a <= prev {
					t.Fatalf("%s/%d: opacity(%d) = %v not above %v", mode, steps, i, a, prev)
				}
				prev = a
			}
			if prev != 1.0 {
				t.Fatalf("%s/%d: final opacity = %v, want exactly 1", mode, steps, prev)
			}
		}
	}
}

func TestValidEasing(t *testing.T) {
	if !ValidEasing(types.EasingEaseInOut) {
		t.Fatal("ease-in-out should be valid")
	}
	if ValidEasing("bounce") {
		t.Fatal("bounce should not be valid")
	}
}

type fadeEnv struct {
	srv    *x11test.Server
	conn   *x11test.Conn
	fader  *Fader
	sleeps []time.Duration
}

func newFadeEnv(t *testing.T) *fadeEnv {
	t.Helper()
	srv, conn, st := newTestStore(t, x11test.DefaultGeometry)
	env := &fadeEnv{srv: srv, conn: conn}
	env.fader = NewFader(st, NewPersister(retainedDialer(srv)), conn)
	env.fader.sleep = func(d time.Duration) {
		env.sleeps = append(env.sleeps, d)
	}
	return env
}

func TestFade(t *testing.T) {
	env := newFadeEnv(t)
	current := env.srv.AddPixmap(0x0000ff)
	if err := NewStore(env.conn).Publish(current); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	before := len(env.srv.Published())

	plan := NewPlan(time.Second, 10, types.EasingLinear)
	dst, err := env.fader.Fade(testRaster(t, x11test.DefaultGeometry), plan)
	if err != nil {
		t.Fatalf("Fade() error: %v", err)
	}

	if dst == current || dst == types.PixmapNone {
		t.Fatalf("Fade() = 0x%x, want a new pixmap", dst)
	}
	pm := env.srv.Pixmap(dst)
	if pm == nil {
		t.Fatal("fade destination does not exist")
	}
	if pm.Owner == env.conn.ID() {
		t.Fatal("fade destination was created on the primary connection")
	}
	if pm.CopiedFrom != types.Drawable(current) {
		t.Fatal("fade destination does not start from the current background")
	}

	if len(pm.Alphas) != plan.Steps {
		t.Fatalf("painted %d times, want %d", len(pm.Alphas), plan.Steps)
	}
	for i, a := range pm.Alphas {
		if a != plan.Opacity(i+1) {
			t.Fatalf("alpha %d = %v, want %v", i+1, a, plan.Opacity(i+1))
		}
		if i > 0 && a <= pm.Alphas[i-1] {
			t.Fatalf("alphas not increasing: %v", pm.Alphas)
		}
	}
	if pm.Alphas[len(pm.Alphas)-1] != 1.0 {
		t.Fatalf("final alpha = %v, want 1", pm.Alphas[len(pm.Alphas)-1])
	}

	published := env.srv.Published()[before:]
	if len(published) != plan.Steps {
		t.Fatalf("published %d frames, want %d", len(published), plan.Steps)
	}
	for _, p := range published {
		if p != dst {
			t.Fatalf("published 0x%x, want 0x%x", p, dst)
		}
	}
	assertRecordsEqual(t, env.srv, dst)

	if len(env.sleeps) != plan.Steps-1 {
		t.Fatalf("slept %d times, want %d", len(env.sleeps), plan.Steps-1)
	}
	for _, d := range env.sleeps {
		if d != 100*time.Millisecond {
			t.Fatalf("slept %v, want 100ms", d)
		}
	}

	for _, sf := range env.srv.Surfaces() {
		if !sf.Closed {
			t.Fatal("surface left open")
		}
	}
	if env.srv.Pixmap(current) == nil {
		t.Fatal("Fade freed the previous background")
	}
}

func TestFade_Instant(t *testing.T) {
	env := newFadeEnv(t)
	current := env.srv.AddPixmap(0)
	env.srv.SetRecord(AtomEsetroot, record(uint32(current)))

	dst, err := env.fader.Fade(testRaster(t, x11test.DefaultGeometry), NewPlan(0, 20, types.EasingEaseIn))
	if err != nil {
		t.Fatalf("Fade() error: %v", err)
	}
	if alphas := env.srv.Pixmap(dst).Alphas; len(alphas) != 1 || alphas[0] != 1.0 {
		t.Fatalf("alphas = %v, want [1]", alphas)
	}
	if len(env.sleeps) != 0 {
		t.Fatalf("instant fade slept %d times", len(env.sleeps))
	}
	assertRecordsEqual(t, env.srv, dst)
}

func TestFade_MissingBackground(t *testing.T) {
	env := newFadeEnv(t)

	_, err := env.fader.Fade(testRaster(t, x11test.DefaultGeometry), NewPlan(time.Second, 20, types.EasingLinear))
	if !errors.Is(err, ErrMissingBackground) {
		t.Fatalf("Fade() error = %v, want ErrMissingBackground", err)
	}
	if env.srv.PixmapCount() != 0 || len(env.srv.Surfaces()) != 0 {
		t.Fatal("Fade() created resources without a background")
	}
	if env.srv.Record(AtomRootPixmap) != nil {
		t.Fatal("Fade() wrote the record without a background")
	}
}

func TestFade_PaintFailureReclaimsDestination(t *testing.T) {
	env := newFadeEnv(t)
	current := env.srv.AddPixmap(0)
	env.srv.SetRecord(AtomRootPixmap, record(uint32(current)))
	env.srv.Fail("Composite", errors.New("BadPicture"))

	_, err := env.fader.Fade(testRaster(t, x11test.DefaultGeometry), NewPlan(time.Second, 20, types.EasingLinear))
	if err == nil {
		t.Fatal("expected error")
	}
	if env.srv.PixmapCount() != 1 || env.srv.Pixmap(current) == nil {
		t.Fatalf("%d pixmaps remain, want only the current background", env.srv.PixmapCount())
	}
	if got, _ := NewStore(env.conn).CurrentBackground(); got != current {
		t.Fatalf("background = 0x%x, want unchanged 0x%x", got, current)
	}
}
