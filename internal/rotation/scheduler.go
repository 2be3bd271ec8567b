package rotation

import (
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
	"github.com/preston-bernstein/saturday-stats/internal/logging"
	"github.com/preston-bernstein/saturday-stats/internal/metrics"
	"github.com/preston-bernstein/saturday-stats/internal/timeutil"
)

const (
	DefaultSetInterval      = 15 * time.Second
	DefaultFeaturedInterval = 33 * time.Second
	DefaultFadeDelay        = 500 * time.Millisecond
)

// Config controls page size and timing.
type Config struct {
	PageSize         int
	SetInterval      time.Duration
	FeaturedInterval time.Duration
	FadeDelay        time.Duration
	FeaturedIDs      []games.GameID
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.SetInterval <= 0 {
		c.SetInterval = DefaultSetInterval
	}
	if c.FeaturedInterval <= 0 {
		c.FeaturedInterval = DefaultFeaturedInterval
	}
	if c.FadeDelay <= 0 {
		c.FadeDelay = DefaultFadeDelay
	}
	return c
}

type timerSlot int

const (
	slotSetTick timerSlot = iota
	slotSetAdvance
	slotFeaturedTick
	slotFeaturedAdvance
	slotCount
)

// Scheduler owns the rotation State. Every event, whether from a timer or an
// update, is applied under one mutex so transitions never interleave.
// Listeners run inside that critical section and must not block.
type Scheduler struct {
	cfg     Config
	clock   timeutil.Clock
	logger  *slog.Logger
	metrics *metrics.Recorder

	mu        sync.Mutex
	state     State
	timers    [slotCount]timeutil.Timer
	started   bool
	stopped   bool
	listeners []func(Frame)
}

// New builds a scheduler. A nil clock means the system clock.
func New(cfg Config, clock timeutil.Clock, logger *slog.Logger, recorder *metrics.Recorder) *Scheduler {
	cfg = cfg.withDefaults()
	if clock == nil {
		clock = timeutil.System
	}
	state := NewState(cfg.PageSize)
	state.FeaturedIDs = append([]games.GameID(nil), cfg.FeaturedIDs...)
	return &Scheduler{
		cfg:     cfg,
		clock:   clock,
		logger:  logger,
		metrics: recorder,
		state:   state,
	}
}

// OnChange registers fn to receive every new frame.
func (s *Scheduler) OnChange(fn func(Frame)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Start arms both rotation timers. Calling it again, or after Stop, is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	s.armLocked(slotSetTick, s.cfg.SetInterval, s.onSetTick)
	s.armLocked(slotFeaturedTick, s.cfg.FeaturedInterval, s.onFeaturedTick)
	logging.Info(s.logger, "rotation started",
		"pageSize", s.cfg.PageSize,
		"setInterval", s.cfg.SetInterval.String(),
		"featuredInterval", s.cfg.FeaturedInterval.String(),
	)
}

// Stop cancels every pending timer. No callback has any effect afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	for i, t := range s.timers {
		if t != nil {
			t.Stop()
			s.timers[i] = nil
		}
	}
	logging.Info(s.logger, "rotation stopped")
}

// UpdateGames replaces the backing list. Cursors and any fade in progress
// are left alone.
func (s *Scheduler) UpdateGames(list []games.Game) {
	copied := append([]games.Game(nil), list...)
	s.dispatch(Event{Kind: GamesUpdated, Games: copied})
}

// SetFeatured replaces the featured id list.
func (s *Scheduler) SetFeatured(ids []games.GameID) {
	copied := append([]games.GameID(nil), ids...)
	s.dispatch(Event{Kind: FeaturedChanged, FeaturedIDs: copied})
}

// Frame returns the current display frame.
func (s *Scheduler) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Frame()
}

// State returns a copy of the current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// FeaturedIDs returns the configured featured ids.
func (s *Scheduler) FeaturedIDs() []games.GameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]games.GameID(nil), s.state.FeaturedIDs...)
}

func (s *Scheduler) dispatch(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(e)
}

// applyLocked reduces e and notifies listeners when the state moved.
// Returns the previous state. It is a no-op once the scheduler has stopped.
func (s *Scheduler) applyLocked(e Event) (State, bool) {
	if s.stopped {
		return s.state, false
	}
	prev := s.state
	s.state = Reduce(prev, e)
	if !changed(prev, s.state, e) {
		return prev, true
	}
	frame := s.state.Frame()
	for _, fn := range s.listeners {
		fn(frame)
	}
	return prev, true
}

// changed reports whether e moved the state. Timer events only touch the
// cursors and fade flags; list updates always count.
func changed(prev, next State, e Event) bool {
	switch e.Kind {
	case GamesUpdated, FeaturedChanged:
		return true
	}
	return prev.SetIndex != next.SetIndex ||
		prev.FeaturedIndex != next.FeaturedIndex ||
		prev.FadeSet != next.FadeSet ||
		prev.FadeFeatured != next.FadeFeatured
}

func (s *Scheduler) onSetTick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	prev, _ := s.applyLocked(Event{Kind: SetTick})
	if !prev.FadeSet && s.state.FadeSet {
		s.armLocked(slotSetAdvance, s.cfg.FadeDelay, s.onSetAdvance)
	}
	s.armLocked(slotSetTick, s.cfg.SetInterval, s.onSetTick)
}

func (s *Scheduler) onSetAdvance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[slotSetAdvance] = nil
	prev, ok := s.applyLocked(Event{Kind: SetAdvance})
	if !ok || !prev.FadeSet {
		return
	}
	s.metrics.RecordRotation("set")
	logging.Debug(s.logger, "rotation advanced set",
		"setIndex", s.state.SetIndex,
		"setCount", s.state.PageCount(),
	)
}

func (s *Scheduler) onFeaturedTick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	prev, _ := s.applyLocked(Event{Kind: FeaturedTick})
	if !prev.FadeFeatured && s.state.FadeFeatured {
		s.armLocked(slotFeaturedAdvance, s.cfg.FadeDelay, s.onFeaturedAdvance)
	}
	s.armLocked(slotFeaturedTick, s.cfg.FeaturedInterval, s.onFeaturedTick)
}

func (s *Scheduler) onFeaturedAdvance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[slotFeaturedAdvance] = nil
	prev, ok := s.applyLocked(Event{Kind: FeaturedAdvance})
	if !ok || !prev.FadeFeatured {
		return
	}
	s.metrics.RecordRotation("featured")
	logging.Debug(s.logger, "rotation advanced featured",
		"featuredIndex", s.state.FeaturedIndex,
	)
}

func (s *Scheduler) armLocked(slot timerSlot, d time.Duration, fn func()) {
	if s.stopped {
		return
	}
	s.timers[slot] = s.clock.AfterFunc(d, fn)
}
