// Package theme owns the light/dark preference: it resolves the starting
// mode once from persisted storage or the system signal, then keeps storage
// and the presentation layer in step with every change.
package theme

import (
	"log/slog"
	"sync"

	"github.com/zhubert/banter/internal/logger"
	"github.com/zhubert/banter/internal/store"
)

// Mode is the binary theme value.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Storage keys. LegacyKey held "true"/"false" in older releases and is only read.
const (
	StorageKey = "theme"
	LegacyKey  = "darkMode"
)

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether m is Dark.
func (m Mode) IsDark() bool {
	return m == Dark
}

// Parse converts a stored string into a Mode.
func Parse(s string) (Mode, bool) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), true
	}
	return "", false
}

// Presenter applies a mode to whatever is on screen. Implementations must be
// idempotent and must not call back into the Controller.
type Presenter interface {
	Present(Mode)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(Mode)

// Present calls f(m).
func (f PresenterFunc) Present(m Mode) { f(m) }

// Controller is the theme state machine: Uninitialized until Mount, then
// Mounted(mode) for the rest of its life.
type Controller struct {
	mu        sync.Mutex
	mode      Mode
	mounted   bool
	store     store.KV
	presenter Presenter
	log       *slog.Logger
}

// New creates an unmounted controller defaulting to Light. Nothing is read,
// written or presented until Mount. kv and p may be nil.
func New(kv store.KV, p Presenter, log *slog.Logger) *Controller {
	if log == nil {
		log = logger.ComponentLogger("theme")
	}
	return &Controller{
		mode:      Light,
		store:     kv,
		presenter: p,
		log:       log,
	}
}

// Mount resolves the starting mode and synchronizes storage and presentation.
// Resolution order: StorageKey, then LegacyKey, then systemDark. Only the
// first call reads the environment; later calls re-synchronize and return the
// current mode.
func (c *Controller) Mount(systemDark bool) Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mounted {
		c.mode = c.resolve(systemDark)
		c.mounted = true
		c.log.Info("theme mounted", "mode", c.mode, "systemDark", systemDark)
	}
	c.sync()
	return c.mode
}

// Toggle flips the mode. Once mounted the new mode is persisted and presented;
// before Mount it only changes the in-memory default, which Mount replaces.
func (c *Controller) Toggle() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = c.mode.Opposite()
	if c.mounted {
		c.log.Debug("theme toggled", "mode", c.mode)
		c.sync()
	}
	return c.mode
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// IsMounted reports whether Mount has run. Callers render a neutral
// placeholder instead of the real toggle until it has.
func (c *Controller) IsMounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

func (c *Controller) resolve(systemDark bool) Mode {
	if c.store != nil {
		v, ok, err := c.store.Get(StorageKey)
		if err != nil {
			c.log.Warn("failed to read theme preference", "error", err)
		} else if ok {
			if m, valid := Parse(v); valid {
				return m
			}
			c.log.Warn("ignoring unknown theme preference", "value", v)
		}

		v, ok, err = c.store.Get(LegacyKey)
		if err != nil {
			c.log.Warn("failed to read legacy theme preference", "error", err)
		} else if ok {
			switch v {
			case "true":
				return Dark
			case "false":
				return Light
			}
		}
	}
	if systemDark {
		return Dark
	}
	return Light
}

// sync writes the mode to storage and presents it. Storage failures are
// logged; the in-memory mode stays authoritative.
func (c *Controller) sync() {
	if c.store != nil {
		if err := c.store.Set(StorageKey, string(c.mode)); err != nil {
			c.log.Warn("failed to persist theme", "mode", c.mode, "error", err)
		}
	}
	if c.presenter != nil {
		c.presenter.Present(c.mode)
	}
}
