package member

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"memberlink/backend"
	"memberlink/config"
	"memberlink/internal/diagnostic"
)

var (
	ErrInvalidHandle = errors.New("handle does not belong to a live hierarchy")
	ErrBrokenChain   = errors.New("handle owner chain is broken")
	ErrUnknownMember = errors.New("member is not registered in the catalog")
)

// Context holds the process-wide state shared by every hierarchy.
type Context struct {
	cfg      config.Config
	logger   *slog.Logger
	diag     *diagnostic.Reporter
	now      func() time.Time
	catalog  *backend.Catalog
	generics *backend.GenericArgs

	hierarchies map[int]*Hierarchy
	byKey       map[string]int
	nextID      int

	storeFactory StoreFactory
	validator    Validator
	validity     func(target any) bool
	recorder     Recorder
}

// Option configures a Context.
type Option func(*Context)

// WithConfig sets the configuration. Zero fields take their defaults.
func WithConfig(cfg config.Config) Option {
	return func(c *Context) {
		c.cfg = cfg
	}
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// WithClock replaces the time source used by the mixed-content cache.
func WithClock(now func() time.Time) Option {
	return func(c *Context) {
		c.now = now
	}
}

// WithStoreFactory enables external persisted-property stores.
func WithStoreFactory(f StoreFactory) Option {
	return func(c *Context) {
		c.storeFactory = f
	}
}

// WithValidator sets the receiver of post-change validation signals.
func WithValidator(v Validator) Option {
	return func(c *Context) {
		c.validator = v
	}
}

// WithValidity sets a check for stale targets, consulted in addition to Validity.
func WithValidity(valid func(target any) bool) Option {
	return func(c *Context) {
		c.validity = valid
	}
}

// NewContext creates a Context.
func NewContext(opts ...Option) *Context {
	c := &Context{
		cfg:         config.Default(),
		now:         time.Now,
		catalog:     backend.NewCatalog(),
		generics:    backend.NewGenericArgs(),
		hierarchies: make(map[int]*Hierarchy),
		byKey:       make(map[string]int),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.cfg = c.cfg.WithDefaults()

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c.diag = diagnostic.NewReporter(c.logger, c.cfg.DiagnosticsLimit)

	return c
}

// Config returns the effective configuration.
func (c *Context) Config() config.Config { return c.cfg }

// Logger returns the context logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Catalog returns the backend catalog used to rebuild serialized handles.
func (c *Context) Catalog() *backend.Catalog { return c.catalog }

// GenericArgs returns the shared generic argument table.
func (c *Context) GenericArgs() *backend.GenericArgs { return c.generics }

// Reporter returns the diagnostics reporter.
func (c *Context) Reporter() *diagnostic.Reporter { return c.diag }

// Diagnostics returns a snapshot of the collected diagnostics.
func (c *Context) Diagnostics() diagnostic.Diagnostics { return c.diag.Snapshot() }

// Now returns the current time of the context clock.
func (c *Context) Now() time.Time { return c.now() }

// SetRecorder installs the write recorder and returns the previous one.
func (c *Context) SetRecorder(r Recorder) Recorder {
	prev := c.recorder
	c.recorder = r

	return prev
}

// GetOrCreate returns the hierarchy of the target set, creating it on first use.
// Nil targets and duplicates are dropped; order matters.
func (c *Context) GetOrCreate(targets ...any) *Hierarchy {
	set := normalizeTargets(targets)
	key := targetSetKey(set)

	if id, ok := c.byKey[key]; ok {
		return c.hierarchies[id]
	}

	c.nextID++
	h := &Hierarchy{
		ctx:     c,
		id:      c.nextID,
		key:     key,
		targets: set,
		cache:   make(map[cacheKey]int),
	}
	h.store = c.buildStore(set)

	c.hierarchies[h.id] = h
	c.byKey[key] = h.id

	return h
}

// Lookup returns the hierarchy of the target set if it exists.
func (c *Context) Lookup(targets ...any) (*Hierarchy, bool) {
	id, ok := c.byKey[targetSetKey(normalizeTargets(targets))]
	if !ok {
		return nil, false
	}

	return c.hierarchies[id], true
}

// Len returns the number of live hierarchies.
func (c *Context) Len() int {
	return len(c.hierarchies)
}

// Sweep disposes every hierarchy that holds an invalid target and returns
// how many were disposed.
func (c *Context) Sweep() int {
	ids := make([]int, 0, len(c.hierarchies))
	for id := range c.hierarchies {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	disposed := 0
	for _, id := range ids {
		h := c.hierarchies[id]
		for i, t := range h.targets {
			if c.isValid(t) {
				continue
			}

			c.diag.Info(diagnostic.CodeStaleTarget, "target became invalid, disposing hierarchy", "", targetLabel(h.targets, i))
			h.Dispose()
			disposed++

			break
		}
	}

	return disposed
}

// Tick runs the per-frame maintenance of the context.
func (c *Context) Tick() {
	c.Sweep()
}

// Resolve rebuilds the handle a descriptor describes on the hierarchy of targets.
func (c *Context) Resolve(targets []any, d Descriptor) (Handle, error) {
	if len(d.Chain) == 0 {
		return Handle{}, fmt.Errorf("%w: empty descriptor", ErrUnknownMember)
	}

	h := c.GetOrCreate(targets...)
	parent := NoParent

	for i, link := range d.Chain {
		b, ok := c.catalog.Lookup(link)
		if !ok {
			return Handle{}, fmt.Errorf("%w: %s", ErrUnknownMember, link.Key())
		}

		var opts []GetOption
		if i < len(d.StorePaths) && d.StorePaths[i] != "" {
			opts = append(opts, WithStorePath(d.StorePaths[i]))
		}

		parent = h.Get(parent, b, opts...)
		if parent.OwnerKind() == OwnerBroken {
			return Handle{}, fmt.Errorf("%w: %s", ErrBrokenChain, link.Key())
		}
	}

	return parent, nil
}

func (c *Context) isValid(target any) bool {
	if v, ok := target.(Validity); ok && !v.IsValid() {
		return false
	}

	if c.validity != nil && !c.validity(target) {
		return false
	}

	return true
}

func (c *Context) buildStore(targets []any) (store Store) {
	if c.storeFactory == nil || !sameConcreteType(targets) {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			c.diag.Warn(diagnostic.CodeStoreUnavailable, fmt.Sprintf("store factory panicked: %v", r), "", "")
			store = nil
		}
	}()

	s, err := c.storeFactory(targets)
	if err != nil {
		c.diag.Info(diagnostic.CodeStoreUnavailable, err.Error(), "", "")
		return nil
	}

	return s
}

func (c *Context) remove(h *Hierarchy) {
	if id, ok := c.byKey[h.key]; ok && id == h.id {
		delete(c.byKey, h.key)
	}

	delete(c.hierarchies, h.id)
}

func (c *Context) hierarchy(id int) (*Hierarchy, bool) {
	h, ok := c.hierarchies[id]
	return h, ok
}

func (c *Context) notifyChanged(target any) {
	if o, ok := target.(ChangeObserver); ok {
		o.OnValidate()
	}

	if c.validator != nil {
		c.validator.ValueChanged(target)
	}
}

// registerWrite hands w to the recorder and reports whether the targets are
// to be marked modified. Without a recorder nothing is marked.
func (c *Context) registerWrite(w Write) bool {
	if c.recorder == nil {
		return false
	}

	return c.recorder.RegisterWrite(w)
}

func (c *Context) markModified(target any) {
	if m, ok := target.(Modifiable); ok {
		m.MarkModified()
	}
}
