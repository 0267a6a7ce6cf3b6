package text

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Loader loads the font stored under key (a path, URL or any name the
// loader understands).
type Loader interface {
	Load(ctx context.Context, key string) (*Font, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, key string) (*Font, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, key string) (*Font, error) {
	return f(ctx, key)
}

// FontCacheOption configures a FontCache.
type FontCacheOption func(*FontCache)

// WithLoader sets the loader. The default is DefaultLoader.
func WithLoader(l Loader) FontCacheOption {
	return func(c *FontCache) {
		c.loader = l
	}
}

// WithDispatcher sets how load results reach callers. Callbacks passed to
// Acquire run through post; a frame loop posts them onto its own
// goroutine. By default callbacks run on the loading goroutine.
func WithDispatcher(post func(func())) FontCacheOption {
	return func(c *FontCache) {
		c.post = post
	}
}

// WithTTL sets how long an unreferenced font stays cached before Evict
// removes it.
func WithTTL(ttl time.Duration) FontCacheOption {
	return func(c *FontCache) {
		c.ttl = ttl
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) FontCacheOption {
	return func(c *FontCache) {
		c.now = now
	}
}

// DefaultFontTTL is the default eviction delay for unreferenced fonts.
const DefaultFontTTL = 30 * time.Second

// FontCache is a process-wide, reference counted font cache.
//
// Acquire registers interest in a font and never blocks: the callback is
// invoked once the font is available, possibly on a later frame. Releasing
// a handle before the load finishes cancels its callback. Fonts whose
// reference count dropped to zero are evicted by Evict after the TTL.
// A failed load is logged and resolves to an empty font.
//
// FontCache is safe for concurrent use.
type FontCache struct {
	loader Loader
	post   func(func())
	ttl    time.Duration
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	entries map[string]*fontEntry
	nextID  uint64
	onEvict []func(*Font)
	closed  bool
}

type fontEntry struct {
	font     *Font
	ready    bool
	pinned   bool
	refs     int
	released time.Time
	waiters  map[uint64]func(*Font)
}

// NewFontCache creates a font cache.
func NewFontCache(opts ...FontCacheOption) *FontCache {
	ctx, cancel := context.WithCancel(context.Background())
	c := &FontCache{
		loader:  DefaultLoader,
		post:    func(fn func()) { fn() },
		ttl:     DefaultFontTTL,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
		entries: make(map[string]*fontEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FontHandle is a reference to a cached font. Release it when the font is
// no longer used.
type FontHandle struct {
	cache *FontCache
	key   string
	id    uint64
	once  sync.Once
}

// Key returns the cache key the handle refers to.
func (h *FontHandle) Key() string {
	return h.key
}

// Release drops the reference and cancels the callback if the font has
// not been delivered yet. Release is idempotent.
func (h *FontHandle) Release() {
	if h == nil {
		return
	}
	h.once.Do(func() { h.cache.release(h.key, h.id) })
}

// Acquire references the font stored under key and arranges for fn to be
// called with it. fn is always called through the dispatcher, even when
// the font is already cached.
func (c *FontCache) Acquire(key string, fn func(*Font)) *FontHandle {
	c.mu.Lock()
	c.nextID++
	h := &FontHandle{cache: c, key: key, id: c.nextID}

	e, ok := c.entries[key]
	if !ok {
		e = &fontEntry{waiters: make(map[uint64]func(*Font))}
		c.entries[key] = e
		if !c.closed {
			go c.load(key)
		}
	}
	e.refs++

	if !e.ready {
		e.waiters[h.id] = fn
		c.mu.Unlock()
		return h
	}
	e.waiters[h.id] = nil
	font := e.font
	c.mu.Unlock()

	c.deliver(key, h.id, font, fn)
	return h
}

// deliver posts fn unless handle id is released before it runs.
func (c *FontCache) deliver(key string, id uint64, font *Font, fn func(*Font)) {
	c.post(func() {
		if c.isWaiting(key, id) {
			fn(font)
		}
	})
}

// isWaiting reports whether handle id still holds a reference to key.
func (c *FontCache) isWaiting(key string, id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	_, ok = e.waiters[id]
	return ok
}

func (c *FontCache) load(key string) {
	font, err := c.loader.Load(c.ctx, key)
	if err != nil {
		slogger().Warn("text: font load failed", "key", key, "err", err)
		font = EmptyFont(key)
	} else {
		slogger().Debug("text: font loaded", "key", key, "name", font.Name())
	}
	c.resolve(key, font, false)
}

// resolve stores a loaded font and hands it to pending callers. A loaded
// font is only replaced by a registration; the replaced font goes through
// the eviction hooks.
func (c *FontCache) resolve(key string, font *Font, pin bool) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok || (e.ready && (e.pinned || !pin)) {
		c.mu.Unlock()
		return
	}
	var replaced *Font
	if e.ready && e.font != font {
		replaced = e.font
	}
	e.font = font
	e.ready = true
	e.pinned = e.pinned || pin
	if e.refs == 0 {
		e.released = c.now()
	}
	pending := make(map[uint64]func(*Font), len(e.waiters))
	for id, fn := range e.waiters {
		if fn != nil {
			pending[id] = fn
			e.waiters[id] = nil
		}
	}
	hooks := c.onEvict
	c.mu.Unlock()

	if replaced != nil {
		for _, fn := range hooks {
			fn(replaced)
		}
	}
	for id, fn := range pending {
		c.deliver(key, id, font, fn)
	}
}

func (c *FontCache) release(key string, id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return
	}
	if _, held := e.waiters[id]; !held {
		return
	}
	delete(e.waiters, id)
	e.refs--
	if e.refs == 0 {
		e.released = c.now()
	}
}

// Register stores an already decoded font under key, for fonts given
// inline rather than by location. Registered fonts are never evicted and
// the first registration of a key wins.
func (c *FontCache) Register(key string, font *Font) {
	c.mu.Lock()
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = &fontEntry{waiters: make(map[uint64]func(*Font))}
	}
	c.mu.Unlock()
	c.resolve(key, font, true)
}

// Get returns the font under key if it is loaded.
func (c *FontCache) Get(key string) (*Font, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !e.ready {
		return nil, false
	}
	return e.font, true
}

// Refs returns the reference count of key.
func (c *FontCache) Refs(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.refs
	}
	return 0
}

// Len returns the number of cached or loading fonts.
func (c *FontCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// OnEvict registers fn to run for every evicted font.
func (c *FontCache) OnEvict(fn func(*Font)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = append(c.onEvict, fn)
}

// Evict removes loaded, unpinned fonts that have had no references for at
// least the TTL, and returns how many were removed.
func (c *FontCache) Evict() int {
	c.mu.Lock()
	now := c.now()
	var evicted []*Font
	for key, e := range c.entries {
		if !e.ready || e.pinned || e.refs > 0 || now.Sub(e.released) < c.ttl {
			continue
		}
		delete(c.entries, key)
		evicted = append(evicted, e.font)
	}
	hooks := c.onEvict
	c.mu.Unlock()

	for _, f := range evicted {
		for _, fn := range hooks {
			fn(f)
		}
	}
	if len(evicted) > 0 {
		slogger().Debug("text: fonts evicted", "count", len(evicted))
	}
	return len(evicted)
}

// Preload loads keys concurrently and waits for all of them. Fonts are
// cached unreferenced, so they are subject to eviction like released ones.
// It returns the first load error.
func (c *FontCache) Preload(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrCacheClosed
	}
	c.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		if _, ok := c.Get(key); ok {
			continue
		}
		g.Go(func() error {
			font, err := c.loader.Load(ctx, key)
			if err != nil {
				return &LoadError{Key: key, Err: err}
			}
			c.mu.Lock()
			if _, exists := c.entries[key]; !exists {
				c.entries[key] = &fontEntry{waiters: make(map[uint64]func(*Font))}
			}
			c.mu.Unlock()
			c.resolve(key, font, false)
			return nil
		})
	}
	return g.Wait()
}

// Close cancels in-flight loads. Acquire keeps working for fonts that are
// already cached; new keys stay unresolved.
func (c *FontCache) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	return nil
}
