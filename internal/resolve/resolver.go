package resolve

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"artbridge/internal/artset"
	"artbridge/internal/catalogue"
	"artbridge/internal/logging"
)

// ErrSuperseded reports that a newer track selection arrived while this
// resolution was in flight; the result must be discarded.
var ErrSuperseded = errors.New("resolve: track selection superseded")

// Resolver resolves track names to loaded, auto-assigned articulation sets.
type Resolver struct {
	cat       *catalogue.Catalogue
	startNote int
	logger    *slog.Logger

	mu      sync.Mutex
	loaded  map[string]*artset.Set
	track   string
	current *artset.Set
}

// New creates a resolver over the catalogue. startNote seeds the
// auto-assignment pass applied to every loaded set.
func New(cat *catalogue.Catalogue, startNote int, logger *slog.Logger) *Resolver {
	return &Resolver{
		cat:       cat,
		startNote: startNote,
		logger:    logging.NewComponentLogger(logger, "resolve"),
		loaded:    make(map[string]*artset.Set),
	}
}

// Resolve selects the set for trackName. It prefers a cached set whose name
// still matches, then falls back to the catalogue. A nil set with nil error
// means no match. ErrSuperseded means a newer track arrived mid-resolution.
func (r *Resolver) Resolve(trackName string) (*artset.Set, error) {
	r.mu.Lock()
	r.track = trackName
	if cached := r.cachedMatch(trackName); cached != nil {
		r.current = cached
		r.mu.Unlock()
		r.logger.Debug("resolved from session cache",
			logging.String(logging.FieldTrack, trackName),
			logging.String(logging.FieldSet, cached.Name))
		return cached, nil
	}
	r.mu.Unlock()

	entries := r.cat.Search("")
	best := Match(trackName, entries)
	if best == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.track != trackName {
			return nil, ErrSuperseded
		}
		r.current = nil
		return nil, nil
	}

	data, err := r.cat.Load(best.Path)
	if err != nil {
		r.dropCurrent(trackName)
		return nil, fmt.Errorf("load set %s: %w", best.Path, err)
	}
	set, err := artset.Parse(data, best.Path)
	if err != nil {
		r.dropCurrent(trackName)
		return nil, err
	}
	assigned, err := artset.AutoAssign(set, r.startNote)
	if err != nil {
		r.dropCurrent(trackName)
		return nil, fmt.Errorf("complete set %s: %w", set.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded[assigned.Name] = assigned
	if r.track != trackName {
		// A newer selection won the race; keep the parse work cached but
		// do not surface it.
		return nil, ErrSuperseded
	}
	r.current = assigned
	r.logger.Info("articulation set resolved",
		logging.String(logging.FieldTrack, trackName),
		logging.String(logging.FieldSet, assigned.Name),
		logging.Int("articulations", len(assigned.Articulations)))
	return assigned, nil
}

// dropCurrent clears the current set after a failed resolution so the track
// is never reported paired with a previous track's set. A concurrent newer
// selection keeps its own result.
func (r *Resolver) dropCurrent(trackName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.track == trackName {
		r.current = nil
	}
}

// cachedMatch returns the best already-loaded set for trackName. The current
// set wins ties; remaining cache entries are scanned in name order so the
// choice is deterministic. Caller holds the lock.
func (r *Resolver) cachedMatch(trackName string) *artset.Set {
	if r.current != nil && Contains(r.current.Name, trackName) {
		return r.current
	}
	names := make([]string, 0, len(r.loaded))
	for name := range r.loaded {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if Contains(name, trackName) {
			return r.loaded[name]
		}
	}
	return nil
}

// Current returns the track name last resolved for and the set applied to it,
// which is nil when the track had no match.
func (r *Resolver) Current() (string, *artset.Set) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.track, r.current
}

// Invalidate drops the cached set with the given name, forcing the next
// resolution to reload it from disk.
func (r *Resolver) Invalidate(setName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.loaded, setName)
	if r.current != nil && r.current.Name == setName {
		r.current = nil
	}
}
