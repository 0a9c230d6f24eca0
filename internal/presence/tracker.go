// Package presence tracks which viewers are currently reading each post.
//
// The Tracker maintains an in-memory map of live viewers per post, updated
// directly by the server when heartbeats arrive via
// POST /v1/posts/{postId}/presence. A background reaper marks idle viewers
// gone after a configurable threshold and eventually evicts them, so the
// map cannot grow without bound.
package presence

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// DefaultStaleThreshold is how long since the last heartbeat a viewer still
// counts as present in roster listings.
const DefaultStaleThreshold = 2 * time.Minute

// Viewer represents a single viewer's live presence state on one post.
type Viewer struct {
	UserID         string    `json:"userId"`
	FirstSeen      time.Time `json:"firstSeen"`
	LastSeen       time.Time `json:"lastSeen"`
	IdleSecs       float64   `json:"idleSecs"`       // seconds since last heartbeat
	HeartbeatCount int64     `json:"heartbeatCount"` // total heartbeats seen
	Gone           bool      `json:"gone,omitempty"` // true if reaper marked gone
	GoneAt         time.Time `json:"goneAt,omitempty"`
}

// ReaperConfig configures the background idle-viewer reaper.
type ReaperConfig struct {
	// GoneThreshold is how long a viewer must be idle before being marked gone.
	// Default: 2 minutes.
	GoneThreshold time.Duration

	// EvictAfter is how long after being marked gone before a viewer is
	// permanently removed from the in-memory map. Default: 10 minutes.
	EvictAfter time.Duration

	// SweepInterval is how often the reaper scans for idle viewers.
	// Default: 30 seconds.
	SweepInterval time.Duration

	// OnGone is called for each viewer newly marked gone.
	// Called outside the lock, so blocking calls are safe.
	OnGone func(postID, userID string)
}

// Tracker maintains an in-memory roster of live viewers per post.
type Tracker struct {
	mu    sync.RWMutex
	posts map[string]map[string]*viewerState

	reaperStop chan struct{}
	reaperDone chan struct{}
}

type viewerState struct {
	firstSeen      time.Time
	lastSeen       time.Time
	heartbeatCount int64
	gone           bool
	goneAt         time.Time
}

// New creates a new presence tracker.
func New() *Tracker {
	return &Tracker{
		posts: make(map[string]map[string]*viewerState),
	}
}

// Touch records a heartbeat from a viewer on a post. Called by the server
// when POST /v1/posts/{postId}/presence is received.
func (t *Tracker) Touch(postID, userID string) {
	if postID == "" || userID == "" {
		return
	}

	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()

	viewers, ok := t.posts[postID]
	if !ok {
		viewers = make(map[string]*viewerState)
		t.posts[postID] = viewers
	}

	state, ok := viewers[userID]
	if !ok {
		state = &viewerState{firstSeen: now}
		viewers[userID] = state
	}

	// A gone viewer that heartbeats again is simply back.
	if state.gone {
		slog.Info("presence: viewer returned", "post_id", postID, "user_id", userID)
		state.gone = false
		state.goneAt = time.Time{}
	}

	state.lastSeen = now
	state.heartbeatCount++
}

// Viewers returns a snapshot of a post's viewers, sorted by most recently
// active. staleThreshold controls how long since the last heartbeat before
// a viewer is excluded. Pass 0 to include every viewer still tracked.
func (t *Tracker) Viewers(postID string, staleThreshold time.Duration) []Viewer {
	t.mu.RLock()
	defer t.mu.RUnlock()

	states := t.posts[postID]
	if len(states) == 0 {
		return nil
	}

	now := time.Now()
	viewers := make([]Viewer, 0, len(states))

	for userID, state := range states {
		idle := now.Sub(state.lastSeen)
		if staleThreshold > 0 && idle > staleThreshold {
			continue
		}

		viewers = append(viewers, Viewer{
			UserID:         userID,
			FirstSeen:      state.firstSeen,
			LastSeen:       state.lastSeen,
			IdleSecs:       idle.Seconds(),
			HeartbeatCount: state.heartbeatCount,
			Gone:           state.gone,
			GoneAt:         state.goneAt,
		})
	}

	// Sort by last seen (most recent first).
	sort.Slice(viewers, func(i, j int) bool {
		return viewers[i].LastSeen.After(viewers[j].LastSeen)
	})

	return viewers
}

// StartReaper launches a background goroutine that periodically marks idle
// viewers gone. Call Stop() to shut it down.
func (t *Tracker) StartReaper(cfg *ReaperConfig) {
	if cfg == nil {
		cfg = &ReaperConfig{}
	}
	if cfg.GoneThreshold == 0 {
		cfg.GoneThreshold = DefaultStaleThreshold
	}
	if cfg.EvictAfter == 0 {
		cfg.EvictAfter = 10 * time.Minute
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = 30 * time.Second
	}

	t.reaperStop = make(chan struct{})
	t.reaperDone = make(chan struct{})

	go t.reapLoop(cfg)
	slog.Info("presence: reaper started",
		"gone_threshold", cfg.GoneThreshold,
		"sweep_interval", cfg.SweepInterval)
}

// Stop shuts down the reaper goroutine.
func (t *Tracker) Stop() {
	if t.reaperStop != nil {
		close(t.reaperStop)
		<-t.reaperDone
		t.reaperStop = nil
		t.reaperDone = nil
	}
}

func (t *Tracker) reapLoop(cfg *ReaperConfig) {
	defer close(t.reaperDone)

	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.reaperStop:
			return
		case <-ticker.C:
			t.sweep(cfg)
		}
	}
}

func (t *Tracker) sweep(cfg *ReaperConfig) {
	now := time.Now()

	type goneViewer struct {
		postID string
		userID string
	}
	var newlyGone []goneViewer

	t.mu.Lock()
	for postID, viewers := range t.posts {
		for userID, state := range viewers {
			if state.gone {
				// Evict viewers gone for longer than EvictAfter. Drive-by
				// readers (<5 heartbeats) are evicted faster (1 min).
				evictThreshold := cfg.EvictAfter
				if state.heartbeatCount < 5 {
					evictThreshold = time.Minute
				}
				if !state.goneAt.IsZero() && now.Sub(state.goneAt) > evictThreshold {
					delete(viewers, userID)
				}
				continue
			}
			idle := now.Sub(state.lastSeen)
			if idle > cfg.GoneThreshold {
				state.gone = true
				state.goneAt = now
				newlyGone = append(newlyGone, goneViewer{postID: postID, userID: userID})
			}
		}
		if len(viewers) == 0 {
			delete(t.posts, postID)
		}
	}
	t.mu.Unlock()

	for _, gone := range newlyGone {
		slog.Info("presence: reaper marked viewer gone",
			"post_id", gone.postID,
			"user_id", gone.userID,
			"threshold", cfg.GoneThreshold)
		if cfg.OnGone != nil {
			cfg.OnGone(gone.postID, gone.userID)
		}
	}
}
