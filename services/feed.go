package services

import (
	"fmt"
	"sync"

	"tennis-score-service/logger"
	"tennis-score-service/scoreboard"
	"tennis-score-service/tennisapi"
)

// MatchBroadcaster pushes reconciled match snapshots to downstream clients.
// Implemented by the web hub; an interface here avoids a cycle.
type MatchBroadcaster interface {
	BroadcastMatch(m scoreboard.Match)
}

// FeedManager owns the match collection. It loads the initial snapshots from
// the upstream API, keeps one live-channel subscription per live match,
// applies incoming deltas and re-broadcasts the reconciled snapshots.
type FeedManager struct {
	api         *tennisapi.Client
	channel     *tennisapi.LiveChannel
	collection  *scoreboard.Collection
	broadcaster MatchBroadcaster

	mu   sync.Mutex
	subs map[string]*tennisapi.Subscription
}

// NewFeedManager creates a feed manager. broadcaster may be nil.
func NewFeedManager(api *tennisapi.Client, channel *tennisapi.LiveChannel, broadcaster MatchBroadcaster) *FeedManager {
	return &FeedManager{
		api:         api,
		channel:     channel,
		collection:  scoreboard.NewCollection(),
		broadcaster: broadcaster,
		subs:        make(map[string]*tennisapi.Subscription),
	}
}

// Collection returns the reconciled match collection.
func (f *FeedManager) Collection() *scoreboard.Collection {
	return f.collection
}

// Start fetches the matches list and subscribes to every live match.
func (f *FeedManager) Start() error {
	matches, err := f.api.Matches()
	if err != nil {
		return fmt.Errorf("failed to load matches: %w", err)
	}

	for _, m := range matches {
		f.collection.Put(m)
	}
	logger.Printf("[Feed] Loaded %d matches", len(matches))

	for _, m := range f.collection.Bucket(scoreboard.FilterLive) {
		if err := f.Watch(m.MatchID); err != nil {
			logger.Errorf("[Feed] Failed to watch match %s: %v", m.MatchID, err)
		}
	}
	return nil
}

// Watch subscribes to the live channel for one match. Watching a match that
// is already watched is a no-op.
func (f *FeedManager) Watch(matchID string) error {
	f.mu.Lock()
	if _, ok := f.subs[matchID]; ok {
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	sub, err := f.channel.Subscribe(matchID, f.ApplyDelta)
	if err != nil {
		return err
	}

	// Re-check under the lock: a concurrent Watch for the same match may
	// have subscribed while we were dialing. Keep the first subscription
	// and tear this one down.
	f.mu.Lock()
	if _, ok := f.subs[matchID]; ok {
		f.mu.Unlock()
		return sub.Unsubscribe()
	}
	f.subs[matchID] = sub
	f.mu.Unlock()

	logger.Printf("[Feed] Watching match %s", matchID)
	return nil
}

// Unwatch tears down the subscription for one match. Idempotent; after it
// returns no further delta for that match reaches the collection.
func (f *FeedManager) Unwatch(matchID string) {
	f.mu.Lock()
	sub, ok := f.subs[matchID]
	delete(f.subs, matchID)
	f.mu.Unlock()

	if ok {
		if err := sub.Unsubscribe(); err != nil {
			logger.Errorf("[Feed] Failed to unsubscribe match %s: %v", matchID, err)
		}
	}
}

// ApplyDelta merges one delta into the identified match and broadcasts the
// result. Deltas for unknown matches are logged and dropped; a delta must
// never corrupt or crash the collection.
func (f *FeedManager) ApplyDelta(matchID string, delta scoreboard.Delta) {
	m, err := f.collection.Apply(matchID, delta)
	if err != nil {
		logger.Errorf("[Feed] Dropping delta for unknown match %s", matchID)
		return
	}

	if f.broadcaster != nil {
		f.broadcaster.BroadcastMatch(m)
	}

	// A match that just went terminal no longer needs its subscription.
	if m.Status == scoreboard.StatusCompleted || m.Status == scoreboard.StatusFinished {
		go f.Unwatch(matchID)
	}
}

// Stop tears down all subscriptions.
func (f *FeedManager) Stop() {
	f.mu.Lock()
	subs := f.subs
	f.subs = make(map[string]*tennisapi.Subscription)
	f.mu.Unlock()

	for id, sub := range subs {
		if err := sub.Unsubscribe(); err != nil {
			logger.Errorf("[Feed] Failed to unsubscribe match %s: %v", id, err)
		}
	}
}
