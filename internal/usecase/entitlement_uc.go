package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"prompt-template-store/internal/catalog"
	"prompt-template-store/internal/domain/ports/repository"
	"prompt-template-store/internal/infra/metrics"
)

// Compile-time check
var _ EntitlementUseCase = (*entitlementUC)(nil)

// LockStateCache is a snapshot cache of per-user lock maps. Lookups
// are best-effort: implementations swallow transient store errors and
// report a miss instead.
type LockStateCache interface {
	Get(ctx context.Context, userID string) (map[string]bool, bool)
	Set(ctx context.Context, userID string, state map[string]bool)
	Del(ctx context.Context, userID string)
}

// LockStateListener is told exactly once per template whose unlocked
// state flipped during a refresh.
type LockStateListener interface {
	LockStateChanged(userID, templateID string, unlocked bool)
}

type EntitlementUseCase interface {
	// IsUnlocked applies the gate's decision table. It fails closed:
	// a store error yields the last known state, or locked.
	IsUnlocked(ctx context.Context, userID, templateID string) bool
	// RefreshLockState recomputes the full lock map for a user.
	// Overlapping refreshes resolve last-write-wins: a completion
	// older than the latest applied one is discarded.
	RefreshLockState(ctx context.Context, userID string) map[string]bool
	// Invalidate drops cached and remembered state for the user. Call
	// on auth-state change and after webhook grant/revoke.
	Invalidate(ctx context.Context, userID string)
}

type entitlementUC struct {
	cat      *catalog.Catalog
	grants   repository.TemplateGrantRepository
	subs     repository.SubscriptionRepository
	cache    LockStateCache
	listener LockStateListener
	log      *zerolog.Logger

	mu        sync.Mutex
	seq       map[string]uint64          // latest refresh started per user
	applied   map[string]uint64          // latest refresh applied per user
	lastKnown map[string]map[string]bool // fail-closed fallback
}

func NewEntitlementUseCase(
	cat *catalog.Catalog,
	grants repository.TemplateGrantRepository,
	subs repository.SubscriptionRepository,
	cache LockStateCache,
	listener LockStateListener,
	logger *zerolog.Logger,
) *entitlementUC {
	return &entitlementUC{
		cat:       cat,
		grants:    grants,
		subs:      subs,
		cache:     cache,
		listener:  listener,
		log:       logger,
		seq:       make(map[string]uint64),
		applied:   make(map[string]uint64),
		lastKnown: make(map[string]map[string]bool),
	}
}

func (u *entitlementUC) IsUnlocked(ctx context.Context, userID, templateID string) bool {
	t := u.cat.ByID(templateID)
	if t == nil {
		return false
	}
	if t.Free {
		return true
	}
	if userID == "" {
		return false
	}

	sub, err := u.subs.FindByUser(ctx, nil, userID)
	if err == nil && sub.Active() {
		return true
	}
	if err != nil && !isNotFound(err) {
		u.log.Warn().Err(err).Str("user_id", userID).Msg("subscription lookup failed; failing closed")
		return u.known(userID, templateID)
	}

	owned, err := u.grants.Exists(ctx, nil, userID, templateID)
	if err != nil {
		u.log.Warn().Err(err).Str("user_id", userID).Str("template_id", templateID).
			Msg("grant lookup failed; failing closed")
		return u.known(userID, templateID)
	}
	return owned
}

func (u *entitlementUC) RefreshLockState(ctx context.Context, userID string) map[string]bool {
	u.mu.Lock()
	u.seq[userID]++
	mySeq := u.seq[userID]
	u.mu.Unlock()

	if userID != "" && u.cache != nil {
		if state, ok := u.cache.Get(ctx, userID); ok {
			metrics.IncEntitlementCache("hit")
			u.apply(userID, mySeq, state, false)
			return state
		}
		metrics.IncEntitlementCache("miss")
	}

	state, err := u.compute(ctx, userID)
	if err != nil {
		metrics.IncEntitlementRefresh("failed")
		u.log.Warn().Err(err).Str("user_id", userID).Msg("entitlement refresh failed; keeping previous state")
		return u.fallback(userID)
	}

	if !u.apply(userID, mySeq, state, true) {
		metrics.IncEntitlementRefresh("stale")
		return u.fallback(userID)
	}
	metrics.IncEntitlementRefresh("ok")

	if userID != "" && u.cache != nil {
		u.cache.Set(ctx, userID, state)
	}
	return state
}

func (u *entitlementUC) Invalidate(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	if u.cache != nil {
		u.cache.Del(ctx, userID)
	}
	u.mu.Lock()
	delete(u.lastKnown, userID)
	u.mu.Unlock()
}

// compute builds the full lock map with one subscription lookup and
// one grant-list lookup.
func (u *entitlementUC) compute(ctx context.Context, userID string) (map[string]bool, error) {
	full := false
	var ownedSet map[string]bool

	if userID != "" {
		sub, err := u.subs.FindByUser(ctx, nil, userID)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
		full = sub.Active()

		if !full {
			ids, err := u.grants.ListTemplateIDs(ctx, nil, userID)
			if err != nil {
				return nil, err
			}
			ownedSet = make(map[string]bool, len(ids))
			for _, id := range ids {
				ownedSet[id] = true
			}
		}
	}

	state := make(map[string]bool)
	for _, t := range u.cat.List() {
		switch {
		case t.Free:
			state[t.ID] = true
		case userID == "":
			state[t.ID] = false
		case full:
			state[t.ID] = true
		default:
			state[t.ID] = ownedSet[t.ID]
		}
	}
	return state, nil
}

// apply installs a refresh result if it is still the most recent one,
// and notifies the listener once per flipped template.
func (u *entitlementUC) apply(userID string, seq uint64, state map[string]bool, notify bool) bool {
	u.mu.Lock()
	if seq < u.applied[userID] {
		u.mu.Unlock()
		return false
	}
	prev := u.lastKnown[userID]
	u.applied[userID] = seq
	u.lastKnown[userID] = state
	u.mu.Unlock()

	if notify && u.listener != nil && prev != nil {
		for id, unlocked := range state {
			if prev[id] != unlocked {
				u.listener.LockStateChanged(userID, id, unlocked)
			}
		}
	}
	return true
}

func (u *entitlementUC) known(userID, templateID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if state, ok := u.lastKnown[userID]; ok {
		return state[templateID]
	}
	return false
}

func (u *entitlementUC) fallback(userID string) map[string]bool {
	u.mu.Lock()
	if state, ok := u.lastKnown[userID]; ok {
		u.mu.Unlock()
		return state
	}
	u.mu.Unlock()

	// Locked default: only free templates open.
	state := make(map[string]bool)
	for _, t := range u.cat.List() {
		state[t.ID] = t.Free
	}
	return state
}
