package httpserver

import (
	"sync"

	"github.com/refhub/order-management-backend/interfaces"
	"github.com/refhub/order-management-backend/order"
)

// draftRegistry holds the in-progress order drafts, one per session user.
// Drafts are transient: they exist only in memory, are created on first
// access to the order-entry view, and are dropped on logout or successful
// submission.
type draftRegistry struct {
	mu     sync.Mutex
	byUser map[interfaces.UserID]*order.Draft
}

func newDraftRegistry() *draftRegistry {
	return &draftRegistry{byUser: make(map[interfaces.UserID]*order.Draft)}
}

// get returns the user's draft, creating an empty one on first access.
func (dr *draftRegistry) get(user interfaces.UserID) *order.Draft {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	draft, ok := dr.byUser[user]
	if !ok {
		draft = order.NewDraft()
		dr.byUser[user] = draft
	}
	return draft
}

// drop discards the user's draft.
func (dr *draftRegistry) drop(user interfaces.UserID) {
	dr.mu.Lock()
	defer dr.mu.Unlock()
	delete(dr.byUser, user)
}
