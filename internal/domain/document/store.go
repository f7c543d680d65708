// Package document holds the editable invoice for one session and the
// update operations allowed on it. Every operation is total: malformed
// numbers become 0 and references to unknown items are ignored.
package document

import (
	"sync"

	"github.com/google/uuid"

	"github.com/garyjia/rental-invoice/internal/domain/entity"
)

// Listener receives the new document after every applied change
type Listener func(inv entity.Invoice)

// Option configures a Store
type Option func(*Store)

// WithIDGenerator overrides how new line item ids are produced
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithItemPlaceholder sets the description used by AddItem
func WithItemPlaceholder(description string) Option {
	return func(s *Store) {
		s.placeholder = description
	}
}

// NewItemID returns a random UUID string
func NewItemID() string {
	return uuid.NewString()
}

// Store owns a single invoice value. Updates replace the value as a whole,
// so a Snapshot taken before an update is never affected by it.
type Store struct {
	mu          sync.RWMutex
	current     entity.Invoice
	version     uint64
	listeners   map[int]Listener
	nextSubID   int
	newID       func() string
	placeholder string
}

// NewStore creates a store holding initial. The document is normalized so
// that it has at least one item, unique non-empty item ids and finite numbers.
func NewStore(initial entity.Invoice, opts ...Option) *Store {
	s := &Store{
		listeners:   make(map[int]Listener),
		newID:       NewItemID,
		placeholder: DefaultItemPlaceholder,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.current = s.normalize(initial)
	return s
}

func (s *Store) normalize(inv entity.Invoice) entity.Invoice {
	out := inv.Clone()
	out.TaxRate = finite(out.TaxRate)

	seen := make(map[string]bool, len(out.Items))
	for i := range out.Items {
		item := &out.Items[i]
		if item.ID == "" || seen[item.ID] {
			item.ID = s.uniqueID(seen)
		}
		seen[item.ID] = true
		item.Quantity = finite(item.Quantity)
		item.Rate = finite(item.Rate)
	}

	if len(out.Items) == 0 {
		out.Items = []entity.LineItem{s.newItem(seen)}
	}
	return out
}

func (s *Store) uniqueID(taken map[string]bool) string {
	for {
		id := s.newID()
		if id != "" && !taken[id] {
			return id
		}
	}
}

func (s *Store) newItem(taken map[string]bool) entity.LineItem {
	return entity.LineItem{
		ID:          s.uniqueID(taken),
		Description: s.placeholder,
		Quantity:    1,
		Rate:        0,
	}
}

// Snapshot returns a copy of the current document
func (s *Store) Snapshot() entity.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Version increases by one with every applied change. No-ops leave it unchanged.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers fn to run after each applied change and returns a
// function that removes it. Listeners run on the caller's goroutine.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// apply runs update against the current value and installs its result when
// it reports a change. Listeners are notified outside the lock.
func (s *Store) apply(update func(cur entity.Invoice) (entity.Invoice, bool)) entity.Invoice {
	s.mu.Lock()
	next, changed := update(s.current)
	if !changed {
		out := s.current.Clone()
		s.mu.Unlock()
		return out
	}

	s.current = next
	s.version++
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	out := next.Clone()
	s.mu.Unlock()

	for _, l := range listeners {
		l(out.Clone())
	}
	return out
}

// UpdateField sets invoiceNumber, invoiceDate, dueDate or notes
func (s *Store) UpdateField(field InvoiceField, value string) entity.Invoice {
	return s.apply(func(cur entity.Invoice) (entity.Invoice, bool) {
		return ApplyField(cur, field, value)
	})
}

// UpdateTaxRate parses raw as a percentage; unparsable input stores 0
func (s *Store) UpdateTaxRate(raw string) entity.Invoice {
	return s.apply(func(cur entity.Invoice) (entity.Invoice, bool) {
		return ApplyTaxRate(cur, raw), true
	})
}

// UpdateParty replaces one field of the company or customer record
func (s *Store) UpdateParty(party Party, field PartyField, value string) entity.Invoice {
	return s.apply(func(cur entity.Invoice) (entity.Invoice, bool) {
		return ApplyParty(cur, party, field, value)
	})
}

// SetLogo stores an opaque image string (a data URI) as the company logo
func (s *Store) SetLogo(imageData string) entity.Invoice {
	return s.apply(func(cur entity.Invoice) (entity.Invoice, bool) {
		return ApplyLogo(cur, imageData), true
	})
}

// RemoveLogo clears the company logo
func (s *Store) RemoveLogo() entity.Invoice {
	return s.SetLogo("")
}

// UpdateItem changes one field of the item with the given id.
// Unknown ids leave the document unchanged.
func (s *Store) UpdateItem(id string, field ItemField, value string) entity.Invoice {
	return s.apply(func(cur entity.Invoice) (entity.Invoice, bool) {
		return ApplyItem(cur, id, field, value)
	})
}

// AddItem appends a placeholder item with a fresh id and returns it
func (s *Store) AddItem() entity.LineItem {
	var added entity.LineItem
	s.apply(func(cur entity.Invoice) (entity.Invoice, bool) {
		taken := make(map[string]bool, len(cur.Items))
		for _, item := range cur.Items {
			taken[item.ID] = true
		}
		added = s.newItem(taken)
		return AppendItem(cur, added), true
	})
	return added
}

// RemoveItem deletes the item with the given id. The last remaining item
// is never removed, and unknown ids are ignored.
func (s *Store) RemoveItem(id string) entity.Invoice {
	return s.apply(func(cur entity.Invoice) (entity.Invoice, bool) {
		return DeleteItem(cur, id)
	})
}

// Replace swaps in a whole document, normalized the same way as NewStore.
// Normalizing happens under the lock, so the id generator is never called
// concurrently.
func (s *Store) Replace(inv entity.Invoice) entity.Invoice {
	return s.apply(func(entity.Invoice) (entity.Invoice, bool) {
		return s.normalize(inv), true
	})
}
