package services

import (
	"log"
	"sync"

	"enside/madeiras-ops-worker/internal/dto"
	"enside/madeiras-ops-worker/internal/handlers"
)

// ContactStore is the in-memory contact base shared by the API and the
// broadcast processor. A spreadsheet sync replaces it wholesale; a chat sync
// merges into it.
type ContactStore struct {
	mu       sync.RWMutex
	contacts []dto.Contact
}

// NewContactStore creates an empty store.
func NewContactStore() *ContactStore {
	return &ContactStore{}
}

// Replace swaps the whole contact base for a fresh sync result.
func (s *ContactStore) Replace(contacts []dto.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = append([]dto.Contact(nil), contacts...)
	log.Printf("[ContactStore] Replaced contact base: %d contacts", len(s.contacts))
}

// All returns a copy of the current contact base.
func (s *ContactStore) All() []dto.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dto.Contact, 0, len(s.contacts))
	return append(out, s.contacts...)
}

// Len returns the current number of contacts.
func (s *ContactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}

// Merge adds contacts that are not already present, deduplicating by phone
// number. Contacts without a dialable number are never merged. Returns how
// many contacts were added.
func (s *ContactStore) Merge(contacts []dto.Contact) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]bool, len(s.contacts))
	for _, c := range s.contacts {
		if c.Phone != handlers.PhoneNone {
			known[c.Phone] = true
		}
	}

	added := 0
	for _, c := range contacts {
		if c.Phone == handlers.PhoneNone || known[c.Phone] {
			continue
		}
		known[c.Phone] = true
		s.contacts = append(s.contacts, c)
		added++
	}

	if added > 0 {
		log.Printf("[ContactStore] Merged %d new contacts (%d total)", added, len(s.contacts))
	}
	return added
}

// FilterCategory returns the reachable contacts of one category: a dialable
// phone number of plausible length. An empty category matches everyone.
func (s *ContactStore) FilterCategory(category string) []dto.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]dto.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		if category != "" && c.Category != category {
			continue
		}
		if c.Phone == handlers.PhoneNone || len(c.Phone) < 10 {
			continue
		}
		matched = append(matched, c)
	}
	return matched
}

// FilterList returns the contacts whose phone numbers appear in a saved
// transmission list, preserving store order.
func (s *ContactStore) FilterList(phones []string) []dto.Contact {
	wanted := make(map[string]bool, len(phones))
	for _, p := range phones {
		wanted[handlers.NormalizePhone(p)] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]dto.Contact, 0, len(phones))
	for _, c := range s.contacts {
		if wanted[c.Phone] {
			matched = append(matched, c)
		}
	}
	return matched
}
