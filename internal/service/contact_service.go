package service

import (
	"context"
	"sort"

	"github.com/splitq/splitq/internal/models"
	"github.com/splitq/splitq/internal/storage"
)

// ContactService derives a user's contact list: everyone they have shared a
// personal expense with, plus the groups they belong to.
type ContactService struct {
	store storage.Store
}

// NewContactService creates a ContactService with the given storage backend.
func NewContactService(store storage.Store) *ContactService {
	return &ContactService{store: store}
}

// Contacts is the combined counterparty and group listing.
type Contacts struct {
	Users  []UserProfile   `json:"users"`
	Groups []*models.Group `json:"groups"`
}

// GetContacts collects the distinct counterparties appearing in the user's
// personal expenses, as payer or split participant, and the user's groups.
func (s *ContactService) GetContacts(ctx context.Context, userID string) (*Contacts, error) {
	expenses, err := s.store.ListPersonalExpensesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, e := range expenses {
		if e.PaidBy != userID {
			seen[e.PaidBy] = true
		}
		for _, split := range e.Splits {
			if split.UserID != userID {
				seen[split.UserID] = true
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	contacts := &Contacts{}
	for _, u := range users {
		contacts.Users = append(contacts.Users, profileOf(u))
	}
	sort.Slice(contacts.Users, func(i, j int) bool {
		return contacts.Users[i].Name < contacts.Users[j].Name
	})

	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	contacts.Groups = groups

	return contacts, nil
}
