package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/splitq/splitq/internal/models"
	"github.com/splitq/splitq/internal/storage"
)

// GroupService handles group creation and membership reads.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroupInput carries the fields of a new group.
type CreateGroupInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

// CreateGroup validates and persists a new group. Member ids are
// deduplicated, the creator is always included, and every member id must
// resolve to a registered user.
func (s *GroupService) CreateGroup(ctx context.Context, actorID string, in CreateGroupInput) (*models.Group, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: group name cannot be empty", ErrInvalidArgument)
	}

	seen := map[string]bool{actorID: true}
	members := []string{actorID}
	for _, id := range in.Members {
		if !seen[id] {
			seen[id] = true
			members = append(members, id)
		}
	}
	sort.Strings(members)

	users, err := s.store.GetUsersByIDs(ctx, members)
	if err != nil {
		return nil, err
	}
	for _, id := range members {
		if _, ok := users[id]; !ok {
			return nil, fmt.Errorf("member %s: %w", id, storage.ErrNotFound)
		}
	}

	group := &models.Group{
		Name:        in.Name,
		Description: in.Description,
		Members:     members,
		CreatedBy:   actorID,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(members))
	return group, nil
}

// GroupInfo is the membership-aware projection of one group.
type GroupInfo struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedBy   string        `json:"createdBy"`
	Members     []UserProfile `json:"members"`
}

// GetGroup returns one group with resolved member profiles. The acting user
// must be a member.
func (s *GroupService) GetGroup(ctx context.Context, actorID, groupID string) (*GroupInfo, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actorID) {
		return nil, fmt.Errorf("%w: not a member of group %s", ErrPermissionDenied, groupID)
	}

	users, err := s.store.GetUsersByIDs(ctx, group.Members)
	if err != nil {
		return nil, err
	}

	info := &GroupInfo{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatedBy:   group.CreatedBy,
	}
	for _, id := range group.Members {
		if u, ok := users[id]; ok {
			info.Members = append(info.Members, profileOf(u))
		}
	}
	return info, nil
}

// ListGroups returns the groups the acting user belongs to.
func (s *GroupService) ListGroups(ctx context.Context, actorID string) ([]*models.Group, error) {
	return s.store.ListGroupsByMember(ctx, actorID)
}
