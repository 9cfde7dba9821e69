package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
)

func (s *Store) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	defer s.rlock()()
	u, ok := s.st.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	defer s.rlock()()
	for _, u := range s.st.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]domain.User, error) {
	defer s.rlock()()
	out := make([]domain.User, 0, len(s.st.users))
	for _, u := range s.st.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *Store) FindInventoryByUser(_ context.Context, userID string) (*domain.Inventory, error) {
	defer s.rlock()()
	inv, ok := s.st.inventories[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &inv, nil
}

func (s *Store) SaveUser(_ context.Context, user domain.User) error {
	defer s.lock()()
	for _, u := range s.st.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrDuplicate
		}
	}
	s.st.users[user.UserID] = user
	return nil
}

func (s *Store) SaveInventory(_ context.Context, inventory domain.Inventory) error {
	defer s.lock()()
	s.st.inventories[inventory.UserID] = inventory
	return nil
}
