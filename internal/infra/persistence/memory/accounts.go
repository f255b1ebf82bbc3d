package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
)

type merchantRepository struct {
	s *Store
}

func (r *merchantRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Merchant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.merchants {
		if m.ID == id {
			c := *m

			return &c, nil
		}
	}

	return nil, repository.ErrMerchantNotFound
}

func (r *merchantRepository) FindByEmail(_ context.Context, email string) (*entity.Merchant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.merchants {
		if strings.EqualFold(m.Email, email) {
			c := *m

			return &c, nil
		}
	}

	return nil, repository.ErrMerchantNotFound
}

func (r *merchantRepository) List(_ context.Context) ([]*entity.Merchant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Merchant, 0, len(r.s.merchants))
	for _, m := range r.s.merchants {
		c := *m
		out = append(out, &c)
	}

	return out, nil
}

func (r *merchantRepository) Create(_ context.Context, merchant *entity.Merchant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.merchants {
		if strings.EqualFold(m.Email, merchant.Email) {
			return repository.ErrDuplicateEmail
		}
	}

	c := *merchant
	r.s.merchants = append(r.s.merchants, &c)

	return nil
}

func (r *merchantRepository) Update(_ context.Context, id uuid.UUID, mutate func(*entity.Merchant) error) (*entity.Merchant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, m := range r.s.merchants {
		if m.ID != id {
			continue
		}

		next := *m
		if err := mutate(&next); err != nil {
			return nil, err
		}
		r.s.merchants[i] = &next
		out := next

		return &out, nil
	}

	return nil, repository.ErrMerchantNotFound
}

type publicUserRepository struct {
	s *Store
}

func (r *publicUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.PublicUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.publicUsers {
		if u.ID == id {
			return u.Clone(), nil
		}
	}

	return nil, repository.ErrPublicUserNotFound
}

func (r *publicUserRepository) FindByEmail(_ context.Context, email string) (*entity.PublicUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.publicUsers {
		if strings.EqualFold(u.Email, email) {
			return u.Clone(), nil
		}
	}

	return nil, repository.ErrPublicUserNotFound
}

func (r *publicUserRepository) List(_ context.Context) ([]*entity.PublicUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.PublicUser, 0, len(r.s.publicUsers))
	for _, u := range r.s.publicUsers {
		out = append(out, u.Clone())
	}

	return out, nil
}

func (r *publicUserRepository) Create(_ context.Context, user *entity.PublicUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.publicUsers {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	r.s.publicUsers = append(r.s.publicUsers, user.Clone())

	return nil
}

func (r *publicUserRepository) Update(_ context.Context, id uuid.UUID, mutate func(*entity.PublicUser) error) (*entity.PublicUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, u := range r.s.publicUsers {
		if u.ID != id {
			continue
		}

		next := u.Clone()
		if err := mutate(next); err != nil {
			return nil, err
		}
		r.s.publicUsers[i] = next

		return next.Clone(), nil
	}

	return nil, repository.ErrPublicUserNotFound
}
