package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
)

type businessRepository struct {
	s *Store
}

func (r *businessRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Business, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if i := r.s.businessIndex(id); i >= 0 {
		return r.s.businesses[i].Clone(), nil
	}

	return nil, repository.ErrBusinessNotFound
}

func (r *businessRepository) List(_ context.Context) ([]*entity.Business, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Business, 0, len(r.s.businesses))
	for _, b := range r.s.businesses {
		out = append(out, b.Clone())
	}

	return out, nil
}

func (r *businessRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Business, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Business, 0)
	for _, b := range r.s.businesses {
		if b.OwnerID == ownerID {
			out = append(out, b.Clone())
		}
	}

	return out, nil
}

func (r *businessRepository) Create(_ context.Context, business *entity.Business) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.businesses = append(r.s.businesses, business.Clone())

	return nil
}

func (r *businessRepository) Update(_ context.Context, id uuid.UUID, mutate func(*entity.Business) error) (*entity.Business, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.businessIndex(id)
	if i < 0 {
		return nil, repository.ErrBusinessNotFound
	}

	next := r.s.businesses[i].Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	r.s.businesses[i] = next

	return next.Clone(), nil
}

func (r *businessRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.businessIndex(id)
	if i < 0 {
		return repository.ErrBusinessNotFound
	}
	r.s.businesses = slices.Delete(r.s.businesses, i, i+1)

	return nil
}

// businessIndex must be called with s.mu held.
func (s *Store) businessIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.businesses, func(b *entity.Business) bool { return b.ID == id })
}

type bannerRepository struct {
	s *Store
}

func (r *bannerRepository) List(_ context.Context) ([]*entity.Banner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Banner, 0, len(r.s.banners))
	for _, b := range r.s.banners {
		c := *b
		out = append(out, &c)
	}

	return out, nil
}

func (r *bannerRepository) Upsert(_ context.Context, banner *entity.Banner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *banner
	for i, b := range r.s.banners {
		if b.BusinessID == banner.BusinessID {
			r.s.banners[i] = &c

			return nil
		}
	}
	r.s.banners = append(r.s.banners, &c)

	return nil
}

func (r *bannerRepository) DeleteByBusiness(_ context.Context, businessID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.banners = slices.DeleteFunc(r.s.banners, func(b *entity.Banner) bool {
		return b.BusinessID == businessID
	})

	return nil
}

type paymentRepository struct {
	s *Store
}

func (r *paymentRepository) Create(_ context.Context, payment *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *payment
	r.s.payments = append(r.s.payments, &c)

	return nil
}

func (r *paymentRepository) FindByPreferenceID(_ context.Context, preferenceID string) (*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.payments {
		if p.PreferenceID == preferenceID {
			c := *p

			return &c, nil
		}
	}

	return nil, repository.ErrPaymentNotFound
}

func (r *paymentRepository) Save(_ context.Context, payment *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, p := range r.s.payments {
		if p.ID == payment.ID {
			c := *payment
			r.s.payments[i] = &c

			return nil
		}
	}

	return repository.ErrPaymentNotFound
}

func (r *paymentRepository) List(_ context.Context) ([]*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Payment, 0, len(r.s.payments))
	for _, p := range r.s.payments {
		c := *p
		out = append(out, &c)
	}

	return out, nil
}
