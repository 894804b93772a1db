package address

import (
	"context"
	"sync"

	"abinexis-storefront/internal/api"
)

// Backend is the slice of the API client the address cache needs.
type Backend interface {
	GetProfile(ctx context.Context) (*api.Profile, error)
	UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.Profile, error)
}

// Service caches the account's addresses for selection during checkout.
type Service interface {
	Load(ctx context.Context) error
	List() []Address
	Select(index int) (*Address, error)
	Selected() *Address
	Add(ctx context.Context, addr Address) error
}

type service struct {
	backend Backend

	mu        sync.RWMutex
	addresses []Address
	selected  int
}

func NewService(backend Backend) Service {
	return &service{backend: backend, selected: -1}
}

// Load refreshes the cache from the account profile. The previously selected
// address survives a reload when it still exists at the same position.
func (s *service) Load(ctx context.Context) error {
	profile, err := s.backend.GetProfile(ctx)
	if err != nil {
		return err
	}

	addresses := make([]Address, 0, len(profile.Addresses))
	for _, dto := range profile.Addresses {
		addresses = append(addresses, fromDTO(dto))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.addresses = addresses
	if s.selected >= len(addresses) {
		s.selected = -1
	}

	// Default to the active address when nothing is selected yet.
	if s.selected < 0 {
		for i, addr := range addresses {
			if addr.IsActive {
				s.selected = i
				break
			}
		}
	}
	return nil
}

func (s *service) List() []Address {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Address, len(s.addresses))
	copy(out, s.addresses)
	return out
}

func (s *service) Select(index int) (*Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.addresses) == 0 {
		return nil, ErrNoAddresses
	}
	if index < 0 || index >= len(s.addresses) {
		return nil, ErrIndexOutOfRange
	}

	s.selected = index
	addr := s.addresses[index]
	return &addr, nil
}

// Selected returns the chosen address or nil; checkout gates step 2 on a
// non-nil result.
func (s *service) Selected() *Address {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selected < 0 || s.selected >= len(s.addresses) {
		return nil
	}
	addr := s.addresses[s.selected]
	return &addr
}

// Add saves a new address through the profile endpoint and refreshes the
// cache from the response.
func (s *service) Add(ctx context.Context, addr Address) error {
	if addr.Address == "" || addr.City == "" || addr.ZipCode == "" {
		return ErrIncompleteInput
	}
	if addr.Type == "" {
		addr.Type = TypeHome
	}

	s.mu.RLock()
	dtos := make([]api.AddressDTO, 0, len(s.addresses)+1)
	for _, existing := range s.addresses {
		dtos = append(dtos, toDTO(existing))
	}
	s.mu.RUnlock()
	dtos = append(dtos, toDTO(addr))

	profile, err := s.backend.UpdateProfile(ctx, api.UpdateProfileRequest{Addresses: dtos})
	if err != nil {
		return err
	}

	addresses := make([]Address, 0, len(profile.Addresses))
	for _, dto := range profile.Addresses {
		addresses = append(addresses, fromDTO(dto))
	}

	s.mu.Lock()
	s.addresses = addresses
	s.mu.Unlock()
	return nil
}

func fromDTO(dto api.AddressDTO) Address {
	return Address{
		Type:     Type(dto.Type),
		Address:  dto.Address,
		City:     dto.City,
		State:    dto.State,
		ZipCode:  dto.ZipCode,
		Phone:    dto.Phone,
		IsActive: dto.IsActive,
	}
}

func toDTO(addr Address) api.AddressDTO {
	return api.AddressDTO{
		Type:     string(addr.Type),
		Address:  addr.Address,
		City:     addr.City,
		State:    addr.State,
		ZipCode:  addr.ZipCode,
		Phone:    addr.Phone,
		IsActive: addr.IsActive,
	}
}
