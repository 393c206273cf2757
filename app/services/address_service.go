package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/signworks/go-orderportal/app/errs"
	"github.com/signworks/go-orderportal/app/models"
	"github.com/signworks/go-orderportal/app/repositories"
)

type AddressInput struct {
	Label     string `json:"label" validate:"required"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	County    string `json:"county" validate:"required"`
	PostCode  string `json:"post_code" validate:"required"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

type AddressService struct {
	addressRepo repositories.AddressRepository
	validate    *validator.Validate
}

func NewAddressService(addressRepo repositories.AddressRepository, validate *validator.Validate) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		validate:    validate,
	}
}

func (s *AddressService) List(ctx context.Context, actor models.Actor) ([]models.Address, error) {
	if actor.IsAnonymous() {
		return nil, errs.Unauthenticated("login required")
	}
	addresses, err := s.addressRepo.FindAddressesByUserID(ctx, actor.ID)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to list addresses for user %s: %w", actor.ID, err))
	}
	return addresses, nil
}

func (s *AddressService) Create(ctx context.Context, actor models.Actor, input AddressInput) (*models.Address, error) {
	if actor.IsAnonymous() {
		return nil, errs.Unauthenticated("login required")
	}
	if err := s.validate.Struct(&input); err != nil {
		return nil, errs.Validation("label, street, city, county, and post code are required")
	}

	country := input.Country
	if country == "" {
		country = "UK"
	}

	address := &models.Address{
		UserID:    actor.ID,
		Label:     input.Label,
		Street:    input.Street,
		City:      input.City,
		County:    input.County,
		PostCode:  input.PostCode,
		Country:   country,
		IsDefault: input.IsDefault,
	}
	if err := s.addressRepo.CreateAddress(ctx, address); err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to create address: %w", err))
	}
	return address, nil
}

// Delete removes one of the actor's own addresses. Someone else's address is
// indistinguishable from a missing one.
func (s *AddressService) Delete(ctx context.Context, actor models.Actor, addressID string) error {
	if actor.IsAnonymous() {
		return errs.Unauthenticated("login required")
	}

	address, err := s.addressRepo.FindAddressByID(ctx, addressID)
	if err != nil {
		return errs.Internal(fmt.Errorf("failed to load address %s: %w", addressID, err))
	}
	if address == nil || address.UserID != actor.ID {
		return errs.NotFound("address not found")
	}

	if err := s.addressRepo.DeleteAddress(ctx, addressID); err != nil {
		return errs.Internal(fmt.Errorf("failed to delete address %s: %w", addressID, err))
	}
	return nil
}
