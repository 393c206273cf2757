package services

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/signworks/go-orderportal/app/errs"
	"github.com/signworks/go-orderportal/app/models"
	"github.com/signworks/go-orderportal/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressServiceCreateAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userRepo := repositories.NewUserRepository(db)
	owner := &models.User{Username: "acme", Password: "secret"}
	require.NoError(t, userRepo.Create(ctx, db, owner))
	actor := models.Actor{ID: owner.ID, Username: owner.Username, Role: owner.Role}

	service := NewAddressService(repositories.NewGormAddressRepository(db), validator.New())

	_, err := service.Create(ctx, actor, AddressInput{Label: "HQ"})
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	address, err := service.Create(ctx, actor, AddressInput{
		Label: "HQ", Street: "1 Main St", City: "Leeds",
		County: "West Yorkshire", PostCode: "LS1 1AA",
	})
	require.NoError(t, err)
	assert.Equal(t, "UK", address.Country, "country defaults to UK")

	addresses, err := service.List(ctx, actor)
	require.NoError(t, err)
	assert.Len(t, addresses, 1)
}

func TestAddressServiceDeleteOwnership(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userRepo := repositories.NewUserRepository(db)
	owner := &models.User{Username: "acme", Password: "secret"}
	require.NoError(t, userRepo.Create(ctx, db, owner))
	stranger := &models.User{Username: "rival", Password: "secret"}
	require.NoError(t, userRepo.Create(ctx, db, stranger))

	ownerActor := models.Actor{ID: owner.ID, Username: owner.Username, Role: owner.Role}
	strangerActor := models.Actor{ID: stranger.ID, Username: stranger.Username, Role: stranger.Role}

	service := NewAddressService(repositories.NewGormAddressRepository(db), validator.New())

	address, err := service.Create(ctx, ownerActor, AddressInput{
		Label: "HQ", Street: "1 Main St", City: "Leeds",
		County: "West Yorkshire", PostCode: "LS1 1AA",
	})
	require.NoError(t, err)

	err = service.Delete(ctx, strangerActor, address.ID)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err), "foreign address looks missing")

	require.NoError(t, service.Delete(ctx, ownerActor, address.ID))

	addresses, err := service.List(ctx, ownerActor)
	require.NoError(t, err)
	assert.Empty(t, addresses)
}
