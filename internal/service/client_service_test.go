package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClientService_CreateDefaultsToActive(t *testing.T) {
	cr := new(mockClientRepo)
	cr.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Client) bool {
		return c.WorkspaceID == 10 && c.Status == models.ClientStatusActive
	})).Return(int64(7), nil)

	client, err := NewClientService(cr, nopActivity{}).Create(context.Background(), ownerAccess(plans.TierCorporate), &transfer.ClientInput{
		Name:  "Harbor Holdings",
		Email: "ops@harbor.example",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), client.ID)
	assert.Equal(t, "Harbor Holdings", client.Name)
	cr.AssertExpectations(t)
}

func TestClientService_UpdateKeepsStatusWhenOmitted(t *testing.T) {
	cr := new(mockClientRepo)
	cr.On("GetByID", mock.Anything, int64(10), int64(7)).Return(&models.Client{
		ID:          7,
		WorkspaceID: 10,
		Name:        "Harbor",
		Status:      models.ClientStatusInactive,
	}, true, nil)
	cr.On("Update", mock.Anything, mock.Anything).Return(true, nil)

	client, err := NewClientService(cr, nopActivity{}).Update(context.Background(), ownerAccess(plans.TierCorporate), 7, &transfer.ClientInput{
		Name: "Harbor Holdings",
	})
	require.NoError(t, err)

	assert.Equal(t, "Harbor Holdings", client.Name)
	assert.Equal(t, models.ClientStatusInactive, client.Status)
}

func TestClientService_OtherWorkspace(t *testing.T) {
	cr := new(mockClientRepo)
	cr.On("GetByID", mock.Anything, int64(10), int64(99)).Return(nil, false, nil)
	cr.On("Remove", mock.Anything, int64(10), int64(99)).Return(false, nil)

	svc := NewClientService(cr, nopActivity{})
	a := ownerAccess(plans.TierCorporate)

	_, err := svc.Get(context.Background(), a, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Remove(context.Background(), a, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
