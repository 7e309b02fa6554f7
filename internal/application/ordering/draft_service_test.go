package ordering

import (
	"context"
	"testing"
	"time"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/ordering"
	"github.com/fieldsales/backend/internal/domain/partner"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func catalogProduct(t *testing.T, code string, unitPrice, piecesPerBox, minOrderUnit, supply, dc int64) catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(code, "Product "+code, decimal.NewFromInt(unitPrice), piecesPerBox)
	require.NoError(t, err)
	require.NoError(t, p.UpdatePackaging(piecesPerBox, minOrderUnit))
	require.NoError(t, p.UpdateAvailability(supply, dc))
	return *p
}

func activeClient(t *testing.T) *partner.Client {
	t.Helper()
	c, err := partner.NewClient("CL-001", "Riverside Mart")
	require.NoError(t, err)
	return c
}

func newDraftServiceFixture() (*DraftService, *MockDraftRepository, *MockProductRepository, *MockClientRepository) {
	draftRepo := new(MockDraftRepository)
	productRepo := new(MockProductRepository)
	clientRepo := new(MockClientRepository)
	return NewDraftService(draftRepo, productRepo, clientRepo), draftRepo, productRepo, clientRepo
}

func TestDraftServiceGetMyDraft(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("absent draft is nil, not an error", func(t *testing.T) {
		svc, draftRepo, _, _ := newDraftServiceFixture()
		draftRepo.On("FindByOwner", ctx, ownerID).Return(nil, shared.ErrNotFound)

		resp, err := svc.GetMyDraft(ctx, ownerID)
		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("returns the owner's draft", func(t *testing.T) {
		svc, draftRepo, _, _ := newDraftServiceFixture()
		draft, err := ordering.NewOrderDraft(ownerID, uuid.New(), time.Now().AddDate(0, 0, 1))
		require.NoError(t, err)
		product := catalogProduct(t, "SKU-001", 500, 10, 0, 1000, 1000)
		_, err = draft.AddItem(&product, 2, 3)
		require.NoError(t, err)
		draftRepo.On("FindByOwner", ctx, ownerID).Return(draft, nil)

		resp, err := svc.GetMyDraft(ctx, ownerID)
		require.NoError(t, err)
		require.NotNil(t, resp)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, int64(23), resp.Items[0].TotalPieces)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(11500)))
	})
}

func TestDraftServiceSaveDraft(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("replaces the draft wholesale", func(t *testing.T) {
		svc, draftRepo, productRepo, clientRepo := newDraftServiceFixture()
		client := activeClient(t)
		clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)
		productRepo.On("FindByCodes", ctx, []string{"SKU-001", "SKU-002"}).Return([]catalog.Product{
			catalogProduct(t, "SKU-001", 500, 10, 0, 1000, 1000),
			catalogProduct(t, "SKU-002", 120, 24, 0, 1000, 1000),
		}, nil)
		draftRepo.On("Replace", ctx, mock.AnythingOfType("*ordering.OrderDraft")).Return(nil)

		resp, err := svc.SaveDraft(ctx, ownerID, SaveDraftRequest{
			ClientID:     client.ID,
			DeliveryDate: tomorrow(),
			Items: []ItemInput{
				{ProductCode: "SKU-001", BoxQuantity: 2, PieceQuantity: 3},
				{ProductCode: "SKU-002", BoxQuantity: 1},
			},
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 2)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(11500+2880)))
		draftRepo.AssertCalled(t, "Replace", ctx, mock.AnythingOfType("*ordering.OrderDraft"))
	})

	t.Run("rejects a delivery date that is not after today", func(t *testing.T) {
		svc, draftRepo, _, _ := newDraftServiceFixture()

		_, err := svc.SaveDraft(ctx, ownerID, SaveDraftRequest{
			ClientID:     uuid.New(),
			DeliveryDate: time.Now().Format("2006-01-02"),
			Items:        []ItemInput{{ProductCode: "SKU-001", BoxQuantity: 1}},
		})
		assert.ErrorIs(t, err, ErrInvalidDeliveryDate)
		draftRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})

	t.Run("rejects a malformed delivery date", func(t *testing.T) {
		svc, _, _, _ := newDraftServiceFixture()

		_, err := svc.SaveDraft(ctx, ownerID, SaveDraftRequest{
			ClientID:     uuid.New(),
			DeliveryDate: "next tuesday",
			Items:        []ItemInput{{ProductCode: "SKU-001", BoxQuantity: 1}},
		})
		assert.ErrorIs(t, err, ErrInvalidDeliveryDate)
	})

	t.Run("rejects an unknown client", func(t *testing.T) {
		svc, draftRepo, _, clientRepo := newDraftServiceFixture()
		clientID := uuid.New()
		clientRepo.On("FindByID", ctx, clientID).Return(nil, shared.ErrNotFound)

		_, err := svc.SaveDraft(ctx, ownerID, SaveDraftRequest{
			ClientID:     clientID,
			DeliveryDate: tomorrow(),
			Items:        []ItemInput{{ProductCode: "SKU-001", BoxQuantity: 1}},
		})
		assert.ErrorIs(t, err, ErrClientNotFound)
		draftRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})

	t.Run("names the first missing product in request order", func(t *testing.T) {
		svc, draftRepo, productRepo, clientRepo := newDraftServiceFixture()
		client := activeClient(t)
		clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)
		// Only the second requested code exists
		productRepo.On("FindByCodes", ctx, []string{"SKU-404", "SKU-002"}).Return([]catalog.Product{
			catalogProduct(t, "SKU-002", 120, 24, 0, 1000, 1000),
		}, nil)

		_, err := svc.SaveDraft(ctx, ownerID, SaveDraftRequest{
			ClientID:     client.ID,
			DeliveryDate: tomorrow(),
			Items: []ItemInput{
				{ProductCode: "SKU-404", BoxQuantity: 1},
				{ProductCode: "SKU-002", BoxQuantity: 1},
			},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
		assert.Contains(t, domainErr.Message, "SKU-404")
		draftRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})
}

func TestDraftServiceDeleteDraft(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("deletes the draft", func(t *testing.T) {
		svc, draftRepo, _, _ := newDraftServiceFixture()
		draftRepo.On("DeleteByOwner", ctx, ownerID).Return(nil)

		require.NoError(t, svc.DeleteDraft(ctx, ownerID))
	})

	t.Run("reports a missing draft", func(t *testing.T) {
		svc, draftRepo, _, _ := newDraftServiceFixture()
		draftRepo.On("DeleteByOwner", ctx, ownerID).Return(shared.ErrNotFound)

		err := svc.DeleteDraft(ctx, ownerID)
		assert.ErrorIs(t, err, ErrDraftNotFound)
	})
}
