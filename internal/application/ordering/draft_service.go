package ordering

import (
	"context"
	"errors"
	"time"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/ordering"
	"github.com/fieldsales/backend/internal/domain/partner"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DraftService handles the owner's working draft order.
// Saving is replace-not-merge: the incoming draft wholly supersedes
// whatever the owner had before.
type DraftService struct {
	draftRepo   ordering.DraftRepository
	productRepo catalog.ProductRepository
	clientRepo  partner.ClientRepository
}

// NewDraftService creates a new DraftService
func NewDraftService(
	draftRepo ordering.DraftRepository,
	productRepo catalog.ProductRepository,
	clientRepo partner.ClientRepository,
) *DraftService {
	return &DraftService{
		draftRepo:   draftRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
	}
}

// GetMyDraft returns the owner's draft, or (nil, nil) when none exists.
// Having no draft is a normal state, not an error.
func (s *DraftService) GetMyDraft(ctx context.Context, ownerID uuid.UUID) (*DraftResponse, error) {
	draft, err := s.draftRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	response := ToDraftResponse(draft)
	return &response, nil
}

// SaveDraft validates references and replaces the owner's draft
func (s *DraftService) SaveDraft(ctx context.Context, ownerID uuid.UUID, req SaveDraftRequest) (*DraftResponse, error) {
	deliveryDate, err := parseDeliveryDate(req.DeliveryDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.findClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	products, err := resolveProducts(ctx, s.productRepo, req.Items)
	if err != nil {
		return nil, err
	}

	draft, err := ordering.NewOrderDraft(ownerID, req.ClientID, deliveryDate)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if _, err := draft.AddItem(products[item.ProductCode], item.BoxQuantity, item.PieceQuantity); err != nil {
			return nil, err
		}
	}

	if err := s.draftRepo.Replace(ctx, draft); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// DeleteDraft removes the owner's draft
func (s *DraftService) DeleteDraft(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.draftRepo.DeleteByOwner(ctx, ownerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrDraftNotFound
		}
		return err
	}
	return nil
}

func (s *DraftService) findClient(ctx context.Context, clientID uuid.UUID) (*partner.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// parseDeliveryDate parses a YYYY-MM-DD date and requires it to be
// strictly after today
func parseDeliveryDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDeliveryDate
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if !date.After(today) {
		return time.Time{}, ErrInvalidDeliveryDate
	}
	return date, nil
}

// resolveProducts loads every referenced product in one batch lookup.
// The first code without a catalog entry, in request order, fails the
// whole call.
func resolveProducts(ctx context.Context, repo catalog.ProductRepository, items []ItemInput) (map[string]*catalog.Product, error) {
	codes := make([]string, len(items))
	for i, item := range items {
		codes[i] = item.ProductCode
	}

	found, err := repo.FindByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	products := make(map[string]*catalog.Product, len(found))
	for i := range found {
		products[found[i].Code] = &found[i]
	}

	for _, item := range items {
		if products[item.ProductCode] == nil {
			return nil, NewProductNotFoundError(item.ProductCode)
		}
	}

	return products, nil
}
