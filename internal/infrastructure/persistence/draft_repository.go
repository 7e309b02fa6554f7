package persistence

import (
	"context"
	"errors"

	"github.com/fieldsales/backend/internal/domain/ordering"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDraftRepository implements DraftRepository using GORM
type GormDraftRepository struct {
	db *gorm.DB
}

// NewGormDraftRepository creates a new GormDraftRepository
func NewGormDraftRepository(db *gorm.DB) *GormDraftRepository {
	return &GormDraftRepository{db: db}
}

// FindByOwner finds the owner's draft with its items
func (r *GormDraftRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*ordering.OrderDraft, error) {
	var draft ordering.OrderDraft
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&draft).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("draft_id = ?", draft.ID).
		Order("created_at ASC").
		Find(&draft.Items).Error; err != nil {
		return nil, err
	}

	return &draft, nil
}

// Replace saves the draft, removing any previous draft the owner had.
// The delete and insert run in one transaction so a concurrent reader
// never observes two drafts (or none) for the owner.
func (r *GormDraftRepository) Replace(ctx context.Context, draft *ordering.OrderDraft) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var previous ordering.OrderDraft
		err := tx.Where("owner_id = ?", draft.OwnerID).First(&previous).Error
		switch {
		case err == nil:
			if err := tx.Where("draft_id = ?", previous.ID).
				Delete(&ordering.DraftItem{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&ordering.OrderDraft{}, "id = ?", previous.ID).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Nothing to replace
		default:
			return err
		}

		if err := tx.Create(draft).Error; err != nil {
			return err
		}
		for i := range draft.Items {
			draft.Items[i].DraftID = draft.ID
			if err := tx.Create(&draft.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByOwner removes the owner's draft and its items
func (r *GormDraftRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var draft ordering.OrderDraft
		if err := tx.Where("owner_id = ?", ownerID).First(&draft).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Where("draft_id = ?", draft.ID).
			Delete(&ordering.DraftItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ordering.OrderDraft{}, "id = ?", draft.ID).Error
	})
}

// Ensure GormDraftRepository implements DraftRepository
var _ ordering.DraftRepository = (*GormDraftRepository)(nil)
