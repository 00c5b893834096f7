package statuslogrepo

import (
	"context"

	"gorm.io/gorm"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
)

// GormStatusChangeRepository implements StatusChangeRepository using GORM.
type GormStatusChangeRepository struct {
	db *gorm.DB
}

// NewGormStatusChangeRepository creates a new GORM status change repository.
func NewGormStatusChangeRepository(db *gorm.DB) *GormStatusChangeRepository {
	return &GormStatusChangeRepository{db: db}
}

// Add persists the audit records produced by one status transition.
func (r *GormStatusChangeRepository) Add(ctx context.Context, records []order.StatusChange) error {
	if len(records) == 0 {
		return nil
	}

	dtos := make([]StatusChangeDTO, 0, len(records))
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(record))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetAllByOrder retrieves an order's audit trail, oldest first.
func (r *GormStatusChangeRepository) GetAllByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]order.StatusChange, error) {
	var dtos []StatusChangeDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]order.StatusChange, 0, len(dtos))
	for _, dto := range dtos {
		record, restoreErr := toDomain(dto)
		if restoreErr != nil {
			return nil, restoreErr
		}
		records = append(records, record)
	}

	return records, nil
}
