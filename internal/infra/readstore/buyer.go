package readstore

import (
	"context"

	"dealerbid/internal/infra"
	"dealerbid/internal/infra/db"
	"dealerbid/internal/usecase/queries"
)

type BuyerReadStore struct {
	db db.DBTX
}

func NewBuyerReadStore(dbtx db.DBTX) *BuyerReadStore {
	return &BuyerReadStore{db: dbtx}
}

func (r *BuyerReadStore) ListActiveBuyers(ctx context.Context) ([]*queries.BuyerListItem, error) {
	query := `
		SELECT id, dealership, email, phone
		FROM users
		WHERE role = 'buyer' AND is_active = true
		ORDER BY dealership, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list buyers", err)
	}
	defer rows.Close()

	result := make([]*queries.BuyerListItem, 0)
	for rows.Next() {
		item := &queries.BuyerListItem{}
		if err := rows.Scan(&item.ID, &item.Dealership, &item.Email, &item.Phone); err != nil {
			return nil, infra.WrapRepoErr("failed to scan buyer row", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate buyer rows", err)
	}

	return result, nil
}
