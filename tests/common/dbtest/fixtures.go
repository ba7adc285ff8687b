package dbtest

import (
	"context"
	"time"

	"dealerbid/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Well-known fixture accounts shared by the e2e suites.
const (
	SellerEmail = "seller@example.com"
	BuyerEmail  = "buyer@example.com"
	AdminEmail  = "admin@example.com"
	Password    = "test-password-123"
)

var (
	SellerID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	BuyerID  = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	AdminID  = uuid.MustParse("00000000-0000-0000-0000-000000000003")
)

// SeedReferenceData inserts the baseline accounts every e2e test relies on.
func SeedReferenceData(pool *pgxpool.Pool) error {
	hash, err := password.HashPassword(Password)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows := []struct {
		id         uuid.UUID
		email      string
		role       string
		dealership string
		phone      *string
	}{
		{SellerID, SellerEmail, "seller", "Sunrise Motors", nil},
		{BuyerID, BuyerEmail, "buyer", "Hilltop Auto", strPtr("+15550100001")},
		{AdminID, AdminEmail, "admin", "Marketplace Ops", nil},
	}

	for _, r := range rows {
		_, err := pool.Exec(ctx, `
			INSERT INTO users (id, email, password_hash, role, dealership, phone, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, true)
			ON CONFLICT (id) DO NOTHING`,
			r.id, r.email, hash, r.role, r.dealership, r.phone)
		if err != nil {
			return err
		}
	}

	return nil
}

func strPtr(s string) *string { return &s }
