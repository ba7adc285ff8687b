//go:build unit

package bidrequest_test

import (
	"testing"
	"time"

	"dealerbid/internal/domain/bidrequest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32Ptr(v int32) *int32 { return &v }

func TestNewVehicle(t *testing.T) {
	tests := []struct {
		name    string
		make    string
		model   string
		year    int
		vin     string
		mileage *int32
		wantErr error
	}{
		{name: "valid", make: "Toyota", model: "Camry", year: 2021, vin: "4T1BF1FK5HU123456", mileage: int32Ptr(42000)},
		{name: "valid without vin", make: "Honda", model: "Civic", year: 2019},
		{name: "missing make", make: "  ", model: "Camry", year: 2021, wantErr: bidrequest.ErrMissingMake},
		{name: "missing model", make: "Toyota", model: "", year: 2021, wantErr: bidrequest.ErrMissingModel},
		{name: "year too old", make: "Ford", model: "Model T", year: 1899, wantErr: bidrequest.ErrInvalidYear},
		{name: "year too far ahead", make: "Tesla", model: "Model 3", year: time.Now().Year() + 2, wantErr: bidrequest.ErrInvalidYear},
		{name: "short vin", make: "Toyota", model: "Camry", year: 2021, vin: "ABC123", wantErr: bidrequest.ErrInvalidVIN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := bidrequest.NewVehicle(tt.make, tt.model, tt.year, tt.vin, tt.mileage)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.year, v.Year())
		})
	}
}

func TestVehicleNormalization(t *testing.T) {
	v, err := bidrequest.NewVehicle(" Toyota ", " Camry ", 2021, "4t1bf1fk5hu123456", nil)
	require.NoError(t, err)

	assert.Equal(t, "Toyota", v.Make())
	assert.Equal(t, "Camry", v.Model())
	assert.Equal(t, "4T1BF1FK5HU123456", v.VIN())
	assert.Equal(t, "2021 Toyota Camry", v.Summary())
}

func TestBidRequestLifecycle(t *testing.T) {
	v, err := bidrequest.NewVehicle("Toyota", "Camry", 2021, "", nil)
	require.NoError(t, err)

	req := bidrequest.NewBidRequest(v, uuid.New())
	assert.Equal(t, bidrequest.StatusPending, req.Status())
	assert.True(t, req.IsOpen())

	require.NoError(t, req.Approve())
	assert.Equal(t, bidrequest.StatusApproved, req.Status())
	assert.False(t, req.IsOpen())

	assert.ErrorIs(t, req.Decline(), bidrequest.ErrAlreadyClosed)
}
