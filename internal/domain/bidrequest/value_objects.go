package bidrequest

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMissingMake   = errors.New("vehicle make is required")
	ErrMissingModel  = errors.New("vehicle model is required")
	ErrInvalidYear   = errors.New("vehicle year out of range")
	ErrInvalidVIN    = errors.New("vin must be 17 characters")
	ErrInvalidStatus = errors.New("invalid bid request status")
)

const vinLength = 17

// Vehicle is the listing's identifying summary sent to invited buyers.
type Vehicle struct {
	make    string
	model   string
	year    int
	vin     string
	mileage *int32
}

func NewVehicle(makeName, model string, year int, vin string, mileage *int32) (Vehicle, error) {
	makeName = strings.TrimSpace(makeName)
	model = strings.TrimSpace(model)
	vin = strings.ToUpper(strings.TrimSpace(vin))

	if makeName == "" {
		return Vehicle{}, ErrMissingMake
	}
	if model == "" {
		return Vehicle{}, ErrMissingModel
	}
	if year < 1900 || year > time.Now().Year()+1 {
		return Vehicle{}, ErrInvalidYear
	}
	if vin != "" && len(vin) != vinLength {
		return Vehicle{}, ErrInvalidVIN
	}

	return Vehicle{
		make:    makeName,
		model:   model,
		year:    year,
		vin:     vin,
		mileage: mileage,
	}, nil
}

func (v Vehicle) Make() string    { return v.make }
func (v Vehicle) Model() string   { return v.model }
func (v Vehicle) Year() int       { return v.year }
func (v Vehicle) VIN() string     { return v.vin }
func (v Vehicle) Mileage() *int32 { return v.mileage }

// Summary renders the short description embedded in SMS/email invitations.
func (v Vehicle) Summary() string {
	return fmt.Sprintf("%d %s %s", v.year, v.make, v.model)
}
