package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckTrip(t *testing.T) {
	base := ControlInput{
		DepartureDate: "2023-01-30",
		DepartureKm:   1000,
		ReturnDate:    "2023-01-31",
		ReturnKm:      1200,
	}

	assert.NoError(t, base.CheckTrip())

	sameDay := base
	sameDay.ReturnDate = sameDay.DepartureDate
	sameDay.ReturnKm = sameDay.DepartureKm
	assert.NoError(t, sameDay.CheckTrip())

	lowerKm := base
	lowerKm.ReturnKm = 999
	assert.ErrorIs(t, lowerKm.CheckTrip(), ErrReturnKmBeforeDeparture)

	earlierDate := base
	earlierDate.ReturnDate = "2023-01-29"
	assert.ErrorIs(t, earlierDate.CheckTrip(), ErrReturnDateBeforeDeparture)

	badDate := base
	badDate.DepartureDate = "30/01/2023"
	assert.Error(t, badDate.CheckTrip())
}

func TestCheckKmRemaining(t *testing.T) {
	vehicle := Vehicle{ID: 1, OilChangeKm: 10000}

	left := 150
	withLeft := CheckKm{KmLeft: &left, TotalKm: 9850}
	assert.Equal(t, 150, withLeft.Remaining(vehicle))
	assert.False(t, withLeft.Overdue(vehicle))
	assert.False(t, withLeft.NearOilChange(vehicle))

	near := 99
	assert.True(t, CheckKm{KmLeft: &near}.NearOilChange(vehicle))

	exceeded := CheckKm{TotalKm: 10250}
	assert.Equal(t, -250, exceeded.Remaining(vehicle))
	assert.True(t, exceeded.Overdue(vehicle))
	assert.True(t, exceeded.NearOilChange(vehicle))
}
