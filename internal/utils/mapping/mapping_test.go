package mapping

import (
	"testing"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceLocationNeedsBothCoordinates(t *testing.T) {
	lat := 5.3
	m := ToModelAttendance(domain.Attendance{AttendanceID: "a1"})
	assert.Nil(t, m.Latitude)

	m.Latitude = &lat
	assert.Nil(t, ToDomainAttendance(m).Location)

	lng := -4.0
	m.Longitude = &lng
	m.Address = "Cocody"
	loc := ToDomainAttendance(m).Location
	require.NotNil(t, loc)
	assert.Equal(t, domain.Location{Latitude: 5.3, Longitude: -4.0, Address: "Cocody"}, *loc)
}

func TestBordereauItemsKeepOrder(t *testing.T) {
	b := domain.Bordereau{
		BordereauID: "b1",
		Status:      domain.BordereauValidated,
		Items: []domain.BordereauItem{
			{ItemID: "i1", Designation: "first", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
			{ItemID: "i2", Designation: "second", Quantity: 3, UnitPrice: decimal.NewFromInt(5)},
		},
	}

	header, items := ToModelBordereau(b)

	assert.Equal(t, int16(2), header.Status)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[1].Position)
	assert.Equal(t, "b1", items[1].BordereauID)
	assert.Equal(t, b, ToDomainBordereau(header, items))
}

func TestDeviceTokenMetadata(t *testing.T) {
	d := domain.DeviceToken{TokenID: "t1", Token: "abc", Metadata: map[string]any{"model": "Pixel"}, LastSeenAt: time.Unix(0, 0).UTC()}

	m, err := ToModelDeviceToken(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"model":"Pixel"}`, string(m.Metadata))
	assert.Equal(t, d, ToDomainDeviceToken(m))

	m.Metadata = []byte("not json")
	assert.Nil(t, ToDomainDeviceToken(m).Metadata)
}
