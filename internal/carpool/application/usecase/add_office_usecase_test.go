package usecase

import (
	"context"
	"testing"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOffice_CreatesGeocodedOffice(t *testing.T) {
	offices := newFakeOfficeRepo()
	geocoder := newFakeGeocoder()
	geocoder.set("1 main plaza", 52.52, 13.405)
	svc := NewAddOfficeService(offices, geocoder, newFakeActivity(), testLogger())

	res, err := svc.Execute(context.Background(), in.AddOfficeInput{Name: "HQ", Address: "1 main plaza"})
	require.NoError(t, err)
	assert.Equal(t, "HQ", res.Office.Name)
	assert.Equal(t, 52.52, res.Office.Latitude)
	assert.NotEmpty(t, res.Office.ID)
}

func TestAddOffice_DuplicateName(t *testing.T) {
	offices := newFakeOfficeRepo()
	seedOffice(offices, "HQ", 52.52, 13.405)
	geocoder := newFakeGeocoder()
	geocoder.set("1 main plaza", 52.52, 13.405)
	svc := NewAddOfficeService(offices, geocoder, newFakeActivity(), testLogger())

	_, err := svc.Execute(context.Background(), in.AddOfficeInput{Name: "HQ", Address: "1 main plaza"})
	require.ErrorIs(t, err, domain.ErrDuplicateOffice)
}

func TestAddOffice_AddressNotFound(t *testing.T) {
	svc := NewAddOfficeService(newFakeOfficeRepo(), newFakeGeocoder(), newFakeActivity(), testLogger())

	_, err := svc.Execute(context.Background(), in.AddOfficeInput{Name: "HQ", Address: "nowhere"})
	require.ErrorIs(t, err, domain.ErrAddressNotFound)
}
