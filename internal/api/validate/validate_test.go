package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jack-WebDev/ahsa/internal/api/dto"
	"github.com/Jack-WebDev/ahsa/internal/api/validate"
	"github.com/Jack-WebDev/ahsa/pkg/util"
)

func validRegisterRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:        "Jack",
		Surname:     "Mokoena",
		Email:       "jack@example.com",
		Password:    "secret",
		Gender:      "Male",
		Title:       "Mr",
		Ethnicity:   "Black",
		Province:    "Gauteng",
		DateOfBirth: "1990-04-12",
		IDNumber:    "9004125009087",
		PhoneNumber: "0821234567",
		Address:     "12 Main Road, Johannesburg",
	}
}

func TestStructAcceptsValidRequest(t *testing.T) {
	assert.NoError(t, validate.Struct(validRegisterRequest()))
}

func TestStructFlattensFieldErrors(t *testing.T) {
	req := validRegisterRequest()
	req.Email = "not-an-email"
	req.Password = "abc"
	req.IDNumber = "123"

	err := validate.Struct(req)
	require.Error(t, err)

	domainErr := util.ToDomainError(err)
	assert.Equal(t, util.CodeValidation, domainErr.Code)
	assert.Contains(t, domainErr.Fields, "email")
	assert.Contains(t, domainErr.Fields, "password")
	assert.Contains(t, domainErr.Fields, "idNumber")
	assert.NotContains(t, domainErr.Fields, "name")
}

func TestStructUsesJSONFieldNames(t *testing.T) {
	err := validate.Struct(dto.LoginRequest{})
	require.Error(t, err)

	fields := util.ToDomainError(err).Fields
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Equal(t, []string{"is required"}, fields["password"])
}

func TestStructRejectsBadEnumAndDate(t *testing.T) {
	req := validRegisterRequest()
	req.Gender = "Unspecified"
	req.DateOfBirth = "12/04/1990"

	err := validate.Struct(req)
	require.Error(t, err)

	fields := util.ToDomainError(err).Fields
	assert.Contains(t, fields, "gender")
	assert.Contains(t, fields, "dateOfBirth")
}
