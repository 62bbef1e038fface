package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidings-dev/tidings/internal/models"
)

func ptr[T any](v T) *T {
	return &v
}

func validAnnouncement() models.AnnouncementPayload {
	return models.AnnouncementPayload{
		FirstName: "Maria",
		LastName:  "Virtanen",
		Obituary:  "Rest in peace, dear mother.",
		Type:      ptr(models.TypeDeath),
	}
}

func requireFieldError(t *testing.T, err error) *Error {
	t.Helper()
	require.Error(t, err)

	var fieldErr *Error
	require.ErrorAs(t, err, &fieldErr)
	return fieldErr
}

func TestValidateAcceptsMinimalAnnouncement(t *testing.T) {
	assert.NoError(t, Validate(validAnnouncement()))
}

func TestValidateReportsFirstFailingField(t *testing.T) {
	payload := validAnnouncement()
	payload.FirstName = "Al"
	payload.Obituary = "short"

	fieldErr := requireFieldError(t, Validate(payload))
	assert.Equal(t, "firstName", fieldErr.Field)
	assert.Equal(t, `"firstName" length must be at least 3 characters long`, fieldErr.Message)
}

func TestValidateMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *models.AnnouncementPayload)
		message string
	}{
		{
			name:    "missing required",
			mutate:  func(p *models.AnnouncementPayload) { p.LastName = "" },
			message: `"lastName" is required`,
		},
		{
			name:    "too long",
			mutate:  func(p *models.AnnouncementPayload) { p.FirstName = strings.Repeat("a", 51) },
			message: `"firstName" length must be less than or equal to 50 characters long`,
		},
		{
			name:    "enum",
			mutate:  func(p *models.AnnouncementPayload) { p.Type = ptr("funeral") },
			message: `"type" must be one of [birth, death, wedding]`,
		},
		{
			name:    "exact length",
			mutate:  func(p *models.AnnouncementPayload) { p.ServiceTime = ptr("12:0") },
			message: `"serviceTime" length must be 5 characters long`,
		},
		{
			name: "nested relative",
			mutate: func(p *models.AnnouncementPayload) {
				p.Relatives = []models.RelativePayload{{Name: "Jussi"}, {Name: ""}}
			},
			message: `"relatives[1].name" is required`,
		},
		{
			name: "relative children enum",
			mutate: func(p *models.AnnouncementPayload) {
				p.Relatives = []models.RelativePayload{{Name: "Jussi", Children: ptr("maybe")}}
			},
			message: `"relatives[0].children" must be one of [yes, no]`,
		},
		{
			name:    "non profit id",
			mutate:  func(p *models.AnnouncementPayload) { p.NonProfits = []string{"not-an-id"} },
			message: `"nonProfits[0]" must be a valid id`,
		},
		{
			name:    "empty family role",
			mutate:  func(p *models.AnnouncementPayload) { p.FamilyRoles = []string{"mother", ""} },
			message: `"familyRoles[1]" is not allowed to be empty`,
		},
		{
			name:    "empty place",
			mutate:  func(p *models.AnnouncementPayload) { p.PlaceOfBirth = ptr("") },
			message: `"placeOfBirth" is not allowed to be empty`,
		},
		{
			name:    "empty special thanks",
			mutate:  func(p *models.AnnouncementPayload) { p.SpecialThanks = ptr("") },
			message: `"specialThanks" is not allowed to be empty`,
		},
		{
			name:    "empty marital status",
			mutate:  func(p *models.AnnouncementPayload) { p.MaritalStatus = ptr("") },
			message: `"maritalStatus" is not allowed to be empty`,
		},
		{
			name:    "empty type",
			mutate:  func(p *models.AnnouncementPayload) { p.Type = ptr("") },
			message: `"type" is not allowed to be empty`,
		},
		{
			name:    "empty date",
			mutate:  func(p *models.AnnouncementPayload) { p.DateOfDeath = ptr("") },
			message: `"dateOfDeath" is not allowed to be empty`,
		},
		{
			name: "empty relative children",
			mutate: func(p *models.AnnouncementPayload) {
				p.Relatives = []models.RelativePayload{{Name: "Jussi", Children: ptr("")}}
			},
			message: `"relatives[0].children" is not allowed to be empty`,
		},
		{
			name:    "short place",
			mutate:  func(p *models.AnnouncementPayload) { p.FuneralPlace = ptr("ab") },
			message: `"funeralPlace" length must be at least 3 characters long`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validAnnouncement()
			tt.mutate(&payload)

			fieldErr := requireFieldError(t, Validate(payload))
			assert.Equal(t, tt.message, fieldErr.Message)
		})
	}
}

func TestValidateOptionalFieldsMayBeOmitted(t *testing.T) {
	payload := validAnnouncement()
	payload.PartnerName = ""
	payload.MaritalStatus = nil
	payload.PlaceOfBirth = nil
	payload.NonProfits = []string{"64b7f0c2a1b2c3d4e5f60718"}
	payload.Relatives = []models.RelativePayload{{Name: "Jussi", PartnerName: "", Children: ptr("yes")}}

	assert.NoError(t, Validate(payload))
}

func TestValidateDecodedEmptyStrings(t *testing.T) {
	var payload models.AnnouncementPayload
	require.NoError(t, json.Unmarshal([]byte(`{
		"firstName": "Maria",
		"lastName": "Virtanen",
		"obituary": "Rest in peace, dear mother.",
		"partnerName": "",
		"relatives": [{"name": "Jussi", "partnerName": ""}]
	}`), &payload))
	assert.NoError(t, Validate(payload))

	require.NoError(t, json.Unmarshal([]byte(`{"servicePlace": ""}`), &payload))
	fieldErr := requireFieldError(t, Validate(payload))
	assert.Equal(t, `"servicePlace" is not allowed to be empty`, fieldErr.Message)
}

func TestValidateCredentials(t *testing.T) {
	err := Validate(models.Credentials{Email: "not-an-email", Password: "secret"})

	fieldErr := requireFieldError(t, err)
	assert.Equal(t, "email", fieldErr.Field)
	assert.Equal(t, `"email" must be a valid email`, fieldErr.Message)
}

func TestFromDecodeError(t *testing.T) {
	var payload models.AnnouncementPayload
	err := json.Unmarshal([]byte(`{"city":"Helsinki"}`), &payload)
	require.Error(t, err)

	fieldErr := FromDecodeError(err)
	require.NotNil(t, fieldErr)
	assert.Equal(t, `"city" must be a number`, fieldErr.Message)

	assert.Nil(t, FromDecodeError(json.Unmarshal([]byte(`{`), &payload)))
}
