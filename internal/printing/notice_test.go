package printing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidings-dev/tidings/internal/models"
)

func TestRenderAnnouncement(t *testing.T) {
	closest := true
	a := models.Announcement{
		ID:                  "64b7f0c2a1b2c3d4e5f60718",
		FirstName:           "Mäiju",
		LastName:            "Virtanen",
		Obituary:            strings.Repeat("A long and happy life. ", 40),
		Type:                models.TypeDeath,
		DateOfBirth:         "01.02.1940",
		DateOfDeath:         "03.04.2024",
		ServicePlace:        "Kallio Church",
		ClosestFamilyCircle: &closest,
		Relatives:           []models.Relative{{Name: "Jussi", PartnerName: "Liisa", Children: "yes"}},
		SpecialThanks:       "Thank you to the hospice staff.",
	}

	out, err := RenderAnnouncement(&a, "Helsinki")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 1000)
}

func TestTitleByType(t *testing.T) {
	assert.Equal(t, "In Loving Memory", title(models.TypeDeath))
	assert.Equal(t, "Birth Announcement", title(models.TypeBirth))
	assert.Equal(t, "Wedding Announcement", title(models.TypeWedding))
	assert.Equal(t, "Announcement", title(""))
}
