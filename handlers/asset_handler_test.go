package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swet3114/CampusAssets/models"
)

func strPtr(s string) *string { return &s }

func TestUpdateAssetRequestTrimsFields(t *testing.T) {
	req := updateAssetRequest{
		AssetName: strPtr("  Projector "),
		Status:    strPtr(" active "),
		Location:  strPtr(" Hall A"),
	}
	req.normalize()

	assert.True(t, models.ValidStatus(*req.Status), "padded status passes validation once trimmed")

	update := req.toUpdate()
	assert.Equal(t, "Projector", update["asset_name"])
	assert.Equal(t, "active", update["status"])
	assert.Equal(t, "Hall A", update["location"])
}

func TestUpdateAssetRequestToUpdateSkipsOmitted(t *testing.T) {
	verified := true
	req := updateAssetRequest{
		Status:   strPtr("repair"),
		Verified: &verified,
	}
	req.normalize()

	update := req.toUpdate()
	assert.Len(t, update, 2)
	assert.Equal(t, "repair", update["status"])
	assert.Equal(t, true, update["verified"])

	empty := updateAssetRequest{}
	empty.normalize()
	assert.Empty(t, empty.toUpdate())
}
