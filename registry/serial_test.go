package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swet3114/CampusAssets/models"
)

func TestInstituteSerialPrefix(t *testing.T) {
	assert.Equal(t, "U", InstituteSerialPrefix("UVPCE"))
	assert.Equal(t, "U", InstituteSerialPrefix("uvpce"))
	assert.Equal(t, "B", InstituteSerialPrefix("BSPP"))
	assert.Equal(t, "X", InstituteSerialPrefix("XYZ"))
	assert.Equal(t, "G", InstituteSerialPrefix("GCET"))
	assert.Equal(t, "X", InstituteSerialPrefix(""))
	assert.Equal(t, "X", InstituteSerialPrefix("   "))
	assert.Equal(t, "Ö", InstituteSerialPrefix("ÖZU"), "first rune, not first byte")
	assert.Equal(t, "Ö", InstituteSerialPrefix("özu"))
}

func TestNextAssetSerialEmpty(t *testing.T) {
	assets := newMemAssetStore()
	next, err := NextAssetSerial(context.Background(), assets)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}

func TestNextAssetSerialAfterInsert(t *testing.T) {
	assets := newMemAssetStore()
	ctx := context.Background()

	err := assets.InsertBatch(ctx, []models.Asset{
		{SerialNo: 1, RegistrationNumber: "A/20240101000000/00001"},
		{SerialNo: 7, RegistrationNumber: "A/20240101000000/00002"},
		{SerialNo: 3, RegistrationNumber: "A/20240101000000/00003"},
	})
	require.NoError(t, err)

	next, err := NextAssetSerial(ctx, assets)
	require.NoError(t, err)
	assert.Equal(t, int64(8), next, "next serial is always max+1")
}

func TestNextInstituteSerialEmpty(t *testing.T) {
	qr := newMemQrStore()
	serial, err := NextInstituteSerial(context.Background(), qr, "UVPCE")
	require.NoError(t, err)
	assert.Equal(t, "U01", serial)
}

func TestNextInstituteSerialProbesPastMax(t *testing.T) {
	qr := newMemQrStore()
	ctx := context.Background()

	for _, s := range []string{"U01", "U02", "U03"} {
		require.NoError(t, qr.Insert(ctx, &models.QrRecord{
			QrID: "UVPCE/IT/01012024000000/" + s, SerialNo: s, Institute: "UVPCE",
		}))
	}

	serial, err := NextInstituteSerial(ctx, qr, "UVPCE")
	require.NoError(t, err)
	assert.Equal(t, "U04", serial)
}

func TestNextInstituteSerialIgnoresGapsBelowMax(t *testing.T) {
	qr := newMemQrStore()
	ctx := context.Background()

	// U02 was deleted; the allocator seeds from the max, it does not
	// reclaim holes below it.
	for _, s := range []string{"U01", "U03"} {
		require.NoError(t, qr.Insert(ctx, &models.QrRecord{
			QrID: "UVPCE/IT/01012024000000/" + s, SerialNo: s, Institute: "UVPCE",
		}))
	}

	serial, err := NextInstituteSerial(ctx, qr, "UVPCE")
	require.NoError(t, err)
	assert.Equal(t, "U04", serial)
}

func TestNextInstituteSerialProbesOverTakenSlots(t *testing.T) {
	qr := newMemQrStore()
	ctx := context.Background()

	// Max matching serial is U05 but U06 and U07 are also taken (e.g.
	// raced in by a concurrent batch); the probe walks past them.
	for _, s := range []string{"U05", "U06", "U07"} {
		require.NoError(t, qr.Insert(ctx, &models.QrRecord{
			QrID: "UVPCE/IT/01012024000000/" + s, SerialNo: s, Institute: "UVPCE",
		}))
	}

	serial, err := NextInstituteSerial(ctx, qr, "UVPCE")
	require.NoError(t, err)
	assert.Equal(t, "U08", serial)
}

func TestNextInstituteSerialPerInstitute(t *testing.T) {
	qr := newMemQrStore()
	ctx := context.Background()

	require.NoError(t, qr.Insert(ctx, &models.QrRecord{
		QrID: "UVPCE/IT/01012024000000/U01", SerialNo: "U01", Institute: "UVPCE",
	}))

	serial, err := NextInstituteSerial(ctx, qr, "BSPP")
	require.NoError(t, err)
	assert.Equal(t, "B01", serial, "institutes have independent serial spaces")
}

func TestNextInstituteSerialGrowsPast99(t *testing.T) {
	qr := newMemQrStore()
	ctx := context.Background()

	require.NoError(t, qr.Insert(ctx, &models.QrRecord{
		QrID: "UVPCE/IT/01012024000000/U99", SerialNo: "U99", Institute: "UVPCE",
	}))

	serial, err := NextInstituteSerial(ctx, qr, "UVPCE")
	require.NoError(t, err)
	assert.Equal(t, "U100", serial, "width grows, no re-padding")

	require.NoError(t, qr.Insert(ctx, &models.QrRecord{
		QrID: "UVPCE/IT/01012024000000/U100", SerialNo: "U100", Institute: "UVPCE",
	}))
	serial, err = NextInstituteSerial(ctx, qr, "UVPCE")
	require.NoError(t, err)
	assert.Equal(t, "U101", serial)
}
