// registry/link.go
package registry

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/swet3114/CampusAssets/models"
)

// qrEditableFields is the whitelist for the scan-and-fill PATCH flow.
var qrEditableFields = map[string]bool{
	"asset_name":            true,
	"category":              true,
	"location":              true,
	"assign_date":           true,
	"status":                true,
	"desc":                  true,
	"verification_date":     true,
	"verified":              true,
	"verified_by":           true,
	"institute":             true,
	"department":            true,
	"assigned_type":         true,
	"assigned_faculty_name": true,
}

// Linker owns the soft reference between QR records and assets: field
// edits, explicit links, merged reads and both cascade-delete directions.
// The two registries share no transaction, so a crash between the steps
// of a cascade can leave one side deleted without the other. That gap is
// inherent to the store contract and is not papered over here.
type Linker struct {
	assets AssetStore
	qr     QrStore
	now    nowFunc
}

func NewLinker(assets AssetStore, qr QrStore) *Linker {
	return &Linker{assets: assets, qr: qr, now: time.Now}
}

// UpdateFields merges whitelisted fields into a QR record. If the caller
// actually filled something in (any non-empty value, or verified supplied
// at all), the record flips to used and linked_at is stamped. That is a
// heuristic, not a flag the caller passes.
func (l *Linker) UpdateFields(ctx context.Context, qrID string, fields map[string]interface{}) (*models.QrRecord, error) {
	update := bson.M{}
	filled := false
	for k, v := range fields {
		if !qrEditableFields[k] {
			continue
		}
		if k == "verified" {
			b, _ := v.(bool)
			update[k] = b
			filled = true
			continue
		}
		s := ""
		if v != nil {
			if str, ok := v.(string); ok {
				s = strings.TrimSpace(str)
			}
		}
		update[k] = s
		if s != "" {
			filled = true
		}
	}
	if len(update) == 0 {
		return nil, validationf("No editable fields supplied")
	}
	if filled {
		update["used"] = true
		update["linked_at"] = l.now().UTC()
	}

	rec, err := l.qr.Update(ctx, qrID, update)
	if err != nil {
		return nil, &StoreError{Op: "qr update", Err: err}
	}
	if rec == nil {
		return nil, &NotFoundError{Resource: "qr record", Key: qrID}
	}
	return rec, nil
}

// LinkAsset sets the soft reference on a QR record. The target asset is
// verified to exist first; the original backend skipped that check and
// could mint dangling references.
func (l *Linker) LinkAsset(ctx context.Context, qrID string, assetID primitive.ObjectID) (*models.QrRecord, error) {
	asset, err := l.assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, &StoreError{Op: "asset lookup", Err: err}
	}
	if asset == nil {
		return nil, &NotFoundError{Resource: "asset", Key: assetID.Hex()}
	}

	rec, err := l.qr.Update(ctx, qrID, bson.M{
		"asset_id":  assetID,
		"used":      true,
		"linked_at": l.now().UTC(),
	})
	if err != nil {
		return nil, &StoreError{Op: "qr link update", Err: err}
	}
	if rec == nil {
		return nil, &NotFoundError{Resource: "qr record", Key: qrID}
	}
	return rec, nil
}

// Resolve returns the record with display fields sourced from the linked
// asset when asset_id is set. A dangling reference (asset deleted out from
// under the link) falls back to the mirrored copies.
func (l *Linker) Resolve(ctx context.Context, rec *models.QrRecord) (*models.QrRecord, error) {
	if rec == nil || rec.AssetID == nil {
		return rec, nil
	}
	asset, err := l.assets.FindByID(ctx, *rec.AssetID)
	if err != nil {
		return nil, &StoreError{Op: "linked asset lookup", Err: err}
	}
	if asset == nil {
		return rec, nil
	}
	merged := *rec
	merged.AssetName = asset.AssetName
	merged.Category = asset.Category
	merged.Location = asset.Location
	merged.AssignDate = asset.AssignDate
	merged.Status = asset.Status
	merged.Desc = asset.Desc
	merged.VerificationDate = asset.VerificationDate
	merged.Verified = asset.Verified
	merged.VerifiedBy = asset.VerifiedBy
	merged.AssignedType = asset.AssignedType
	merged.AssignedFacultyName = asset.AssignedFacultyName
	return &merged, nil
}

// DeleteByQrID removes a QR record and, when it was linked, the one asset
// it pointed at. Returns (qr deleted, assets deleted), each 0 or 1.
func (l *Linker) DeleteByQrID(ctx context.Context, qrID string) (int64, int64, error) {
	rec, err := l.qr.FindByQrID(ctx, qrID)
	if err != nil {
		return 0, 0, &StoreError{Op: "qr lookup", Err: err}
	}
	if rec == nil {
		return 0, 0, &NotFoundError{Resource: "qr record", Key: qrID}
	}

	qrDeleted, err := l.qr.DeleteByQrID(ctx, qrID)
	if err != nil {
		return 0, 0, &StoreError{Op: "qr delete", Err: err}
	}

	var assetsDeleted int64
	if rec.AssetID != nil {
		assetsDeleted, err = l.assets.DeleteByID(ctx, *rec.AssetID)
		if err != nil {
			return qrDeleted, 0, &StoreError{Op: "linked asset delete", Err: err}
		}
	}
	return qrDeleted, assetsDeleted, nil
}

// DeleteByAssetID removes an asset and every QR record referencing it.
// Returns (assets deleted, qr deleted); the cascade is one-to-many.
func (l *Linker) DeleteByAssetID(ctx context.Context, id primitive.ObjectID) (int64, int64, error) {
	asset, err := l.assets.FindByID(ctx, id)
	if err != nil {
		return 0, 0, &StoreError{Op: "asset lookup", Err: err}
	}
	if asset == nil {
		return 0, 0, &NotFoundError{Resource: "asset", Key: id.Hex()}
	}
	return l.deleteAssetCascade(ctx, asset)
}

// DeleteByAssetSerial is DeleteByAssetID keyed by the global serial.
func (l *Linker) DeleteByAssetSerial(ctx context.Context, serial int64) (int64, int64, error) {
	asset, err := l.assets.FindBySerial(ctx, serial)
	if err != nil {
		return 0, 0, &StoreError{Op: "asset lookup by serial", Err: err}
	}
	if asset == nil {
		return 0, 0, &NotFoundError{Resource: "asset", Key: "serial " + strconv.FormatInt(serial, 10)}
	}
	return l.deleteAssetCascade(ctx, asset)
}

func (l *Linker) deleteAssetCascade(ctx context.Context, asset *models.Asset) (int64, int64, error) {
	assetDeleted, err := l.assets.DeleteByID(ctx, asset.ID)
	if err != nil {
		return 0, 0, &StoreError{Op: "asset delete", Err: err}
	}
	qrDeleted, err := l.qr.DeleteByAssetID(ctx, asset.ID)
	if err != nil {
		return assetDeleted, 0, &StoreError{Op: "linked qr delete", Err: err}
	}
	return assetDeleted, qrDeleted, nil
}
