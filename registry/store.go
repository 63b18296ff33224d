// registry/store.go
package registry

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/swet3114/CampusAssets/models"
)

// AssetStore is the slice of the document store the allocators and the
// link manager need for assets. Implementations must return
// ErrDuplicateKey (possibly wrapped) on a unique-index violation.
type AssetStore interface {
	// MaxSerial returns the highest serial_no in the collection, 0 when
	// the collection is empty.
	MaxSerial(ctx context.Context) (int64, error)

	// InsertBatch inserts all documents in order. The whole insert fails
	// on the first conflict; nothing is rolled back by the store.
	InsertBatch(ctx context.Context, assets []models.Asset) error

	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error)
	FindBySerial(ctx context.Context, serial int64) (*models.Asset, error)
	FindByRegistration(ctx context.Context, reg string) (*models.Asset, error)
	List(ctx context.Context) ([]models.Asset, error)

	// Update applies a $set-style partial update and returns the updated
	// document, or nil when no document matched.
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Asset, error)

	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// QrFilter narrows List queries. Nil Used means "either".
type QrFilter struct {
	Institute  string
	Department string
	Used       *bool
	Page       int
	Size       int
}

// QrStore is the QR-registry side of the document store.
type QrStore interface {
	// MaxSerialFor returns the lexicographically greatest serial_no for
	// the institute matching prefix followed by two or more digits, or
	// "" when none exists.
	MaxSerialFor(ctx context.Context, institute, prefix string) (string, error)

	// SerialExists reports whether (serial_no, institute) is taken.
	SerialExists(ctx context.Context, institute, serial string) (bool, error)

	// QrIDExists reports whether qr_id is taken.
	QrIDExists(ctx context.Context, qrID string) (bool, error)

	// Insert stores one record and fills in its id.
	Insert(ctx context.Context, rec *models.QrRecord) error

	FindByQrID(ctx context.Context, qrID string) (*models.QrRecord, error)
	List(ctx context.Context, f QrFilter) (int64, []models.QrRecord, error)

	// Update applies a $set-style partial update and returns the updated
	// record, or nil when no record matched.
	Update(ctx context.Context, qrID string, fields bson.M) (*models.QrRecord, error)

	DeleteByQrID(ctx context.Context, qrID string) (int64, error)
	DeleteByAssetID(ctx context.Context, assetID primitive.ObjectID) (int64, error)
}

// nowFunc lets tests pin the batch timestamps.
type nowFunc func() time.Time
