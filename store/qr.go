// store/qr.go
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swet3114/CampusAssets/models"
	"github.com/swet3114/CampusAssets/registry"
)

// QrStore implements registry.QrStore on a Mongo collection.
type QrStore struct {
	col *mongo.Collection
}

func NewQrStore(col *mongo.Collection) *QrStore {
	return &QrStore{col: col}
}

func (s *QrStore) MaxSerialFor(ctx context.Context, institute, prefix string) (string, error) {
	filter := bson.M{
		"institute": institute,
		"serial_no": bson.M{"$regex": "^" + prefix + `\d{2,}$`},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "serial_no", Value: -1}}).
		SetProjection(bson.M{"serial_no": 1})

	var doc struct {
		SerialNo string `bson:"serial_no"`
	}
	err := s.col.FindOne(ctx, filter, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return doc.SerialNo, nil
}

func (s *QrStore) SerialExists(ctx context.Context, institute, serial string) (bool, error) {
	err := s.col.FindOne(ctx, bson.M{"institute": institute, "serial_no": serial},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *QrStore) QrIDExists(ctx context.Context, qrID string) (bool, error) {
	err := s.col.FindOne(ctx, bson.M{"qr_id": qrID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *QrStore) Insert(ctx context.Context, rec *models.QrRecord) error {
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, rec)
	return mapDuplicate(err)
}

func (s *QrStore) FindByQrID(ctx context.Context, qrID string) (*models.QrRecord, error) {
	var rec models.QrRecord
	err := s.col.FindOne(ctx, bson.M{"qr_id": qrID}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *QrStore) List(ctx context.Context, f registry.QrFilter) (int64, []models.QrRecord, error) {
	filter := bson.M{}
	if f.Institute != "" {
		filter["institute"] = f.Institute
	}
	if f.Department != "" {
		filter["department"] = f.Department
	}
	if f.Used != nil {
		filter["used"] = *f.Used
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, nil, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.Size
	if size < 1 {
		size = 25
	}
	if size > 100 {
		size = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return 0, nil, err
	}
	defer cursor.Close(ctx)

	var recs []models.QrRecord
	if err = cursor.All(ctx, &recs); err != nil {
		return 0, nil, err
	}
	if recs == nil {
		recs = []models.QrRecord{}
	}
	return total, recs, nil
}

func (s *QrStore) Update(ctx context.Context, qrID string, fields bson.M) (*models.QrRecord, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.QrRecord
	err := s.col.FindOneAndUpdate(ctx, bson.M{"qr_id": qrID}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, mapDuplicate(err)
	}
	return &updated, nil
}

func (s *QrStore) DeleteByQrID(ctx context.Context, qrID string) (int64, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"qr_id": qrID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *QrStore) DeleteByAssetID(ctx context.Context, assetID primitive.ObjectID) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{"asset_id": assetID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
