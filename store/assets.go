// store/assets.go
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

// AssetStore implements registry.AssetStore on a Mongo collection.
type AssetStore struct {
	col *mongo.Collection
}

func NewAssetStore(col *mongo.Collection) *AssetStore {
	return &AssetStore{col: col}
}

func (s *AssetStore) MaxSerial(ctx context.Context) (int64, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "serial_no", Value: -1}}).
		SetProjection(bson.M{"serial_no": 1})

	var doc struct {
		SerialNo int64 `bson:"serial_no"`
	}
	err := s.col.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.SerialNo, nil
}

func (s *AssetStore) InsertBatch(ctx context.Context, assets []models.Asset) error {
	docs := make([]interface{}, 0, len(assets))
	for i := range assets {
		if assets[i].ID.IsZero() {
			assets[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, assets[i])
	}
	_, err := s.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return mapDuplicate(err)
}

func (s *AssetStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *AssetStore) FindBySerial(ctx context.Context, serial int64) (*models.Asset, error) {
	return s.findOne(ctx, bson.M{"serial_no": serial})
}

func (s *AssetStore) FindByRegistration(ctx context.Context, reg string) (*models.Asset, error) {
	return s.findOne(ctx, bson.M{"registration_number": reg})
}

func (s *AssetStore) findOne(ctx context.Context, filter bson.M) (*models.Asset, error) {
	var asset models.Asset
	err := s.col.FindOne(ctx, filter).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *AssetStore) List(ctx context.Context) ([]models.Asset, error) {
	opts := options.Find().SetSort(bson.D{{Key: "serial_no", Value: 1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err = cursor.All(ctx, &assets); err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return assets, nil
}

func (s *AssetStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Asset, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Asset
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, mapDuplicate(err)
	}
	return &updated, nil
}

func (s *AssetStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// mapDuplicate translates a unique-index violation into the sentinel the
// registry allocators branch on; everything else passes through.
func mapDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return registry.ErrDuplicateKey
	}
	return err
}
