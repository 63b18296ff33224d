// handlers/collections.go
package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/swet3114/CampusAssets/audit"
	"github.com/swet3114/CampusAssets/config"
	"github.com/swet3114/CampusAssets/database"
	"github.com/swet3114/CampusAssets/registry"
	"github.com/swet3114/CampusAssets/store"
)

var (
	userCollection  *mongo.Collection
	auditCollection *mongo.Collection

	assetStore *store.AssetStore
	qrStore    *store.QrStore

	allocator *registry.Allocator
	linker    *registry.Linker

	auditHub  *audit.Hub
	auditSink audit.Sink
)

// Init wires collections, stores and the registry services. Call once
// after database.Connect.
func Init() {
	db := database.Client.Database(config.DBName)

	userCollection = db.Collection("Users")
	auditCollection = db.Collection("AuditEvents")

	assetStore = store.NewAssetStore(db.Collection("Assets"))
	qrStore = store.NewQrStore(db.Collection("QrRegistry"))

	allocator = registry.NewAllocator(assetStore, qrStore)
	linker = registry.NewLinker(assetStore, qrStore)

	auditHub = audit.NewHub()
	go auditHub.Run()
	auditSink = audit.NewMongoSink(auditCollection, auditHub)
}
