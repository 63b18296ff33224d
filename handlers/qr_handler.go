// handlers/qr_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/swet3114/CampusAssets/registry"
	"github.com/swet3114/CampusAssets/utils"
)

// CreateQrBulk allocates a batch of QR labels for an institute and
// department. Items are inserted one at a time because each serial
// depends on what earlier items committed; the batch is still
// all-or-nothing from the caller's side.
func CreateQrBulk(w http.ResponseWriter, r *http.Request) {
	var req registry.QrBatchRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	items, err := allocator.CreateQrBatch(ctx, req)
	if err != nil {
		status := respondRegistryError(w, err)
		if _, ok := err.(*registry.ValidationError); !ok {
			recordAudit(r, "qr_bulk_create", "qr", req.Institute, nil, nil, status, err)
		}
		return
	}

	recordAudit(r, "qr_bulk_create", "qr", items[0].QrID, nil, bson.M{
		"count":      len(items),
		"institute":  items[0].Institute,
		"department": items[0].Department,
	}, http.StatusCreated, nil)

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"count": len(items),
		"items": items,
	})
}

func ListQr(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := registry.QrFilter{
		Institute:  q.Get("institute"),
		Department: q.Get("department"),
		Page:       1,
		Size:       25,
	}
	if used := q.Get("used"); used == "true" || used == "false" {
		b := used == "true"
		f.Used = &b
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		f.Page = page
	}
	if size, err := strconv.Atoi(q.Get("size")); err == nil && size > 0 {
		f.Size = size
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	total, items, err := qrStore.List(ctx, f)
	if err != nil {
		log.Printf("qr Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"total": total,
		"page":  f.Page,
		"size":  f.Size,
		"items": items,
	})
}

// GetQrByID returns one record; linked records resolve their display
// fields from the referenced asset instead of the stale mirrors.
func GetQrByID(w http.ResponseWriter, r *http.Request) {
	qrID := mux.Vars(r)["qr_id"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	rec, err := qrStore.FindByQrID(ctx, qrID)
	if err != nil {
		log.Printf("qr find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	if rec == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}

	resolved, err := linker.Resolve(ctx, rec)
	if err != nil {
		respondRegistryError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resolved)
}

// UpdateQrFields is the scan-and-fill PATCH: merge editable fields, and
// flip used=true once anything meaningful was written.
func UpdateQrFields(w http.ResponseWriter, r *http.Request) {
	qrID := mux.Vars(r)["qr_id"]

	var body map[string]interface{}
	if err := utils.ParseJSON(r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	rec, err := linker.UpdateFields(ctx, qrID, body)
	if err != nil {
		status := respondRegistryError(w, err)
		if _, ok := err.(*registry.ValidationError); !ok {
			recordAudit(r, "qr_update", "qr", qrID, nil, nil, status, err)
		}
		return
	}

	recordAudit(r, "qr_update", "qr", qrID, nil, bson.M{"used": rec.Used}, http.StatusOK, nil)
	utils.RespondWithJSON(w, http.StatusOK, rec)
}

// LinkQrAsset sets the soft asset reference on a QR record.
func LinkQrAsset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	qrID := vars["qr_id"]

	assetID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	rec, err := linker.LinkAsset(ctx, qrID, assetID)
	if err != nil {
		status := respondRegistryError(w, err)
		recordAudit(r, "qr_link_asset", "qr", qrID, nil, nil, status, err)
		return
	}

	recordAudit(r, "qr_link_asset", "qr", qrID, nil,
		bson.M{"asset_id": assetID.Hex(), "used": true}, http.StatusOK, nil)

	utils.RespondWithJSON(w, http.StatusOK, rec)
}

// DeleteQr removes the record and, when linked, the one asset it points
// at.
func DeleteQr(w http.ResponseWriter, r *http.Request) {
	qrID := mux.Vars(r)["qr_id"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	qrDeleted, assetsDeleted, err := linker.DeleteByQrID(ctx, qrID)
	if err != nil {
		status := respondRegistryError(w, err)
		recordAudit(r, "qr_delete", "qr", qrID, nil, nil, status, err)
		return
	}

	recordAudit(r, "qr_delete", "qr", qrID,
		bson.M{"qr_id": qrID},
		bson.M{"qr_deleted": qrDeleted, "assets_deleted": assetsDeleted},
		http.StatusOK, nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]int64{
		"qr_deleted":     qrDeleted,
		"assets_deleted": assetsDeleted,
	})
}
