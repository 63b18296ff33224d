// handlers/asset_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/swet3114/CampusAssets/models"
	"github.com/swet3114/CampusAssets/registry"
	"github.com/swet3114/CampusAssets/utils"
)

// CreateAssetsBulk allocates a batch of assets with contiguous serials
// and sequenced registration numbers. All-or-nothing.
func CreateAssetsBulk(w http.ResponseWriter, r *http.Request) {
	var req registry.AssetBatchRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	docs, err := allocator.CreateAssetBatch(ctx, req)
	if err != nil {
		status := respondRegistryError(w, err)
		// Validation failures allocate nothing; auditing them would
		// record a phantom resource.
		if _, ok := err.(*registry.ValidationError); !ok {
			recordAudit(r, "asset_bulk_create", "asset", req.AssetName, nil, nil, status, err)
		}
		return
	}

	recordAudit(r, "asset_bulk_create", "asset", docs[0].RegistrationNumber, nil, bson.M{
		"count":        len(docs),
		"first_serial": docs[0].SerialNo,
		"last_serial":  docs[len(docs)-1].SerialNo,
	}, http.StatusCreated, nil)

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"count": len(docs),
		"items": docs,
	})
}

func ListAssets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	assets, err := assetStore.List(ctx)
	if err != nil {
		log.Printf("assets Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, assets)
}

// NextSerial exposes the next free global serial (max+1).
func NextSerial(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	next, err := allocator.NextSerial(ctx)
	if err != nil {
		respondRegistryError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]int64{"next_serial": next})
}

func GetAssetByRegistration(w http.ResponseWriter, r *http.Request) {
	reg := mux.Vars(r)["registration_number"]
	if !registry.RegistrationRe.MatchString(reg) {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	asset, err := assetStore.FindByRegistration(ctx, reg)
	if err != nil {
		log.Printf("find asset error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	if asset == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, asset)
}

func GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	asset, err := assetStore.FindByID(ctx, id)
	if err != nil {
		log.Printf("find asset error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	if asset == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, asset)
}

type updateAssetRequest struct {
	AssetName           *string `json:"asset_name,omitempty"`
	Category            *string `json:"category,omitempty"`
	Location            *string `json:"location,omitempty"`
	AssignDate          *string `json:"assign_date,omitempty"`
	Status              *string `json:"status,omitempty"`
	Desc                *string `json:"desc,omitempty"`
	VerificationDate    *string `json:"verification_date,omitempty"`
	Verified            *bool   `json:"verified,omitempty"`
	VerifiedBy          *string `json:"verified_by,omitempty"`
	Institute           *string `json:"institute,omitempty"`
	Department          *string `json:"department,omitempty"`
	AssignedType        *string `json:"assigned_type,omitempty"`
	AssignedFacultyName *string `json:"assigned_faculty_name,omitempty"`
}

func (req *updateAssetRequest) normalize() {
	trim := func(v *string) {
		if v != nil {
			*v = strings.TrimSpace(*v)
		}
	}
	trim(req.AssetName)
	trim(req.Category)
	trim(req.Location)
	trim(req.AssignDate)
	trim(req.Status)
	trim(req.Desc)
	trim(req.VerificationDate)
	trim(req.VerifiedBy)
	trim(req.Institute)
	trim(req.Department)
	trim(req.AssignedType)
	trim(req.AssignedFacultyName)
}

func (req *updateAssetRequest) toUpdate() bson.M {
	update := bson.M{}
	set := func(k string, v *string) {
		if v != nil {
			update[k] = *v
		}
	}
	set("asset_name", req.AssetName)
	set("category", req.Category)
	set("location", req.Location)
	set("assign_date", req.AssignDate)
	set("status", req.Status)
	set("desc", req.Desc)
	set("verification_date", req.VerificationDate)
	set("verified_by", req.VerifiedBy)
	set("institute", req.Institute)
	set("department", req.Department)
	set("assigned_type", req.AssignedType)
	set("assigned_faculty_name", req.AssignedFacultyName)
	if req.Verified != nil {
		update["verified"] = *req.Verified
	}
	return update
}

func UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var req updateAssetRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	req.normalize()
	update := req.toUpdate()
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if req.Status != nil && !models.ValidStatus(*req.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "status must be one of [active damage inactive repair scrape]")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	before, err := assetStore.FindByID(ctx, id)
	if err != nil {
		log.Printf("find asset error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	if before == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}

	// assigned_faculty_name is mandatory for individual assignment; the
	// existing value satisfies the requirement when the caller omits it.
	if req.AssignedType != nil {
		if !models.ValidAssignedType(*req.AssignedType) {
			utils.RespondWithError(w, http.StatusBadRequest, "assigned_type must be 'individual' or 'general'")
			return
		}
		if *req.AssignedType == models.AssignedIndividual {
			if req.AssignedFacultyName == nil && before.AssignedFacultyName == "" {
				utils.RespondWithError(w, http.StatusBadRequest, "assigned_faculty_name required for 'individual'")
				return
			}
		} else {
			update["assigned_faculty_name"] = ""
		}
	}

	updated, err := assetStore.Update(ctx, id, update)
	if err != nil {
		log.Printf("update asset error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update asset")
		return
	}
	if updated == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}

	recordAudit(r, "asset_update", "asset", updated.RegistrationNumber,
		bson.M{"status": before.Status, "asset_name": before.AssetName},
		update, http.StatusOK, nil)

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteAsset removes the asset and every QR record soft-linked to it.
func DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	assetsDeleted, qrDeleted, err := linker.DeleteByAssetID(ctx, id)
	if err != nil {
		status := respondRegistryError(w, err)
		recordAudit(r, "asset_delete", "asset", id.Hex(), nil, nil, status, err)
		return
	}

	recordAudit(r, "asset_delete", "asset", id.Hex(),
		bson.M{"asset_id": id.Hex()},
		bson.M{"assets_deleted": assetsDeleted, "qr_deleted": qrDeleted},
		http.StatusOK, nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]int64{
		"assets_deleted": assetsDeleted,
		"qr_deleted":     qrDeleted,
	})
}

// DeleteAssetBySerial is the cascade delete keyed by global serial.
func DeleteAssetBySerial(w http.ResponseWriter, r *http.Request) {
	serial, err := strconv.ParseInt(mux.Vars(r)["serial"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid serial")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	assetsDeleted, qrDeleted, err := linker.DeleteByAssetSerial(ctx, serial)
	if err != nil {
		status := respondRegistryError(w, err)
		recordAudit(r, "asset_delete_by_serial", "asset", mux.Vars(r)["serial"], nil, nil, status, err)
		return
	}

	recordAudit(r, "asset_delete_by_serial", "asset", mux.Vars(r)["serial"],
		bson.M{"serial_no": serial},
		bson.M{"assets_deleted": assetsDeleted, "qr_deleted": qrDeleted},
		http.StatusOK, nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]int64{
		"assets_deleted": assetsDeleted,
		"qr_deleted":     qrDeleted,
	})
}
