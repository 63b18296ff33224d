// handlers/audit_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swet3114/CampusAssets/models"
	"github.com/swet3114/CampusAssets/utils"
)

// ListAuditEvents returns the trail newest-first with page/size
// pagination. The registry core never reads this collection; this
// endpoint exists for the admin UI.
func ListAuditEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := 1
	size := 50
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(q.Get("size")); err == nil && s > 0 && s <= 200 {
		size = s
	}

	filter := bson.M{}
	if action := q.Get("action"); action != "" {
		filter["action"] = action
	}
	if rtype := q.Get("resource_type"); rtype != "" {
		filter["resource.type"] = rtype
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	total, err := auditCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("audit count error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := auditCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("audit Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	var events []models.AuditEvent
	if err = cursor.All(ctx, &events); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode audit events")
		return
	}
	if events == nil {
		events = []models.AuditEvent{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"total": total,
		"page":  page,
		"size":  size,
		"items": events,
	})
}

// AuditWebSocket streams new audit events to admin clients. Token comes
// from the query string or the Authorization header because browsers
// cannot set headers on upgrade requests.
func AuditWebSocket(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		tokenString = utils.TokenFromRequest(r)
	}
	if tokenString == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication token required")
		return
	}

	claims, err := utils.ValidateJWT(tokenString)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	if claims.Role != models.RoleSuperAdmin && claims.Role != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	auditHub.ServeWS(w, r)
}
