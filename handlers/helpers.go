// handlers/helpers.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/swet3114/CampusAssets/audit"
	"github.com/swet3114/CampusAssets/middleware"
	"github.com/swet3114/CampusAssets/models"
	"github.com/swet3114/CampusAssets/registry"
	"github.com/swet3114/CampusAssets/utils"
)

// respondRegistryError maps the registry error taxonomy onto HTTP codes.
// Returns the status it wrote, for the audit outcome.
func respondRegistryError(w http.ResponseWriter, err error) int {
	var (
		vErr *registry.ValidationError
		nErr *registry.NotFoundError
		cErr *registry.ConflictError
		aErr *registry.AllocationExhaustedError
		sErr *registry.StoreError
	)
	switch {
	case errors.As(err, &vErr):
		utils.RespondWithError(w, http.StatusBadRequest, vErr.Msg)
		return http.StatusBadRequest
	case errors.As(err, &nErr):
		utils.RespondWithError(w, http.StatusNotFound, nErr.Error())
		return http.StatusNotFound
	case errors.As(err, &cErr):
		utils.RespondWithError(w, http.StatusConflict, cErr.Error())
		return http.StatusConflict
	case errors.As(err, &aErr):
		log.Printf("allocation exhausted: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not allocate unique identifiers")
		return http.StatusInternalServerError
	case errors.As(err, &sErr):
		log.Printf("store error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database operation failed")
		return http.StatusInternalServerError
	default:
		log.Printf("unexpected error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return http.StatusInternalServerError
	}
}

func actorFromRequest(r *http.Request) models.AuditActor {
	userID, _ := r.Context().Value(middleware.ContextUserID).(string)
	empID, _ := r.Context().Value(middleware.ContextEmpID).(string)
	role, _ := r.Context().Value(middleware.ContextRole).(string)
	return models.AuditActor{UserID: userID, EmpID: empID, Role: role}
}

// recordAudit ships one event to the sink. Best-effort by contract; the
// sink never fails the request.
func recordAudit(r *http.Request, action, resourceType, resourceKey string, before, after bson.M, status int, opErr error) {
	ev := models.AuditEvent{
		Actor:     actorFromRequest(r),
		Action:    action,
		Resource:  models.AuditResource{Type: resourceType, Key: resourceKey},
		Before:    before,
		After:     after,
		Outcome:   models.AuditOutcome{Status: status},
		Context:   audit.ContextFromRequest(r, middleware.RequestID(r.Context())),
		CreatedAt: time.Now().UTC(),
	}
	if opErr != nil {
		ev.Outcome.Error = opErr.Error()
	}
	auditSink.Record(r.Context(), ev)
}
