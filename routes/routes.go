// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/swet3114/CampusAssets/handlers"
	"github.com/swet3114/CampusAssets/middleware"
	"github.com/swet3114/CampusAssets/models"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsPatchOnly  = []string{"PATCH", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

func RegisterRoutes(r *mux.Router) {
	adminOnly := middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin)

	// ====================
	// HEALTH CHECK (Public)
	// ====================
	r.HandleFunc("/health", handlers.HealthCheck).Methods(MethodsGetOnly...)

	// ====================
	// AUTHENTICATION ROUTES (Public - No auth required)
	// ====================
	r.HandleFunc("/api/auth/signup", handlers.Signup).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/login", handlers.Login).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/logout", handlers.Logout).Methods(MethodsPostOnly...)

	// ====================
	// PROTECTED API ROUTES (Require authentication)
	// ====================
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware)

	api.HandleFunc("/auth/me", handlers.Me).Methods(MethodsGetOnly...)
	api.HandleFunc("/auth/profile", handlers.UpdateProfile).Methods(MethodsPutOnly...)

	// ====================
	// ASSETS
	// ====================
	api.Handle("/assets/bulk", adminOnly(http.HandlerFunc(handlers.CreateAssetsBulk))).Methods(MethodsPostOnly...)
	api.HandleFunc("/assets", handlers.ListAssets).Methods(MethodsGetOnly...)
	api.HandleFunc("/assets/next-serial", handlers.NextSerial).Methods(MethodsGetOnly...)
	api.HandleFunc("/assets/by-reg/{registration_number:.+}", handlers.GetAssetByRegistration).Methods(MethodsGetOnly...)
	api.Handle("/assets/by-serial/{serial:[0-9]+}", adminOnly(http.HandlerFunc(handlers.DeleteAssetBySerial))).Methods(MethodsDeleteOnly...)
	api.HandleFunc("/assets/{id}", handlers.GetAsset).Methods(MethodsGetOnly...)
	api.Handle("/assets/{id}", adminOnly(http.HandlerFunc(handlers.UpdateAsset))).Methods(MethodsPutOnly...)
	api.Handle("/assets/{id}", adminOnly(http.HandlerFunc(handlers.DeleteAsset))).Methods(MethodsDeleteOnly...)

	// ====================
	// QR REGISTRY
	// ====================
	// The audit websocket authenticates inside the handler; order matters
	// for the {qr_id:.+} catch-alls below.
	api.Handle("/qr/bulk", adminOnly(http.HandlerFunc(handlers.CreateQrBulk))).Methods(MethodsPostOnly...)
	api.HandleFunc("/qr", handlers.ListQr).Methods(MethodsGetOnly...)
	api.HandleFunc("/qr/by-id/{qr_id:.+}", handlers.GetQrByID).Methods(MethodsGetOnly...)
	api.HandleFunc("/qr/{qr_id:.+}/link-asset/{id}", handlers.LinkQrAsset).Methods(MethodsPatchOnly...)
	api.HandleFunc("/qr/{qr_id:.+}", handlers.UpdateQrFields).Methods(MethodsPatchOnly...)
	api.Handle("/qr/{qr_id:.+}", adminOnly(http.HandlerFunc(handlers.DeleteQr))).Methods(MethodsDeleteOnly...)

	// ====================
	// AUDIT TRAIL
	// ====================
	api.HandleFunc("/audit/ws", handlers.AuditWebSocket).Methods("GET")
	api.Handle("/audit", adminOnly(http.HandlerFunc(handlers.ListAuditEvents))).Methods(MethodsGetOnly...)
}
