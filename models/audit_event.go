// models/audit_event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditEvent is an append-only record of an administrative action. The
// registry core never reads these back; they exist for the audit trail UI
// and the websocket live feed.
type AuditEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Actor     AuditActor         `bson:"actor" json:"actor"`
	Action    string             `bson:"action" json:"action"` // e.g. "asset_bulk_create", "qr_link_asset"
	Resource  AuditResource      `bson:"resource" json:"resource"`
	Before    bson.M             `bson:"before,omitempty" json:"before,omitempty"`
	After     bson.M             `bson:"after,omitempty" json:"after,omitempty"`
	Outcome   AuditOutcome       `bson:"outcome" json:"outcome"`
	Context   AuditContext       `bson:"context" json:"context"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type AuditActor struct {
	UserID string `bson:"user_id" json:"user_id"`
	EmpID  string `bson:"emp_id" json:"emp_id"`
	Role   string `bson:"role" json:"role"`
}

type AuditResource struct {
	Type string `bson:"type" json:"type"` // "asset" | "qr" | "user"
	Key  string `bson:"key,omitempty" json:"key,omitempty"`
}

type AuditOutcome struct {
	Status int    `bson:"status" json:"status"`
	Error  string `bson:"error,omitempty" json:"error,omitempty"`
}

// AuditContext carries request metadata, already masked/hashed by the
// sink so raw client identifiers never reach the collection.
type AuditContext struct {
	IP        string `bson:"ip" json:"ip"`
	UserAgent string `bson:"user_agent" json:"user_agent"`
	RequestID string `bson:"request_id" json:"request_id"`
}
