// models/qr_record.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QrRecord is one allocated QR label. AssetID is a soft reference: nothing
// in the store enforces that the referenced asset still exists. Once set,
// the record is "linked" and its display fields come from the asset, not
// from the mirrored copies kept here for the pre-link scan-and-fill flow.
type QrRecord struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	QrID       string              `bson:"qr_id" json:"qr_id"`
	SerialNo   string              `bson:"serial_no" json:"serial_no"`
	Institute  string              `bson:"institute" json:"institute"`
	Department string              `bson:"department" json:"department"`
	Ts         string              `bson:"ts" json:"ts"`
	CreatedAt  time.Time           `bson:"created_at" json:"created_at"`
	Used       bool                `bson:"used" json:"used"`
	AssetID    *primitive.ObjectID `bson:"asset_id,omitempty" json:"asset_id,omitempty"`
	LinkedAt   *time.Time          `bson:"linked_at,omitempty" json:"linked_at,omitempty"`

	// Mirrored asset-style fields, editable until the record is linked.
	AssetName           string `bson:"asset_name,omitempty" json:"asset_name"`
	Category            string `bson:"category,omitempty" json:"category"`
	Location            string `bson:"location,omitempty" json:"location"`
	AssignDate          string `bson:"assign_date,omitempty" json:"assign_date"`
	Status              string `bson:"status,omitempty" json:"status"`
	Desc                string `bson:"desc,omitempty" json:"desc"`
	VerificationDate    string `bson:"verification_date,omitempty" json:"verification_date"`
	Verified            bool   `bson:"verified,omitempty" json:"verified"`
	VerifiedBy          string `bson:"verified_by,omitempty" json:"verified_by"`
	AssignedType        string `bson:"assigned_type,omitempty" json:"assigned_type"`
	AssignedFacultyName string `bson:"assigned_faculty_name,omitempty" json:"assigned_faculty_name"`
}
