// models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Asset statuses accepted by create/update.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusRepair   = "repair"
	StatusScrape   = "scrape"
	StatusDamage   = "damage"
)

// Assignment modes.
const (
	AssignedIndividual = "individual"
	AssignedGeneral    = "general"
)

type Asset struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	SerialNo            int64              `bson:"serial_no" json:"serial_no"`
	RegistrationNumber  string             `bson:"registration_number" json:"registration_number"`
	AssetName           string             `bson:"asset_name" json:"asset_name"`
	Category            string             `bson:"category" json:"category"`
	Location            string             `bson:"location" json:"location"`
	AssignDate          string             `bson:"assign_date" json:"assign_date"`
	Status              string             `bson:"status" json:"status"`
	Desc                string             `bson:"desc" json:"desc"`
	VerificationDate    string             `bson:"verification_date" json:"verification_date"`
	Verified            bool               `bson:"verified" json:"verified"`
	VerifiedBy          string             `bson:"verified_by" json:"verified_by"`
	Institute           string             `bson:"institute" json:"institute"`
	Department          string             `bson:"department" json:"department"`
	AssignedType        string             `bson:"assigned_type" json:"assigned_type"`
	AssignedFacultyName string             `bson:"assigned_faculty_name" json:"assigned_faculty_name"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusRepair, StatusScrape, StatusDamage:
		return true
	}
	return false
}

func ValidAssignedType(s string) bool {
	return s == AssignedIndividual || s == AssignedGeneral
}
