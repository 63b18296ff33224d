// models/user.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff roles.
const (
	RoleSuperAdmin = "Super_Admin"
	RoleAdmin      = "Admin"
	RoleFaculty    = "Faculty"
	RoleVerifier   = "Verifier"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	EmpID        string             `bson:"emp_id" json:"emp_id"`
	Name         string             `bson:"name" json:"name"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
	CreatedAt    int64              `bson:"created_at" json:"created_at"`
}

func ValidRole(r string) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleFaculty, RoleVerifier:
		return true
	}
	return false
}
