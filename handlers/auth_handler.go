// handlers/auth_handler.go
package handlers

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/swet3114/CampusAssets/config"
	"github.com/swet3114/CampusAssets/middleware"
	"github.com/swet3114/CampusAssets/models"
	"github.com/swet3114/CampusAssets/utils"
)

var empIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{3,64}$`)

type signupRequest struct {
	EmpID     string `json:"emp_id"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	SecretKey string `json:"secret_key"`
}

type userResponse struct {
	ID    string `json:"_id"`
	EmpID string `json:"emp_id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	req.EmpID = strings.TrimSpace(req.EmpID)
	req.Name = strings.TrimSpace(req.Name)
	req.Role = strings.TrimSpace(req.Role)
	if req.Role == "" {
		req.Role = models.RoleFaculty
	}

	if req.EmpID == "" || req.Name == "" || req.Password == "" || req.SecretKey == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !empIDRe.MatchString(req.EmpID) {
		utils.RespondWithError(w, http.StatusBadRequest, "emp_id must be 3-64 chars (letters, numbers, _ or -)")
		return
	}
	if req.SecretKey != config.SignupSecret {
		utils.RespondWithError(w, http.StatusForbidden, "Invalid secret key")
		return
	}
	if !models.ValidRole(req.Role) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user := models.User{
		ID:           primitive.NewObjectID(),
		EmpID:        req.EmpID,
		Name:         req.Name,
		PasswordHash: hashed,
		Role:         req.Role,
		CreatedAt:    time.Now().Unix(),
	}
	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "emp_id already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.EmpID, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	utils.SetAuthCookie(w, token)

	recordAudit(r, "user_signup", "user", user.EmpID, nil,
		bson.M{"emp_id": user.EmpID, "role": user.Role}, http.StatusCreated, nil)

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"user": userResponse{ID: user.ID.Hex(), EmpID: user.EmpID, Name: user.Name, Role: user.Role},
	})
}

type loginRequest struct {
	EmpID    string `json:"emp_id"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	req.EmpID = strings.TrimSpace(req.EmpID)
	if req.EmpID == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing credentials")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"emp_id": req.EmpID}).Decode(&user)
	if err != nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.EmpID, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	utils.SetAuthCookie(w, token)

	recordAudit(r, "user_login", "user", user.EmpID, nil, nil, http.StatusOK, nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user": userResponse{ID: user.ID.Hex(), EmpID: user.EmpID, Name: user.Name, Role: user.Role},
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	utils.ClearAuthCookie(w)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func Me(w http.ResponseWriter, r *http.Request) {
	userIDStr, _ := r.Context().Value(middleware.ContextUserID).(string)
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, userResponse{
		ID: user.ID.Hex(), EmpID: user.EmpID, Name: user.Name, Role: user.Role,
	})
}

type profileRequest struct {
	Name string `json:"name"`
}

func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userIDStr, _ := r.Context().Value(middleware.ContextUserID).(string)
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req profileRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name cannot be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var before models.User
	_ = userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&before)

	if _, err := userCollection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"name": name}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	recordAudit(r, "profile_update", "user", before.EmpID,
		bson.M{"name": before.Name}, bson.M{"name": name}, http.StatusOK, nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"name": name})
}
