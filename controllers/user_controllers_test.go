package controllers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/digiadi/digiadi-backend/controllers"
	"github.com/digiadi/digiadi-backend/models"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	userCtrl := controllers.NewUserController(db)
	router.GET("/users", userCtrl.GetUsersByRole)
	router.PUT("/users/:id", userCtrl.UpdateUser)
	router.DELETE("/users/:id", userCtrl.DeleteUser)
	return router
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	user := models.User{Name: name, Email: email, Password: string(hash), Role: role}
	assert.NoError(t, db.Create(&user).Error)
	return user
}

func TestGetUsersByRole(t *testing.T) {
	db := setupTestDB(t)
	router := setupUserRouter(db)

	seedUser(t, db, "Garson Bir", "g1@example.com", "garson")
	seedUser(t, db, "Garson Iki", "g2@example.com", "garson")
	seedUser(t, db, "Patron", "admin@example.com", "admin")

	// role is mandatory
	w := doJSON(t, router, "GET", "/users", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "GET", "/users?role=garson", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var users []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.Equal(t, "garson", u["role"])
		assert.NotNil(t, u["created_at"])
	}
	assert.False(t, strings.Contains(w.Body.String(), "secret"))
	assert.False(t, strings.Contains(w.Body.String(), "password"))
}

func TestUpdateUser(t *testing.T) {
	db := setupTestDB(t)
	router := setupUserRouter(db)

	user := seedUser(t, db, "Eski Ad", "old@example.com", "garson")
	other := seedUser(t, db, "Diger", "taken@example.com", "garson")

	// name and email are required
	w := doJSON(t, router, "PUT", "/users/1", map[string]string{"name": "Only Name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// email owned by someone else
	w = doJSON(t, router, "PUT", "/users/1", map[string]string{
		"name":  "Eski Ad",
		"email": other.Email,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// unknown id
	w = doJSON(t, router, "PUT", "/users/999", map[string]string{
		"name":  "Kimse",
		"email": "kimse@example.com",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// keeping your own email is not a conflict
	w = doJSON(t, router, "PUT", "/users/1", map[string]string{
		"name":  "Yeni Ad",
		"email": user.Email,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	assert.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, "Yeni Ad", updated.Name)

	// password only changes when supplied, and is stored hashed
	before := updated.Password
	w = doJSON(t, router, "PUT", "/users/1", map[string]string{
		"name":     "Yeni Ad",
		"email":    user.Email,
		"password": "newpass",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, db.First(&updated, user.ID).Error)
	assert.NotEqual(t, before, updated.Password)
	assert.NotEqual(t, "newpass", updated.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpass")))
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	router := setupUserRouter(db)

	user := seedUser(t, db, "Silinecek", "gone@example.com", "garson")

	w := doJSON(t, router, "DELETE", "/users/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, "DELETE", "/users/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
