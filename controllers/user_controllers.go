package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/digiadi/digiadi-backend/models"
	"github.com/digiadi/digiadi-backend/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetUsersByRole -> staff list filtered by exact role match.
func (uc *UserController) GetUsersByRole(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("role parameter is required"))
		return
	}

	var users []models.User
	if err := uc.DB.Select("id, name, email, role, created_at").
		Where("role = ?", role).
		Find(&users).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUser changes name/email and, when supplied, the password. Another
// user already owning the email is a conflict.
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" || req.Email == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("name and email are required"))
		return
	}

	var count int64
	if err := uc.DB.Model(&models.User{}).
		Where("email = ? AND id != ?", req.Email, id).
		Count(&count).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("email is already used by another user"))
		return
	}

	updates := map[string]interface{}{
		"name":  req.Name,
		"email": req.Email,
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondInternal(c, err)
			return
		}
		updates["password"] = string(hashed)
	}

	res := uc.DB.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		utils.RespondInternal(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	utils.InfoLogger.Printf("User %d updated", id)
	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

// DeleteUser removes the account permanently. Order items keep their
// waiter_name snapshot, so history stays readable.
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	res := uc.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		utils.RespondInternal(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	utils.InfoLogger.Printf("User %d deleted", id)
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
