package controllers

import (
	"net/http"

	"annotator/config"
	dbpkg "annotator/db"
	"annotator/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"
)

// POST /api/auth/signup
func Signup(cfg config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if !bindJSON(c, &req) {
			return
		}

		db := dbpkg.DBInstance(c)
		if db == nil {
			RespondError(c, "Internal server error", http.StatusInternalServerError)
			return
		}

		var existing models.User
		err := db.Where("email = ?", req.Email).First(&existing).Error
		if err == nil {
			RespondError(c, "Email already registered", http.StatusConflict)
			return
		}
		if !gorm.IsRecordNotFoundError(err) {
			RespondInternal(c, "signup lookup", err, "Failed to create user")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			RespondInternal(c, "signup hash", err, "Failed to create user")
			return
		}

		user := models.User{
			Email:    req.Email,
			Password: string(hash),
			Name:     req.Name,
		}
		if err := db.Create(&user).Error; err != nil {
			RespondInternal(c, "signup create", err, "Failed to create user")
			return
		}

		token, err := signToken(cfg.JWTSecret, user.ID)
		if err != nil {
			RespondInternal(c, "signup token", err, "Failed to create user")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"token":   token,
			"user":    user,
		})
	}
}

// POST /api/auth/login
func Login(cfg config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if !bindJSON(c, &req) {
			return
		}

		db := dbpkg.DBInstance(c)
		if db == nil {
			RespondError(c, "Internal server error", http.StatusInternalServerError)
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			// Same answer for unknown email and bad password.
			RespondError(c, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			RespondError(c, "Invalid email or password", http.StatusUnauthorized)
			return
		}

		token, err := signToken(cfg.JWTSecret, user.ID)
		if err != nil {
			RespondInternal(c, "login token", err, "Failed to log in")
			return
		}

		RespondSuccess(c, gin.H{
			"message": "Login successful",
			"token":   token,
			"user":    user,
		})
	}
}

// GET /api/auth/me
func Me(c *gin.Context) {
	userID, ok := UserID(c)
	if !ok {
		RespondError(c, "Unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "Internal server error", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "User not found", http.StatusNotFound)
			return
		}
		RespondInternal(c, "me lookup", err, "Failed to fetch profile")
		return
	}

	RespondSuccess(c, gin.H{"user": user})
}
