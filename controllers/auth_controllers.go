package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/warungku/warung-app/models"
	"github.com/warungku/warung-app/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Login -> verifikasi kredensial staff, kembalikan JWT.
func (uc *UserController) Login(c *gin.Context) {
	type LoginReq struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("email atau password salah"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("email atau password salah"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.IsSuperAdmin)
	if err != nil {
		utils.ErrorLogger.Printf("login: failed to generate token for user %d: %v", user.ID, err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("gagal membuat token"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login berhasil", gin.H{
		"token": token,
		"user": gin.H{
			"id":             user.ID,
			"name":           user.Name,
			"email":          user.Email,
			"is_super_admin": user.IsSuperAdmin,
		},
	})
}

// Logout -> blacklist token yang sedang dipakai.
func (uc *UserController) Logout(c *gin.Context) {
	tokenVal, exists := c.Get("token")
	if !exists {
		// fallback: ambil langsung dari header
		tokenVal = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	if token, ok := tokenVal.(string); ok && token != "" {
		utils.BlacklistToken(token)
	}
	utils.RespondJSON(c, http.StatusOK, "Logout berhasil", nil)
}

// GetProfile -> identitas user + daftar membership tenant-nya.
func (uc *UserController) GetProfile(c *gin.Context) {
	actor := currentActor(c, uc.DB)
	if !actor.IsAuthenticated() {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profil user", gin.H{
		"id":             actor.UserID,
		"email":          actor.Email,
		"is_super_admin": actor.IsSuperAdmin(),
		"memberships":    actor.Memberships(),
	})
}
