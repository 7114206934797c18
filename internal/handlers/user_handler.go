package handlers

import (
	"net/http"
	"strconv"

	"go-travel-api/internal/database"
	"go-travel-api/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// --- GET: User list with their bookings (admin) ---
func GetUsers(c *gin.Context) {
	var users []models.User
	err := database.DB.Preload("Bookings").Preload("Bookings.Wisata").Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memuat data user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

type ProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"` // Optional, only set when changing
}

// --- PUT: Update a profile. Users edit themselves, admins edit anyone. ---
func UpdateProfile(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID user tidak valid"})
		return
	}

	role := c.MustGet("role").(string)
	userID := c.MustGet("userID").(uint)
	if uint(targetID) != userID && role != "admin" && role != "superadmin" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Anda tidak memiliki akses ke profil ini"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User tidak ditemukan"})
		return
	}

	var input ProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Data profil tidak valid"})
		return
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Password != "" {
		if len(input.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password minimal 6 karakter"})
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memproses password"})
			return
		}
		user.PasswordHash = string(hashed)
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username atau email sudah dipakai"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profil berhasil diperbarui", "data": userPayload(user)})
}

// --- DELETE: Remove a user (admin) ---
func DeleteUser(c *gin.Context) {
	if err := database.DB.Delete(&models.User{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User tidak dapat dihapus"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User berhasil dihapus"})
}
