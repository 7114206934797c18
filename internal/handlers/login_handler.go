package handlers

import (
	"net/http"

	"go-travel-api/internal/auth"
	"go-travel-api/internal/database"
	"go-travel-api/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// rememberMaxAge keeps the remember-me cookie for 30 days.
const rememberMaxAge = 30 * 24 * 60 * 60

// LoginRequest comes in form-encoded; the frontend posts URLSearchParams.
type LoginRequest struct {
	Username   string `form:"username" binding:"required"`
	Password   string `form:"password" binding:"required"`
	RememberMe bool   `form:"rememberMe"`
}

func Login(c *gin.Context) {
	var input LoginRequest
	// 1. Validate Input (form-encoded)
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Username dan password wajib diisi"})
		return
	}

	// 2. Find User in DB
	var user models.User
	if err := database.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Username atau password salah"})
		return
	}

	// 3. Verify Password (Bcrypt)
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Username atau password salah"})
		return
	}

	// 4. Generate JWT and set it as the session cookie
	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Gagal membuat token"})
		return
	}
	c.SetCookie("token", token, 24*60*60, "/", "", false, true)

	// 5. Remember-me: issue an opaque token, store only its hash.
	// Logging in without the flag clears any previous token, so opting
	// out actually revokes it.
	if input.RememberMe {
		raw, hash, err := auth.NewRememberToken()
		if err == nil {
			database.DB.Model(&user).Update("remember_token", hash)
			c.SetCookie("remember_token", raw, rememberMaxAge, "/", "", false, true)
		}
	} else {
		database.DB.Model(&user).Update("remember_token", "")
		c.SetCookie("remember_token", "", -1, "/", "", false, true)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"phone":    user.Phone,
		"role":     user.Role,
		"token":    token,
	})
}

// Me reports the current identity. It first tries the JWT session, then
// falls back to the remember-me cookie (rotating it on use) so an opted-in
// user survives a browser restart without re-entering credentials.
func Me(c *gin.Context) {
	// 1. Session cookie or Bearer header
	if tokenString, err := c.Cookie("token"); err == nil && tokenString != "" {
		if claims, err := auth.ValidateToken(tokenString); err == nil {
			var user models.User
			if err := database.DB.First(&user, claims.UserID).Error; err == nil {
				c.JSON(http.StatusOK, userPayload(user))
				return
			}
		}
	}

	// 2. Remember-me token
	raw, err := c.Cookie("remember_token")
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Mohon login ke akun Anda"})
		return
	}

	var user models.User
	hash := auth.HashRememberToken(raw)
	if err := database.DB.Where("remember_token = ? AND remember_token <> ''", hash).First(&user).Error; err != nil {
		c.SetCookie("remember_token", "", -1, "/", "", false, true)
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Mohon login ke akun Anda"})
		return
	}

	// 3. Rotate the token and open a fresh session
	newRaw, newHash, err := auth.NewRememberToken()
	if err == nil {
		database.DB.Model(&user).Update("remember_token", newHash)
		c.SetCookie("remember_token", newRaw, rememberMaxAge, "/", "", false, true)
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err == nil {
		c.SetCookie("token", token, 24*60*60, "/", "", false, true)
	}

	c.JSON(http.StatusOK, userPayload(user))
}

// Logout tears the session down: cookie gone, remember token revoked.
func Logout(c *gin.Context) {
	if tokenString, err := c.Cookie("token"); err == nil {
		if claims, err := auth.ValidateToken(tokenString); err == nil {
			database.DB.Model(&models.User{}).Where("id = ?", claims.UserID).Update("remember_token", "")
		}
	}
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.SetCookie("remember_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Berhasil logout"})
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

func Register(c *gin.Context) {
	var input RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Data registrasi tidak valid"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Gagal memproses password"})
		return
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hashedPassword),
		Role:         "user",
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Username atau email sudah terdaftar"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registrasi berhasil", "user": userPayload(user)})
}

func userPayload(user models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"phone":    user.Phone,
		"role":     user.Role,
	}
}
