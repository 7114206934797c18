package handlers

import (
	"encoding/json"
	"net/http"

	"go-travel-api/internal/cache"
	"go-travel-api/internal/database"
	"go-travel-api/internal/models"

	"github.com/gin-gonic/gin"
)

// Konfigurasi is a singleton: the landing page reads it, admins update
// it. There is no create or delete; the first update brings the row to
// life.

func GetKonfigurasi(c *gin.Context) {
	if body, ok := cache.Get("/getkonfigurasi"); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	var konfigurasi models.Konfigurasi
	if err := database.DB.First(&konfigurasi).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Konfigurasi belum diatur"})
		return
	}

	body, err := json.Marshal(gin.H{"data": konfigurasi})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memuat konfigurasi"})
		return
	}
	cache.Set("/getkonfigurasi", body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// --- PUT: Update site branding (admin, multipart) ---
func UpdateKonfigurasi(c *gin.Context) {
	var konfigurasi models.Konfigurasi
	// Singleton: update the existing row or create the first one
	database.DB.First(&konfigurasi)

	if v := c.PostForm("namaTravel"); v != "" {
		konfigurasi.NamaTravel = v
	}
	if v := c.PostForm("alamatTravel"); v != "" {
		konfigurasi.AlamatTravel = v
	}
	if v := c.PostForm("noTelpTravel"); v != "" {
		konfigurasi.NoTelpTravel = v
	}
	if v := c.PostForm("email"); v != "" {
		konfigurasi.Email = v
	}
	if v := c.PostForm("text"); v != "" {
		konfigurasi.Text = v
	}
	if v := c.PostForm("tentangKami"); v != "" {
		konfigurasi.TentangKami = v
	}
	if v := c.PostForm("footer"); v != "" {
		konfigurasi.Footer = v
	}

	if filename, err := saveUpload(c, "logoTravel", "config"); err == nil {
		konfigurasi.LogoTravel = filename
	}
	if filename, err := saveUpload(c, "background", "config"); err == nil {
		konfigurasi.Background = filename
	}

	if err := database.DB.Save(&konfigurasi).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menyimpan konfigurasi"})
		return
	}

	cache.Invalidate("/getkonfigurasi", "/getslide")
	c.JSON(http.StatusOK, gin.H{"message": "Konfigurasi berhasil diperbarui", "data": konfigurasi})
}
