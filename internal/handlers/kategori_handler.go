package handlers

import (
	"encoding/json"
	"net/http"

	"go-travel-api/internal/cache"
	"go-travel-api/internal/database"
	"go-travel-api/internal/models"

	"github.com/gin-gonic/gin"
)

type KategoriRequest struct {
	Nama string `json:"nama" binding:"required"`
}

func GetKategori(c *gin.Context) {
	if body, ok := cache.Get("/getkategori"); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	var kategoris []models.Kategori
	if err := database.DB.Find(&kategoris).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memuat data kategori"})
		return
	}

	body, err := json.Marshal(gin.H{"data": kategoris})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memuat data kategori"})
		return
	}
	cache.Set("/getkategori", body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func GetKategoriByID(c *gin.Context) {
	var kategori models.Kategori
	if err := database.DB.First(&kategori, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Kategori tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": kategori})
}

func CreateKategori(c *gin.Context) {
	var input KategoriRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nama kategori wajib diisi"})
		return
	}

	kategori := models.Kategori{Nama: input.Nama}
	if err := database.DB.Create(&kategori).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Kategori dengan nama tersebut sudah ada"})
		return
	}

	cache.Invalidate("/getwisata", "/getkategori")
	c.JSON(http.StatusCreated, gin.H{"message": "Kategori berhasil dibuat", "data": kategori})
}

func UpdateKategori(c *gin.Context) {
	var kategori models.Kategori
	if err := database.DB.First(&kategori, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Kategori tidak ditemukan"})
		return
	}

	var input KategoriRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nama kategori wajib diisi"})
		return
	}

	kategori.Nama = input.Nama
	if err := database.DB.Save(&kategori).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui kategori"})
		return
	}

	cache.Invalidate("/getwisata", "/getkategori")
	c.JSON(http.StatusOK, gin.H{"message": "Kategori berhasil diperbarui", "data": kategori})
}

func DeleteKategori(c *gin.Context) {
	if err := database.DB.Delete(&models.Kategori{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Kategori tidak dapat dihapus karena masih dipakai wisata"})
		return
	}

	cache.Invalidate("/getwisata", "/getkategori")
	c.JSON(http.StatusOK, gin.H{"message": "Kategori berhasil dihapus"})
}
