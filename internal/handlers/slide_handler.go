package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-travel-api/internal/cache"
	"go-travel-api/internal/database"
	"go-travel-api/internal/models"

	"github.com/gin-gonic/gin"
)

func GetSlides(c *gin.Context) {
	if body, ok := cache.Get("/getslide"); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	var slides []models.Slide
	if err := database.DB.Order("urutan asc").Find(&slides).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memuat data slide"})
		return
	}

	body, err := json.Marshal(gin.H{"data": slides})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memuat data slide"})
		return
	}
	cache.Set("/getslide", body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func GetSlideByID(c *gin.Context) {
	var slide models.Slide
	if err := database.DB.First(&slide, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Slide tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": slide})
}

// bindSlideForm reads the multipart fields shared by create and update.
func bindSlideForm(c *gin.Context, slide *models.Slide) error {
	if v := c.PostForm("konfigurasiId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		slide.KonfigurasiID = uint(id)
	}
	if v := c.PostForm("deskripsi"); v != "" {
		slide.Deskripsi = v
	}
	if v := c.PostForm("urutan"); v != "" {
		urutan, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		slide.Urutan = urutan
	}
	return nil
}

func CreateSlide(c *gin.Context) {
	var slide models.Slide
	if err := bindSlideForm(c, &slide); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Data slide tidak valid"})
		return
	}

	filename, err := saveUpload(c, "urlGambar", "config")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Gambar slide wajib diunggah"})
		return
	}
	slide.URLGambar = filename

	if err := database.DB.Create(&slide).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menyimpan slide"})
		return
	}

	cache.Invalidate("/getslide")
	c.JSON(http.StatusCreated, gin.H{"message": "Slide berhasil dibuat", "data": slide})
}

func UpdateSlide(c *gin.Context) {
	var slide models.Slide
	if err := database.DB.First(&slide, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Slide tidak ditemukan"})
		return
	}

	if err := bindSlideForm(c, &slide); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Data slide tidak valid"})
		return
	}

	if filename, err := saveUpload(c, "urlGambar", "config"); err == nil {
		slide.URLGambar = filename
	}

	if err := database.DB.Save(&slide).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui slide"})
		return
	}

	cache.Invalidate("/getslide")
	c.JSON(http.StatusOK, gin.H{"message": "Slide berhasil diperbarui", "data": slide})
}

func DeleteSlide(c *gin.Context) {
	if err := database.DB.Delete(&models.Slide{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Slide tidak dapat dihapus"})
		return
	}

	cache.Invalidate("/getslide")
	c.JSON(http.StatusOK, gin.H{"message": "Slide berhasil dihapus"})
}
