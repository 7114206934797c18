package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-travel-api/internal/booking"
	"go-travel-api/internal/cache"
	"go-travel-api/internal/database"
	"go-travel-api/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: List all travel packages (public, cached) ---
func GetWisata(c *gin.Context) {
	if body, ok := cache.Get("/getwisata"); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	var wisatas []models.Wisata
	if err := database.DB.Preload("Kategori").Find(&wisatas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memuat data wisata"})
		return
	}

	body, err := json.Marshal(gin.H{"data": wisatas})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memuat data wisata"})
		return
	}
	cache.Set("/getwisata", body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// --- GET: One package, with the server-computed remaining capacity ---
// Clients used to derive this by downloading the whole booking table;
// now the seat math lives here, next to the data.
func GetWisataByID(c *gin.Context) {
	id := c.Param("id")

	var wisata models.Wisata
	if err := database.DB.Preload("Kategori").First(&wisata, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Data wisata tidak ditemukan"})
		return
	}

	var bookings []models.Booking
	if err := database.DB.Where("wisata_id = ?", wisata.ID).Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memuat data booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":          wisata,
		"sisaKapasitas": booking.Remaining(wisata, bookings),
	})
}

// bindWisataForm reads the multipart fields shared by create and update.
func bindWisataForm(c *gin.Context, wisata *models.Wisata) error {
	if v := c.PostForm("nama"); v != "" {
		wisata.Nama = v
	}
	if v := c.PostForm("deskripsi"); v != "" {
		wisata.Deskripsi = v
	}
	if v := c.PostForm("lokasi"); v != "" {
		wisata.Lokasi = v
	}
	if v := c.PostForm("harga"); v != "" {
		harga, err := strconv.ParseFloat(v, 64)
		if err != nil || harga < 0 {
			return fmt.Errorf("harga tidak valid")
		}
		wisata.Harga = harga
	}
	if v := c.PostForm("kapasitas"); v != "" {
		kapasitas, err := strconv.Atoi(v)
		if err != nil || kapasitas < 1 {
			return fmt.Errorf("kapasitas harus lebih dari 0")
		}
		wisata.Kapasitas = kapasitas
	}
	if v := c.PostForm("pemberangkatan"); v != "" {
		tanggal, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fmt.Errorf("tanggal pemberangkatan tidak valid")
		}
		wisata.Pemberangkatan = tanggal
	}
	if v := c.PostForm("status"); v != "" {
		wisata.Status = v
	}
	if v := c.PostForm("kategoriId"); v != "" {
		kategoriID, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("kategori tidak valid")
		}
		wisata.KategoriID = uint(kategoriID)
	}
	return nil
}

// saveUpload stores a multipart file under uploads/<dir> with a unique name.
func saveUpload(c *gin.Context, field, dir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%d_%s", time.Now().Unix(), file.Filename)
	if err := c.SaveUploadedFile(file, "./uploads/"+dir+"/"+filename); err != nil {
		return "", err
	}
	return filename, nil
}

// --- POST: Add a new package (admin, multipart) ---
func CreateWisata(c *gin.Context) {
	var wisata models.Wisata
	if err := bindWisataForm(c, &wisata); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if wisata.Nama == "" || wisata.Kapasitas < 1 || wisata.Harga <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nama, harga, dan kapasitas wajib diisi"})
		return
	}

	if filename, err := saveUpload(c, "image", "wisata"); err == nil {
		wisata.Gambar = filename
	}

	if err := database.DB.Create(&wisata).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menyimpan data wisata"})
		return
	}

	cache.Invalidate("/getwisata")
	c.JSON(http.StatusCreated, gin.H{"message": "Data wisata berhasil dibuat", "data": wisata})
}

// --- PUT: Update a package (admin, partial multipart) ---
func UpdateWisata(c *gin.Context) {
	id := c.Param("id")

	var wisata models.Wisata
	if err := database.DB.First(&wisata, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Data wisata tidak ditemukan"})
		return
	}

	if err := bindWisataForm(c, &wisata); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if filename, err := saveUpload(c, "image", "wisata"); err == nil {
		wisata.Gambar = filename
	}

	if err := database.DB.Save(&wisata).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui data wisata"})
		return
	}

	cache.Invalidate("/getwisata")
	c.JSON(http.StatusOK, gin.H{"message": "Data wisata berhasil diperbarui", "data": wisata})
}

// --- DELETE: Remove a package (admin) ---
func DeleteWisata(c *gin.Context) {
	id := c.Param("id")

	if err := database.DB.Delete(&models.Wisata{}, id).Error; err != nil {
		// Usually a foreign key constraint from existing bookings
		c.JSON(http.StatusBadRequest, gin.H{"message": "Wisata tidak dapat dihapus karena masih memiliki booking"})
		return
	}

	cache.Invalidate("/getwisata")
	c.JSON(http.StatusOK, gin.H{"message": "Data wisata berhasil dihapus"})
}
