package main

import (
	"log"
	"os"
	"time"

	"go-travel-api/internal/cache"
	"go-travel-api/internal/database"
	"go-travel-api/internal/handlers"
	"go-travel-api/internal/middleware"
	"go-travel-api/internal/payment"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found")
	}

	database.Connect()
	cache.Connect()
	payment.Connect()

	// Upload targets must exist before the first multipart request
	os.MkdirAll("./uploads/wisata", 0o755)
	os.MkdirAll("./uploads/config", 0o755)

	r := gin.Default()

	// The SPA sends every request withCredentials, so the CORS config
	// must name its origin explicitly and allow cookies.
	frontendOrigin := os.Getenv("FRONTEND_ORIGIN")
	if frontendOrigin == "" {
		frontendOrigin = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })

	// --- PUBLIC: Session ---
	r.POST("/login", handlers.Login)
	r.GET("/me", handlers.Me)
	r.DELETE("/logout", handlers.Logout)

	// --- FEATURE FLAG: Open Registration ---
	if os.Getenv("ALLOW_REGISTRATION") == "true" {
		r.POST("/register", handlers.Register)
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("🔒 Registration route is safely DISABLED.")
	}

	// --- PUBLIC: Catalog & landing content ---
	r.GET("/getwisata", handlers.GetWisata)
	r.GET("/getwisata/:id", handlers.GetWisataByID)
	r.GET("/getkategori", handlers.GetKategori)
	r.GET("/getkategori/:id", handlers.GetKategoriByID)
	r.GET("/getkonfigurasi", handlers.GetKonfigurasi)
	r.GET("/getslide", handlers.GetSlides)
	r.GET("/getslide/:id", handlers.GetSlideByID)

	// --- PUBLIC: Payment gateway webhook (signature-checked inside) ---
	r.POST("/midtrans/notification", handlers.MidtransNotification)

	// Uploaded images. The SPA uses both the bare and the /public prefix.
	r.Static("/uploads", "./uploads")
	r.Static("/public/uploads", "./uploads")

	// --- PROTECTED ROUTES: Booking & payment flow ---
	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.POST("/createbooking", handlers.CreateBooking)
		authorized.GET("/getbooking", handlers.GetBookings)
		authorized.GET("/getbooking/:id", handlers.GetBookingByID)
		authorized.POST("/createTransaksi", handlers.CreateTransaksi)
		authorized.GET("/gettransaksibybookingid/:bookingId", handlers.GetTransaksiByBookingID)
		authorized.GET("/gettransaksibyid/:bookingId", handlers.GetTransaksiByBookingID) // Legacy alias
		authorized.PUT("/updateProfile/:id", handlers.UpdateProfile)

		// --- ADMIN ONLY ---
		admin := authorized.Group("/")
		admin.Use(middleware.RequireRole("admin", "superadmin"))
		{
			admin.POST("/createwisata", handlers.CreateWisata)
			admin.PUT("/updatewisata/:id", handlers.UpdateWisata)
			admin.DELETE("/deletewisata/:id", handlers.DeleteWisata)

			admin.POST("/createKategori", handlers.CreateKategori)
			admin.PUT("/updatekategori/:id", handlers.UpdateKategori)
			admin.DELETE("/deletekategori/:id", handlers.DeleteKategori)

			admin.PUT("/updatekonfigurasi", handlers.UpdateKonfigurasi)

			admin.POST("/createslide", handlers.CreateSlide)
			admin.PUT("/updateslide/:id", handlers.UpdateSlide)
			admin.DELETE("/deleteslide/:id", handlers.DeleteSlide)

			admin.GET("/getuser", handlers.GetUsers)
			admin.DELETE("/deleteuser/:id", handlers.DeleteUser)
			admin.DELETE("/deletebooking/:id", handlers.DeleteBooking)

			admin.GET("/getreport", handlers.GetReport)
			admin.POST("/ask", handlers.AskAI)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Server starting on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
