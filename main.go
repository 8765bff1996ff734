package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stego-studio-backend/handlers"
)

func main() {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	config.ExposeHeaders = []string{"X-Stego-Algorithm", "X-Stego-PSNR", "X-Stego-Detected-Type", "Content-Disposition"}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	stegoHandler := handlers.NewStegoHandler()

	// API Routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		stegoGroup := api.Group("/stego")
		{
			stegoGroup.POST("/embed", stegoHandler.EmbedMessage)
			stegoGroup.POST("/extract", stegoHandler.ExtractMessage)
			stegoGroup.POST("/capacity", stegoHandler.CarrierCapacity)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("API endpoints:")
	log.Printf("  POST /api/v1/stego/embed    - Hide a file inside a WAV/MP3 carrier (returns stego WAV)")
	log.Printf("  POST /api/v1/stego/extract  - Recover the hidden file from a stego WAV")
	log.Printf("  POST /api/v1/stego/capacity - Report payload capacity per algorithm")
	log.Printf("  GET  /api/v1/health         - Health check")
	log.Printf("")
	log.Printf("Algorithms:")
	log.Printf("  • LSB             - 1 bit per sample, maximum capacity")
	log.Printf("  • Echo Hiding     - 1 bit per chunk, detected via cepstrum")
	log.Printf("  • Phase Coding    - 8 bits per 256-sample segment")
	log.Printf("  • Spread Spectrum - 1 bit per 8192-sample frame, PN correlation")
	log.Printf("")
	log.Printf("  Stego output is always WAV; the decoder needs nothing but the file itself")

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
