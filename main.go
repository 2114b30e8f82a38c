package main

import (
	"log"
	"os"

	"touristpoints-service/handlers"
	"touristpoints-service/storage"
	"touristpoints-service/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or failed to load it:", err)
	}

	addr := os.Getenv("TOURIST_POINTS_ADDR")
	if addr == "" {
		addr = ":3000"
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	fileStorage := storage.New(uploadDir)
	if err := fileStorage.EnsureDir(); err != nil {
		log.Fatal(err)
	}

	pointStore := store.NewPointStore()
	handler := handlers.NewPointHandler(pointStore, fileStorage)

	r := gin.Default()

	r.Static("/uploads", uploadDir)

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.POST("/tourist-points", handler.CreateTouristPoint)
	r.GET("/tourist-points", handler.GetAllTouristPoints)
	r.GET("/tourist-points/search", handler.SearchTouristPoints)
	r.DELETE("/tourist-points/:id", handler.DeleteTouristPoint)

	log.Println("Tourist point service listening on", addr)
	log.Println("Uploads directory:", uploadDir)

	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
