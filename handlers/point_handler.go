package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"touristpoints-service/storage"
	"touristpoints-service/store"

	"github.com/gin-gonic/gin"
)

// Uploads larger than this are rejected before anything touches disk.
const MaxUploadBytes = 5 << 20

type PointHandler struct {
	Store   *store.PointStore
	Storage *storage.FileStorage
}

func NewPointHandler(s *store.PointStore, fs *storage.FileStorage) *PointHandler {
	return &PointHandler{Store: s, Storage: fs}
}

func (h *PointHandler) CreateTouristPoint(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")

	if name == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and description are required"})
		return
	}

	latStr := c.PostForm("latitude")
	lngStr := c.PostForm("longitude")
	if (latStr == "") != (lngStr == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude must be supplied together"})
		return
	}

	var latitude, longitude *float64
	if latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude"})
			return
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude"})
			return
		}
		latitude = &lat
		longitude = &lng
	}

	var photo *string
	file, err := c.FormFile("photo")
	if err == nil {
		if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "only image uploads are allowed"})
			return
		}
		if file.Size > MaxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "photo exceeds the 5MB upload limit"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo upload"})
			return
		}
		defer src.Close()

		ref, err := h.Storage.Store(src, file.Filename)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save photo"})
			return
		}
		photo = &ref
	} else if !errors.Is(err, http.ErrMissingFile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo upload"})
		return
	}

	point := h.Store.Add(name, description, photo, latitude, longitude)

	c.JSON(http.StatusCreated, point)
}

func (h *PointHandler) GetAllTouristPoints(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.All())
}

func (h *PointHandler) SearchTouristPoints(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.FilterByName(c.Query("name")))
}

func (h *PointHandler) DeleteTouristPoint(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tourist point ID"})
		return
	}

	if !h.Store.RemoveByID(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tourist point not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tourist point deleted"})
}
