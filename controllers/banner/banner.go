package bannerControllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/4vald/Shop-Project-EKEB/models"
)

// GET /banners — active hero banners in display order.
func GetBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.HeroBanner
		if err := db.Where("active = ?", true).
			Order("display_order ASC").
			Find(&banners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get banners"})
			return
		}
		c.JSON(http.StatusOK, banners)
	}
}

// GET /admin/banners — everything, including inactive.
func GetAllBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.HeroBanner
		if err := db.Order("display_order ASC").Find(&banners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get banners"})
			return
		}
		c.JSON(http.StatusOK, banners)
	}
}

// POST /admin/banners — multipart upload, image saved under uploadDir and
// referenced by URL only.
func UploadBanner(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
			return
		}

		if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		origName := fileHeader.Filename
		ext := filepath.Ext(origName)
		baseName := strings.TrimSuffix(origName, ext)

		// Strip duplicate extensions like ".jpg.jpg"
		for {
			e := filepath.Ext(baseName)
			if e == ".jpg" || e == ".jpeg" || e == ".png" || e == ".gif" {
				baseName = strings.TrimSuffix(baseName, e)
			} else {
				break
			}
		}
		baseName = strings.ReplaceAll(baseName, " ", "_")

		newFileName := fmt.Sprintf("%d_%s%s", time.Now().Unix(), baseName, ext)
		savePath := filepath.Join(uploadDir, newFileName)

		if err := c.SaveUploadedFile(fileHeader, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}

		displayOrder, _ := strconv.Atoi(c.DefaultPostForm("display_order", "0"))
		var saleID *uint
		if s := c.PostForm("sale_id"); s != "" {
			if id, err := strconv.ParseUint(s, 10, 64); err == nil {
				sid := uint(id)
				saleID = &sid
			}
		}

		banner := models.HeroBanner{
			ImageURL:     fmt.Sprintf("/uploads/banners/%s", newFileName),
			DisplayOrder: displayOrder,
			Active:       true,
			SaleID:       saleID,
		}
		if err := db.Create(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DB save failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Banner uploaded", "data": banner})
	}
}

type bannerUpdateInput struct {
	DisplayOrder *int  `json:"display_order"`
	Active       *bool `json:"active"`
	SaleID       *uint `json:"sale_id"`
}

// PUT /admin/banners/:id — reorder / toggle / relink.
func UpdateBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var banner models.HeroBanner
		if err := db.First(&banner, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		var input bannerUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.DisplayOrder != nil {
			banner.DisplayOrder = *input.DisplayOrder
		}
		if input.Active != nil {
			banner.Active = *input.Active
		}
		if input.SaleID != nil {
			banner.SaleID = input.SaleID
		}
		if err := db.Save(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update banner"})
			return
		}
		c.JSON(http.StatusOK, banner)
	}
}

// DELETE /admin/banners/:id — removes the DB record and the local file.
func DeleteBanner(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var banner models.HeroBanner

		if err := db.First(&banner, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if banner.ImageURL != "" {
			localPath := filepath.Join(uploadDir, filepath.Base(banner.ImageURL))
			if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
				return
			}
		}

		if err := db.Delete(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete from database"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Banner deleted"})
	}
}
