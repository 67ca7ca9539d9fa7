package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront-admin/internal/imagestore"
	"github.com/Skotchmaster/storefront-admin/internal/logging"
	"github.com/Skotchmaster/storefront-admin/internal/models"
)

const maxFeaturedProducts = 8

type SettingsHandler struct {
	DB     *gorm.DB
	Images *imagestore.Client
}

func (h *SettingsHandler) AddBanners(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings_add_banners")

	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		return fail(c, http.StatusBadRequest, "no files uploaded")
	}

	if h.Images == nil {
		return fail(c, http.StatusInternalServerError, "image host is not configured")
	}

	urls, err := uploadImages(c, h.Images, "ecommerce-feature-banners")
	if err != nil {
		l.Error("banner upload failed", "error", err)
		return fail(c, http.StatusInternalServerError, "failed to add feature banner")
	}

	banners := make([]models.FeatureBanner, len(urls))
	for i, url := range urls {
		banners[i] = models.FeatureBanner{ImageURL: url}
	}
	if err := h.DB.WithContext(ctx).Create(&banners).Error; err != nil {
		l.Error("banner create failed", "error", err)
		return fail(c, http.StatusInternalServerError, "failed to add feature banner")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "feature banners added successfully",
		"banners": banners,
	})
}

func (h *SettingsHandler) GetBanners(c echo.Context) error {
	var banners []models.FeatureBanner
	if err := h.DB.Order("created_at DESC").Find(&banners).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "failed to fetch feature banners")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"banners": banners,
	})
}

// UpdateFeaturedProducts replaces the featured set wholesale: everything is
// unfeatured first, then the given ids are flagged, inside one transaction.
func (h *SettingsHandler) UpdateFeaturedProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ProductIDs []uint `json:"productIds"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if len(req.ProductIDs) == 0 || len(req.ProductIDs) > maxFeaturedProducts {
		return fail(c, http.StatusBadRequest, "invalid product ids")
	}

	err := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("is_featured = ?", true).
			Update("is_featured", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).Where("id IN ?", req.ProductIDs).
			Update("is_featured", true).Error
	})
	if err != nil {
		logging.FromContext(ctx).Error("featured update failed", "error", err)
		return fail(c, http.StatusInternalServerError, "failed to update featured products")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "featured products updated successfully",
	})
}

func (h *SettingsHandler) GetFeaturedProducts(c echo.Context) error {
	var products []models.Product
	if err := h.DB.Where("is_featured = ?", true).Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "failed to get featured products")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"featuredProducts": products,
	})
}
