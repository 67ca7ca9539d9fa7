package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront-admin/internal/imagestore"
	"github.com/Skotchmaster/storefront-admin/internal/logging"
	"github.com/Skotchmaster/storefront-admin/internal/models"
	"github.com/Skotchmaster/storefront-admin/internal/mykafka"
	"github.com/Skotchmaster/storefront-admin/internal/service/search"
	"github.com/Skotchmaster/storefront-admin/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	Images   *imagestore.Client
	ES       *elasticsearch.Client
	Index    string
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (h *ProductHandler) index(c echo.Context, p *models.Product) {
	if h.ES == nil {
		return
	}
	if err := search.IndexProduct(c.Request().Context(), h.ES, h.Index, p); err != nil {
		logging.FromContext(c.Request().Context()).Warn("es index failed", "product_id", p.ID, "error", err)
	}
}

// CreateProduct accepts a multipart form: product fields plus up to five
// files under "images" that go to the image host first.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_create")

	name := c.FormValue("name")
	if name == "" {
		return fail(c, http.StatusBadRequest, "name is required")
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid price")
	}

	var imageURLs []string
	if h.Images != nil {
		imageURLs, err = uploadImages(c, h.Images, "ecommerce")
		if err != nil {
			l.Error("image upload failed", "error", err)
			return fail(c, http.StatusInternalServerError, "image upload failed")
		}
	}

	prod := models.Product{
		Name:        name,
		Brand:       c.FormValue("brand"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Gender:      c.FormValue("gender"),
		Sizes:       splitCSV(c.FormValue("sizes")),
		Colors:      splitCSV(c.FormValue("colors")),
		Price:       price,
		Stock:       parseIntDefault(c.FormValue("stock"), 0),
		Images:      imageURLs,
	}

	if err := h.DB.WithContext(ctx).Create(&prod).Error; err != nil {
		l.Error("product_create_error", "error", err)
		return fail(c, http.StatusInternalServerError, "failed to create product")
	}

	h.index(c, &prod)
	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]interface{}{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "failed to list products")
	}

	var items []models.Product
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "failed to list products")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": items,
		"meta": map[string]interface{}{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	var prod models.Product
	if err := h.DB.First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "product not found")
		}
		return fail(c, http.StatusInternalServerError, "failed to fetch product")
	}

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	var req struct {
		Name        string   `json:"name"`
		Brand       string   `json:"brand"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Gender      string   `json:"gender"`
		Sizes       []string `json:"sizes"`
		Colors      []string `json:"colors"`
		Price       float64  `json:"price"`
		Stock       int      `json:"stock"`
		Rating      float64  `json:"rating"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	var prod models.Product
	if err := h.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "product not found")
		}
		return fail(c, http.StatusInternalServerError, "failed to update product")
	}

	prod.Name = req.Name
	prod.Brand = req.Brand
	prod.Description = req.Description
	prod.Category = req.Category
	prod.Gender = req.Gender
	prod.Sizes = req.Sizes
	prod.Colors = req.Colors
	prod.Price = req.Price
	prod.Stock = req.Stock
	prod.Rating = req.Rating

	if err := h.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "failed to update product")
	}

	h.index(c, &prod)
	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]interface{}{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	var prod models.Product
	if err := h.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "product not found")
		}
		return fail(c, http.StatusInternalServerError, "failed to delete product")
	}

	if err := h.DB.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "failed to delete product")
	}

	if h.ES != nil {
		if err := search.DeleteProduct(ctx, h.ES, h.Index, prod.ID); err != nil {
			logging.FromContext(ctx).Warn("es delete failed", "product_id", prod.ID, "error", err)
		}
	}
	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]interface{}{
		"type":      "product_deleted",
		"productID": prod.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "product deleted successfully",
		"product": prod,
	})
}
