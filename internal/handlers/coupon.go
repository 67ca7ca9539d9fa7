package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront-admin/internal/logging"
	"github.com/Skotchmaster/storefront-admin/internal/models"
)

type CouponHandler struct {
	DB *gorm.DB
}

func (h *CouponHandler) CreateCoupon(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon_create")

	var req struct {
		Code            string    `json:"code"`
		DiscountPercent int       `json:"discountPercent"`
		StartDate       time.Time `json:"startDate"`
		EndDate         time.Time `json:"endDate"`
		UsageLimit      int       `json:"usageLimit"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Code == "" {
		return fail(c, http.StatusBadRequest, "code is required")
	}
	if req.DiscountPercent <= 0 || req.DiscountPercent > 100 {
		return fail(c, http.StatusBadRequest, "discount percent must be between 1 and 100")
	}

	coupon := models.Coupon{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		UsageLimit:      req.UsageLimit,
	}
	if err := h.DB.WithContext(ctx).Create(&coupon).Error; err != nil {
		l.Error("coupon_create_error", "error", err)
		return fail(c, http.StatusInternalServerError, "failed to create coupon")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "coupon created successfully",
		"coupon":  coupon,
	})
}

func (h *CouponHandler) GetCoupons(c echo.Context) error {
	var coupons []models.Coupon
	if err := h.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "failed to list coupons")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"coupons": coupons,
	})
}

func (h *CouponHandler) DeleteCoupon(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid coupon id")
	}

	var coupon models.Coupon
	if err := h.DB.WithContext(ctx).First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "coupon not found")
		}
		return fail(c, http.StatusInternalServerError, "failed to delete coupon")
	}

	if err := h.DB.WithContext(ctx).Delete(&models.Coupon{}, id).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "failed to delete coupon")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "coupon deleted successfully",
		"id":      coupon.ID,
	})
}
