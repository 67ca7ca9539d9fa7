package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront-admin/internal/models"
)

func TestCreateCoupon(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/coupons", map[string]interface{}{
		"code":            "SALE20",
		"discountPercent": 20,
		"startDate":       time.Now().Format(time.RFC3339),
		"endDate":         time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"usageLimit":      100,
	})
	require.NoError(t, env.C.CreateCoupon(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool          `json:"success"`
		Coupon  models.Coupon `json:"coupon"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "SALE20", resp.Coupon.Code)
	require.Equal(t, 20, resp.Coupon.DiscountPercent)
	require.Equal(t, 0, resp.Coupon.UsageCount)
}

func TestCreateCouponValidation(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/coupons", map[string]interface{}{
		"discountPercent": 20,
	})
	require.NoError(t, env.C.CreateCoupon(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec2, c2 := env.doJSONRequest(http.MethodPost, "/api/coupons", map[string]interface{}{
		"code":            "SALE200",
		"discountPercent": 200,
	})
	require.NoError(t, env.C.CreateCoupon(c2))
	require.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestGetCoupons(t *testing.T) {
	env := newTestEnv(t)

	first := models.Coupon{Code: "FIRST", DiscountPercent: 5, CreatedAt: time.Now().Add(-time.Hour)}
	second := models.Coupon{Code: "SECOND", DiscountPercent: 10, CreatedAt: time.Now()}
	require.NoError(t, env.DB.Create(&first).Error)
	require.NoError(t, env.DB.Create(&second).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/coupons", nil)
	require.NoError(t, env.C.GetCoupons(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Coupons []models.Coupon `json:"coupons"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Coupons, 2)
	require.Equal(t, "SECOND", resp.Coupons[0].Code, "newest coupon first")
}

func TestDeleteCoupon(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.DB.Create(&models.Coupon{Code: "GONE", DiscountPercent: 5}).Error)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/coupons/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.C.DeleteCoupon(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.Coupon{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestDeleteCouponNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/coupons/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, env.C.DeleteCoupon(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
