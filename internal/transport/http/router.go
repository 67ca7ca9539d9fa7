package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront-admin/internal/handlers"
	authmw "github.com/Skotchmaster/storefront-admin/internal/middleware/auth"
)

type Deps struct {
	DB              *gorm.DB
	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	CouponHandler   *handlers.CouponHandler
	SettingsHandler *handlers.SettingsHandler
	SearchHandler   *handlers.SearchHandler
	Auth            *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.POST("/logout", d.AuthHandler.LogOut)

	products := api.Group("/products", d.Auth.Authenticate)
	products.GET("/search", d.SearchHandler.Search)
	products.POST("", d.ProductHandler.CreateProduct, authmw.RequireSuperAdmin)
	products.GET("", d.ProductHandler.GetProducts, authmw.RequireSuperAdmin)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, authmw.RequireSuperAdmin)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, authmw.RequireSuperAdmin)

	coupons := api.Group("/coupons", d.Auth.Authenticate, authmw.RequireSuperAdmin)
	coupons.POST("", d.CouponHandler.CreateCoupon)
	coupons.GET("", d.CouponHandler.GetCoupons)
	coupons.DELETE("/:id", d.CouponHandler.DeleteCoupon)

	settings := api.Group("/settings", d.Auth.Authenticate)
	settings.POST("/banners", d.SettingsHandler.AddBanners, authmw.RequireSuperAdmin)
	settings.GET("/banners", d.SettingsHandler.GetBanners)
	settings.POST("/featured", d.SettingsHandler.UpdateFeaturedProducts, authmw.RequireSuperAdmin)
	settings.GET("/featured", d.SettingsHandler.GetFeaturedProducts)
}
