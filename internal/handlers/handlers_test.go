package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront-admin/internal/hash"
	"github.com/Skotchmaster/storefront-admin/internal/models"
	"github.com/Skotchmaster/storefront-admin/internal/service/token"
)

var testSecret = []byte("test_secret")

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
	A  *AuthHandler
	P  *ProductHandler
	C  *CouponHandler
	S  *SettingsHandler
}

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Coupon{}, &models.FeatureBanner{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := InitTestDB(t)
	tokens := &token.Service{DB: db, JWTSecret: testSecret}

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		A:  &AuthHandler{DB: db, Tokens: tokens},
		P:  &ProductHandler{DB: db},
		C:  &CouponHandler{DB: db},
		S:  &SettingsHandler{DB: db},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) doFormRequest(method, path string, fields map[string]string) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) createUser(email, password string, role models.Role) *models.User {
	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	user := models.User{
		Name:         "test_user",
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return &user
}

func cookieValue(rec *httptest.ResponseRecorder, name string) string {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}
