package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront-admin/internal/imagestore"
	"github.com/Skotchmaster/storefront-admin/internal/logging"
	"github.com/Skotchmaster/storefront-admin/internal/mykafka"
)

const maxUploadImages = 5

func CreateCookie(name, value, path string, exp time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func DeleteCookie(name, path string, secure bool) *http.Cookie {
	return CreateCookie(name, "", path, time.Now().Add(-1*time.Hour), secure)
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{
		"success": false,
		"error":   msg,
	})
}

// publish is best effort: a lost event must never fail the request.
func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]interface{}) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("kafka publish failed", "topic", topic, "error", err)
	}
}

// uploadImages pushes every file from the "images" multipart field to the
// image host and returns their public URLs. At most maxUploadImages files are
// taken; the rest of the form is ignored.
func uploadImages(c echo.Context, store *imagestore.Client, folder string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	files := form.File["images"]
	if len(files) > maxUploadImages {
		files = files[:maxUploadImages]
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := uploadOne(c.Request().Context(), store, folder, fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func uploadOne(ctx context.Context, store *imagestore.Client, folder string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return store.Upload(ctx, folder, fh.Filename, fh.Header.Get("Content-Type"), src, fh.Size)
}
