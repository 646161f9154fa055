package auth

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"restaurant.GO/config"
)

// Middleware returns the auth middleware based on AUTH_TYPE env var.
// There is no real user store; identity for auditing is taken from the
// authenticated username (or X-Actor header) by the API layer.
func Middleware() echo.MiddlewareFunc {
	skipper := buildSkipper()
	switch os.Getenv("AUTH_TYPE") {
	case "key":
		return keyAuth(skipper)
	default:
		return basicAuth(skipper)
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

func basicAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			if username == os.Getenv("API_USER") && password == os.Getenv("API_PASS") {
				c.Set("actor", username)
				return true, nil
			}
			return false, nil
		},
		Skipper: skipper,
	})
}

func keyAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	apiKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			return key == apiKey, nil
		},
		Skipper: skipper,
	})
}

// Actor resolves the audit identity for a request: authenticated user,
// then X-Actor header, then the default admin identity.
func Actor(c echo.Context) string {
	if v, ok := c.Get("actor").(string); ok && v != "" {
		return v
	}
	if v := c.Request().Header.Get("X-Actor"); v != "" {
		return v
	}
	return "admin"
}
