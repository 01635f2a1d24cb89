package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ErrorHandler logs errors that escape a handler and answers with the same
// {success, message} shape the endpoints use, so nothing internal leaks to
// the operator.
func ErrorHandler() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"method": c.Request().Method,
					"path":   c.Request().URL.Path,
				}).Error("Unhandled request error: ", err)
				return c.JSON(http.StatusInternalServerError, map[string]interface{}{
					"success": false,
					"message": "failed to process request",
				})
			}
			return nil
		}
	}
}
