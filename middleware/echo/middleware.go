package echomw

import (
	"github.com/labstack/echo/v4"

	"github.com/reoring/valchain/middleware"
)

// ValidateJSON decodes the request JSON into T, runs validate over it and
// stores the validated value in the request context. Undecodable bodies get
// 400 and validation failures 422, both with the middleware error payload.
func ValidateJSON[T any](validate middleware.ValidateFunc[T], opt ...middleware.Options) echo.MiddlewareFunc {
	var o middleware.Options
	if len(opt) > 0 {
		o = opt[0]
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, _, err := middleware.Bind(c.Request().Context(), c.Request().Body, validate, o)
			if err != nil {
				return c.JSON(middleware.StatusOf(err), middleware.ErrorPayload(err))
			}
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetValidated fetches the validated T from echo.Context.
func GetValidated[T any](c echo.Context) (T, bool) {
	return middleware.ValidatedFromContext[T](c.Request().Context())
}
