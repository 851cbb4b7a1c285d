package ginmw

import (
	"github.com/gin-gonic/gin"

	"github.com/reoring/valchain/middleware"
)

// ValidateJSON decodes the request JSON into T, runs validate over it and
// stores the validated value in the request context. On failure it aborts
// with 400 (undecodable body) or 422 (validation failure).
func ValidateJSON[T any](validate middleware.ValidateFunc[T], opt ...middleware.Options) gin.HandlerFunc {
	var o middleware.Options
	if len(opt) > 0 {
		o = opt[0]
	}
	return func(c *gin.Context) {
		ctx, _, err := middleware.Bind(c.Request.Context(), c.Request.Body, validate, o)
		if err != nil {
			c.AbortWithStatusJSON(middleware.StatusOf(err), middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetValidated fetches the validated T from gin.Context.
func GetValidated[T any](c *gin.Context) (T, bool) {
	return middleware.ValidatedFromContext[T](c.Request.Context())
}
