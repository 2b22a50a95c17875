package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/interfaces/http/dto"
)

// RequireRoles aborts with 403 unless the authenticated user holds one of the
// given roles. The error payload carries a redirect hint pointing at the
// landing page for the user's actual role, so the frontend can route the
// user back to their own area instead of a dead end.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		actual, err := identity.ParseRole(GetJWTRole(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("UNAUTHORIZED", "Authentication required"))
			return
		}

		if _, ok := allowed[actual]; !ok {
			resp := dto.NewErrorResponse("FORBIDDEN", "This operation is not available for your role")
			resp.Error.Redirect = actual.LandingPath()
			c.AbortWithStatusJSON(http.StatusForbidden, resp)
			return
		}

		c.Next()
	}
}
