package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/contesthub/contest-api/internal/api/handler/v1/response"
	"github.com/contesthub/contest-api/internal/pkg/jwthelper"
)

// ContextUserID is the gin context key holding the authenticated user's id.
const ContextUserID = "userID"

var errMissingToken = errors.New("missing bearer token")

type Authenticator struct {
	key []byte
}

func NewAuthenticator(key string) *Authenticator {
	return &Authenticator{key: []byte(key)}
}

// VerifyJWT rejects requests without a valid bearer token and stores the
// token's user id in the context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.RenderErr(ctx, response.ErrNotAuthenticated(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.key, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrNotAuthenticated(jwthelper.ErrInvalidToken))
			return
		}

		ctx.Set(ContextUserID, claims.UserID)
		ctx.Next()
	}
}
