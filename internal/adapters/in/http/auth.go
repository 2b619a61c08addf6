package http

import (
	"errors"
	"net/http"
	"strings"

	"freight/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "freight.actor"

// Claims are issued by the gateway. Subject is the actor id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator turns a gateway-issued HS256 bearer token into a kernel.Actor.
// Tokens are trusted as issued; the core never re-validates the actor.
type Authenticator struct {
	signingKey []byte
	parser     *jwt.Parser
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
		parser:     jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// Middleware rejects requests without a valid token and stores the actor on the
// echo context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := a.authenticate(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Kind:    "unauthorized",
					Message: err.Error(),
				})
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func (a *Authenticator) authenticate(header string) (kernel.Actor, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return kernel.Actor{}, errors.New("missing bearer token")
	}

	var claims Claims
	if _, err := a.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.signingKey, nil
	}); err != nil {
		return kernel.Actor{}, errors.New("invalid token")
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, errors.New("invalid token subject")
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Actor{}, errors.New("invalid token role")
	}
	return kernel.NewActor(id, role)
}

func actorFrom(c echo.Context) kernel.Actor {
	actor, _ := c.Get(actorContextKey).(kernel.Actor)
	return actor
}
