package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
)

const contextTokenKey = "identityToken"

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	IsDemo bool   `json:"is_demo,omitempty"`
}

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

func getIdentityClaims(ident auth.Identity, conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   ident.ID,
			Audience:  "Avocop",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email:  ident.Email,
		Name:   ident.Name,
		Role:   ident.Role,
		IsDemo: ident.IsDemo,
	}
}

// GenerateToken generates a signed JWT token string representing the identity Claims.
func GenerateToken(claims *Claims, conf *core.Config) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// identityMiddleware rebuilds the request identity from verified JWT claims
// and injects it into the request context for the services layer.
func identityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			ident := auth.Identity{
				ID:     claims.Subject,
				Email:  claims.Email,
				Role:   claims.Role,
				Name:   claims.Name,
				IsDemo: claims.IsDemo,
			}
			req := ctx.Request()
			ctx.SetRequest(req.WithContext(auth.ContextWithIdentity(req.Context(), ident)))
			return next(ctx)
		}
	}
}

func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ident, ok := auth.IdentityFromContext(ctx.Request().Context())
			if !ok {
				return errUnauthorized
			}
			if !ident.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, core.ErrAdminRequired.Error())
			}
			return next(ctx)
		}
	}
}
