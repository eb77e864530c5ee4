package middleware

import (
	"strings"

	"fuelflow/internal/delivery/api/response"
	deliverycontext "fuelflow/internal/delivery/context"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/entity"
	"fuelflow/internal/domain/service"
	"fuelflow/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	contextKeyUID   = "uid"
	contextKeyAdmin = "admin"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Verifier service.TokenVerifier
	AdminUC  usecase.AdminUsecase
}

// AuthMiddleware verifies bearer tokens and resolves the admin behind them.
type AuthMiddleware struct {
	verifier service.TokenVerifier
	adminUC  usecase.AdminUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: params.Verifier,
		adminUC:  params.AdminUC,
	}
}

// Authenticate validates the bearer token and stores its uid.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		// Browsers cannot set headers on websocket handshakes
		if authHeader == "" && c.IsWebSocket() && c.QueryParam("token") != "" {
			authHeader = "Bearer " + c.QueryParam("token")
		}
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || token == "" {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.verifier.VerifyToken(c.Request().Context(), token)
		if err != nil {
			deliverycontext.Logger(c.Request().Context()).Debug("Token verification failed")

			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		c.Set(contextKeyUID, claims.UID)
		c.SetRequest(c.Request().WithContext(deliverycontext.WithUID(c.Request().Context(), claims.UID)))

		return next(c)
	}
}

// RequireAdmin lets verified, unblocked admins through.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := GetUID(c)
		if !ok {
			return response.HandleAppError(c, domainerrors.ErrUnauthorized)
		}

		admin, err := m.adminUC.Authorize(c.Request().Context(), uid)
		if err != nil {
			return err
		}
		c.Set(contextKeyAdmin, admin)

		return next(c)
	}
}

// GetUID returns the uid of the verified token.
func GetUID(c echo.Context) (string, bool) {
	uid, ok := c.Get(contextKeyUID).(string)

	return uid, ok && uid != ""
}

// GetAdmin returns the admin resolved by RequireAdmin.
func GetAdmin(c echo.Context) (*entity.Admin, bool) {
	admin, ok := c.Get(contextKeyAdmin).(*entity.Admin)

	return admin, ok && admin != nil
}

// AdminID returns the id of the current admin, or an empty string.
func AdminID(c echo.Context) string {
	if admin, ok := GetAdmin(c); ok {
		return admin.Data.UserID
	}

	return ""
}
