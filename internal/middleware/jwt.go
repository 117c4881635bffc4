package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Azell-Tech/azell-web/config"
	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/logger"
	"github.com/Azell-Tech/azell-web/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionKey = "session"
	userIDKey  = "user_id"
	issuer     = "azell-web"
)

type JwtService struct {
	secret     []byte
	expiry     time.Duration
	cookieName string
	secure     bool
}

type sessionClaims struct {
	TenantID           string `json:"tid"`
	TenantCode         string `json:"tcode"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	Approved           bool   `json:"approved"`
	MustChangePassword bool   `json:"mcp"`
	jwt.RegisteredClaims
}

// NewJwtService usa un secreto aleatorio cuando no hay uno configurado; los
// tokens dejan de ser válidos al reiniciar.
func NewJwtService(cfg config.JWTConfig) (*JwtService, error) {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate jwt secret: %w", err)
		}
		secret = []byte(hex.EncodeToString(buf))
		logger.Warn().Msg("JWT_SECRET no configurado, usando un secreto temporal")
	}

	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "azell_session"
	}

	return &JwtService{
		secret:     secret,
		expiry:     cfg.GetExpiry(),
		cookieName: cookieName,
		secure:     cfg.Secure,
	}, nil
}

func (j *JwtService) CookieName() string {
	return j.cookieName
}

func (j *JwtService) Expiry() time.Duration {
	return j.expiry
}

func (j *JwtService) GenerateToken(session shared.Session) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.expiry)
	claims := sessionClaims{
		TenantID:           session.TenantID.String(),
		TenantCode:         session.TenantCode,
		Email:              session.Email,
		Name:               session.Name,
		Role:               string(session.Role),
		Approved:           session.Approved,
		MustChangePassword: session.MustChangePassword,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, appErrors.ErrInternalServer.WithError(err)
	}
	return signed, expiresAt, nil
}

func (j *JwtService) ParseToken(tokenString string) (shared.Session, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return shared.Session{}, appErrors.NewAuthError("TOKEN_EXPIRED", "La sesión expiró")
		}
		return shared.Session{}, appErrors.NewAuthError("INVALID_TOKEN", "Token inválido").WithError(err)
	}

	userID, err := pkg.ParseULID(claims.Subject)
	if err != nil {
		return shared.Session{}, appErrors.NewAuthError("INVALID_TOKEN", "Token inválido").WithError(err)
	}
	tenantID, err := pkg.ParseULID(claims.TenantID)
	if err != nil {
		return shared.Session{}, appErrors.NewAuthError("INVALID_TOKEN", "Token inválido").WithError(err)
	}
	role := shared.Role(claims.Role)
	if !role.IsValid() {
		return shared.Session{}, appErrors.NewAuthError("INVALID_TOKEN", "Token inválido")
	}

	return shared.Session{
		UserID:             userID,
		TenantID:           tenantID,
		TenantCode:         claims.TenantCode,
		Email:              claims.Email,
		Name:               claims.Name,
		Role:               role,
		Approved:           claims.Approved,
		MustChangePassword: claims.MustChangePassword,
	}, nil
}

// SetSessionCookie deja el token en una cookie httpOnly.
func (j *JwtService) SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(j.cookieName, token, int(j.expiry.Seconds()), "/", "", j.secure, true)
}

func (j *JwtService) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(j.cookieName, "", -1, "/", "", j.secure, true)
}

func (j *JwtService) tokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(j.cookieName); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware acepta el token en Authorization: Bearer o en la cookie de sesión.
func AuthMiddleware(jwtSvc *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := jwtSvc.tokenFromRequest(c)
		if token == "" {
			abortWithError(c, appErrors.ErrUnauthorized)
			return
		}

		session, err := jwtSvc.ParseToken(token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(sessionKey, session)
		c.Set(userIDKey, session.UserID.String())
		c.Next()
	}
}

func SessionFromContext(c *gin.Context) (shared.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return shared.Session{}, false
	}
	session, ok := value.(shared.Session)
	return session, ok && !session.IsZero()
}

func abortWithError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.AbortWithStatusJSON(appErr.StatusCode, payload)
}
