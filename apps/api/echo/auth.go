package echoapi

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/access"
	"github.com/ojtrack/ojtrack/core/user"
)

var (
	// appJWTConfig is the default JWT auth middleware config.
	appJWTConfig = middleware.JWTConfig{
		SigningKey:    []byte(core.Conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
		Claims:        new(Claims),
	}
)

// Claims represents the authorization claims transmitted via a JWT. They
// mirror the persisted session scalars, so the guard can work off an
// explicit session object.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
	ProfilePic   string `json:"profile_pic,omitempty"`
}

func GetUserClaims(usr user.User, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   usr.ID,
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Name:         usr.Name,
		Email:        usr.Email,
		Role:         usr.Role,
		ProfilePic:   usr.ProfilePic,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// contextSession rebuilds the explicit session from the request's claims.
// An unauthenticated request yields the zero (logged-out) session.
func contextSession(ctx echo.Context) access.Session {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return access.Session{}
	}
	return access.Session{
		IsLoggedIn: true,
		UserID:     claims.Subject,
		UserName:   claims.Name,
		UserEmail:  claims.Email,
		Role:       claims.Role,
		ProfilePic: claims.ProfilePic,
	}
}

// guard gates a protected route on the session guard's decision.
func (s *server) guard(route string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			switch access.Check(contextSession(ctx), route) {
			case access.Allowed:
				return next(ctx)
			case access.DeniedNoSession:
				return errUnauthorized
			default:
				return errAccessDenied
			}
		}
	}
}

func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if claims, err := getContextClaims(ctx); err == nil && claims.Role == user.RoleAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// parseBearerToken extracts claims from an Authorization header without the
// JWT middleware; used where a session is optional.
func parseBearerToken(ctx echo.Context) (Claims, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return Claims{}, errUnauthorized
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	claims := new(Claims)
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return appJWTConfig.SigningKey, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, errUnauthorized
	}
	return *claims, nil
}

func (s *server) authenticate(email, pwd string) (*Claims, error) {
	usr, err := s.opts.UserSvc.Authenticate(email, pwd)
	if err != nil {
		if err == user.ErrInvalidCredentials {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "authenticating user")
	}
	usr, err = s.opts.UserSvc.SetLastLogin(usr)
	if err != nil {
		return nil, errors.Wrap(err, "setting lastLogin")
	}
	if err := s.opts.Sessions.SaveSession(access.NewSession(usr)); err != nil {
		return nil, errors.Wrap(err, "saving session")
	}
	return GetUserClaims(usr), nil
}

func (s *server) refreshToken(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}

	usr, err := s.opts.UserSvc.GetByID(claims.Subject)
	if err != nil {
		return "", errors.Wrap(err, "finding user by ID")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(core.Conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	newClaims := GetUserClaims(usr, claims.OrigIssuedAt)
	token, err := GenerateToken(newClaims)
	return token, errors.Wrap(err, "generating token")
}
