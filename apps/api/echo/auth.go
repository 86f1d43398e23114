package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/thedigitalbhaiya/ans-sub000/core"
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/auth"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
)

// appJWTConfig is the JWT auth middleware config; the signing key is filled
// in by NewServer from the app config.
var appJWTConfig = middleware.JWTConfig{
	SigningMethod: middleware.AlgorithmHS256,
	ContextKey:    "sessionToken",
	Claims:        new(Claims),
}

var (
	jwtExpirationDelta        time.Duration
	jwtRefreshExpirationDelta time.Duration
	appName                   string
)

func initJWT(conf *core.Config) {
	appJWTConfig.SigningKey = conf.SecretKey
	jwtExpirationDelta = conf.Server.JWTExpirationDelta
	jwtRefreshExpirationDelta = conf.Server.JWTRefreshExpirationDelta
	appName = conf.AppName
}

// Claims is the session token: the persisted logged-in/role flags plus the
// active record's key, so a reload restores the same principal.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	IsStudent    bool   `json:"is_student,omitempty"` // -> STUDENT PORTAL
	IsAdmin      bool   `json:"is_admin,omitempty"`   // -> ADMIN CONSOLE
	AdmissionNo  string `json:"admission_no,omitempty"`
	Username     string `json:"username,omitempty"`
	Role         string `json:"role,omitempty"`
}

func StudentClaims(rec student.Record, origIat ...int64) *Claims {
	claims := baseClaims(rec.AdmissionNo, origIat)
	claims.IsStudent = true
	claims.AdmissionNo = rec.AdmissionNo
	return claims
}

func AdminClaims(acct admin.Account, origIat ...int64) *Claims {
	claims := baseClaims(acct.ID, origIat)
	claims.IsAdmin = true
	claims.Username = acct.Username
	claims.Role = string(acct.Role)
	return claims
}

func baseClaims(subject string, origIat []int64) *Claims {
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
			Issuer:    appName,
			Subject:   subject,
			Audience:  "Portal",
			ExpiresAt: now.Add(jwtExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey.([]byte))
	if err != nil {
		return "", errSigningToken
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

// principalFromClaims rebuilds the acting Principal from the session token.
func principalFromClaims(claims Claims) auth.Principal {
	switch {
	case claims.IsAdmin:
		return auth.Principal{Kind: auth.KindAdmin, AdminID: claims.Subject, Role: admin.Role(claims.Role)}
	case claims.IsStudent:
		return auth.Principal{Kind: auth.KindStudent, AdmissionNo: claims.AdmissionNo}
	}
	return auth.Guest()
}
