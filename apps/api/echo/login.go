package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/thedigitalbhaiya/ans-sub000/core/auth"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
)

type loginApi struct {
	deps *Deps
}

func registerLoginAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *Deps) {
	api := loginApi{deps: deps}

	ag := g.Group("/auth")

	// un-authed endpoints: the three-step login flow. Negative outcomes are
	// result payloads, not HTTP errors, so the login screen renders them
	// inline.
	ag.POST("/phone", api.submitPhone)
	ag.POST("/otp", api.submitOTP)
	ag.POST("/password", api.submitPassword)
	ag.POST("/reset", api.resetFlow)
	ag.POST("/profiles", api.selectProfile)

	// authed endpoints
	sg := ag.Group("", jwt)
	sg.GET("/session", api.session)
	sg.POST("/token-refresh", api.refreshToken)
	sg.POST("/switch", api.switchProfile, studentMiddleware())
	sg.POST("/logout", api.logout)
}

// Handlers

type phoneInput struct {
	Phone string `json:"phone" validate:"required"`
}

func (api *loginApi) submitPhone(ctx echo.Context) error {
	var data phoneInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to phoneInput")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	res, err := api.deps.AuthSvc.SubmitPhone(data.Phone)
	if err != nil {
		return errors.Wrap(err, "submitting phone")
	}
	if res == auth.PhoneNotFound {
		return ctx.JSON(http.StatusOK, echo.Map{"result": "not_found"})
	}
	return ctx.JSON(http.StatusOK, echo.Map{"result": "found"})
}

type otpInput struct {
	Code string `json:"code" validate:"required"`
}

func (api *loginApi) submitOTP(ctx echo.Context) error {
	var data otpInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to otpInput")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	res, err := api.deps.AuthSvc.SubmitOTP(data.Code)
	if err != nil {
		return errors.Wrap(err, "submitting OTP")
	}
	switch res.Outcome {
	case auth.OTPAdvanceToPassword:
		return ctx.JSON(http.StatusOK, echo.Map{"result": "password_required"})
	case auth.OTPLoggedInAsStudent:
		rec, _ := api.deps.AuthSvc.CurrentStudent()
		token, err := GenerateToken(StudentClaims(rec))
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, echo.Map{"result": "logged_in", "token": token, "student": rec})
	case auth.OTPAmbiguousProfiles:
		return ctx.JSON(http.StatusOK, echo.Map{"result": "choose_profile", "candidates": res.Candidates})
	}
	return ctx.JSON(http.StatusOK, echo.Map{"result": "invalid"})
}

type passwordInput struct {
	Password string `json:"password" validate:"required"`
}

func (api *loginApi) submitPassword(ctx echo.Context) error {
	var data passwordInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to passwordInput")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	res, err := api.deps.AuthSvc.SubmitPassword(data.Password)
	if err != nil {
		return errors.Wrap(err, "submitting password")
	}
	if res != auth.PasswordSuccess {
		return ctx.JSON(http.StatusOK, echo.Map{"result": "invalid"})
	}
	acct, _ := api.deps.AuthSvc.CurrentAdmin()
	token, err := GenerateToken(AdminClaims(acct))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"result": "logged_in", "token": token, "admin": acct})
}

func (api *loginApi) resetFlow(ctx echo.Context) error {
	api.deps.AuthSvc.Reset()
	return ctx.NoContent(http.StatusNoContent)
}

type profileInput struct {
	AdmissionNo string `json:"admission_no" validate:"required"`
}

func (api *loginApi) selectProfile(ctx echo.Context) error {
	var data profileInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to profileInput")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	_, err := api.deps.AuthSvc.SelectProfile(data.AdmissionNo)
	if err != nil {
		if err == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "selecting profile")
	}
	rec, _ := api.deps.AuthSvc.CurrentStudent()
	token, err := GenerateToken(StudentClaims(rec))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"token": token, "student": rec})
}

func (api *loginApi) switchProfile(ctx echo.Context) error {
	var data profileInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to profileInput")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	if err := api.deps.AuthSvc.SwitchProfile(data.AdmissionNo); err != nil {
		if err == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "switching profile")
	}
	rec, _ := api.deps.AuthSvc.CurrentStudent()
	token, err := GenerateToken(StudentClaims(rec))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"token": token, "student": rec})
}

func (api *loginApi) session(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, principalFromClaims(claims))
}

func (api *loginApi) refreshToken(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(jwtRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return errRefreshExpired
	}

	var newClaims *Claims
	switch {
	case claims.IsAdmin:
		acct, err := api.deps.AdminSvc.GetByID(claims.Subject)
		if err != nil {
			return errUnauthorized
		}
		newClaims = AdminClaims(acct, claims.OrigIssuedAt)
	case claims.IsStudent:
		rec, err := api.deps.StudentSvc.GetByAdmissionNo(claims.AdmissionNo)
		if err != nil {
			return errUnauthorized
		}
		newClaims = StudentClaims(rec, claims.OrigIssuedAt)
	default:
		return errUnauthorized
	}

	token, err := GenerateToken(newClaims)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"token": token})
}

func (api *loginApi) logout(ctx echo.Context) error {
	if err := api.deps.AuthSvc.Logout(); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.NoContent(http.StatusNoContent)
}
