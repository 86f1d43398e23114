package echoapi

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/attendance"
	"github.com/thedigitalbhaiya/ans-sub000/core/circular"
	"github.com/thedigitalbhaiya/ans-sub000/core/policy"
	"github.com/thedigitalbhaiya/ans-sub000/core/settings"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
	"github.com/thedigitalbhaiya/ans-sub000/core/timetable"
)

// consoleApi serves the admin console: student management, attendance,
// circulars, timetables, accounts and settings.
type consoleApi struct {
	deps *Deps
}

func registerAdminConsoleAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *Deps) {
	api := consoleApi{deps: deps}

	ag := g.Group("/admin", jwt, adminMiddleware())

	// students
	sg := ag.Group("/students", featureMiddleware(policy.FeatureStudents, deps.SettingsSvc))
	sg.GET("", api.queryStudents)
	sg.GET("/:admissionNo", api.retrieveStudent)
	sg.PUT("/:admissionNo", api.updateStudent)
	sg.DELETE("/:admissionNo", api.destroyStudent)
	sg.POST("/:admissionNo/results", api.recordResult, featureMiddleware(policy.FeatureResults, deps.SettingsSvc))
	sg.POST("/:admissionNo/achievements", api.recordAchievement, featureMiddleware(policy.FeatureAchievements, deps.SettingsSvc))

	// admissions
	ag.POST("/admissions", api.admitStudent, featureMiddleware(policy.FeatureAdmissions, deps.SettingsSvc))

	// fees
	ag.POST("/students/:admissionNo/fees", api.recordFee, featureMiddleware(policy.FeatureFees, deps.SettingsSvc))

	// attendance
	atg := ag.Group("/attendance", featureMiddleware(policy.FeatureAttendance, deps.SettingsSvc))
	atg.GET("", api.attendanceSheet)
	atg.POST("", api.markAttendance)

	// timetable
	ttg := ag.Group("/timetable", featureMiddleware(policy.FeatureTimetable, deps.SettingsSvc))
	ttg.GET("", api.retrieveTimetable)
	ttg.PUT("", api.setTimetable)

	// circulars
	cg := ag.Group("/circulars", featureMiddleware(policy.FeatureCirculars, deps.SettingsSvc))
	cg.GET("", api.queryCirculars)
	cg.POST("", api.issueCircular)
	cg.DELETE("/:id", api.destroyCircular)

	// social links
	lg := ag.Group("/links", featureMiddleware(policy.FeatureSocialLinks, deps.SettingsSvc))
	lg.PUT("", api.upsertSocialLink)
	lg.DELETE("/:id", api.destroySocialLink)

	// accounts & settings
	acg := ag.Group("/accounts", featureMiddleware(policy.FeatureSettings, deps.SettingsSvc))
	acg.GET("", api.queryAccounts)
	acg.POST("", api.createAccount)
	acg.PUT("/:id", api.updateAccount)
	acg.DELETE("/:id", api.destroyAccount)

	stg := ag.Group("/settings", featureMiddleware(policy.FeatureSettings, deps.SettingsSvc))
	stg.GET("", api.retrieveSettings)
	stg.PUT("", api.updateSettings)
	stg.PUT("/permissions", api.updatePermissions)
}

// admissionNoParam returns the :admissionNo route param. Admission numbers
// contain slashes, so clients escape them ("ANS%2F2025%2F37") and the raw
// segment needs unescaping here.
func admissionNoParam(ctx echo.Context) string {
	no, err := url.PathUnescape(ctx.Param("admissionNo"))
	if err != nil {
		return ctx.Param("admissionNo")
	}
	return no
}

// screenCheck is the extra screen-level role check the Fees and Settings
// screens do on top of their route gating; it answers "Access Restricted"
// instead of the generic permission error.
func (api *consoleApi) screenCheck(ctx echo.Context, feature policy.Feature) (admin.Account, error) {
	acct, err := getContextAccount(ctx, api.deps.AdminSvc)
	if err != nil {
		return admin.Account{}, err
	}
	flags, err := api.deps.SettingsSvc.Flags()
	if err != nil {
		return admin.Account{}, errors.Wrap(err, "loading permission flags")
	}
	if !policy.Allowed(acct.Role, feature, flags) {
		return admin.Account{}, errAccessRestricted
	}
	return acct, nil
}

// Student handlers

func (api *consoleApi) queryStudents(ctx echo.Context) error {
	var filter student.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	recs, err := api.deps.StudentSvc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "filtering students")
	}
	if recs == nil {
		recs = []student.Record{}
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *consoleApi) retrieveStudent(ctx echo.Context) error {
	rec, err := api.deps.StudentSvc.GetByAdmissionNo(admissionNoParam(ctx))
	if err != nil {
		if err == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *consoleApi) admitStudent(ctx echo.Context) error {
	var data student.NewRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}
	if err := data.Validate(api.deps.Validate, api.deps.Translator); err != nil {
		return err
	}
	rec, err := api.deps.StudentSvc.Admit(data)
	if err != nil {
		return errors.Wrap(err, "admitting student")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *consoleApi) updateStudent(ctx echo.Context) error {
	orig, err := api.deps.StudentSvc.GetByAdmissionNo(admissionNoParam(ctx))
	if err != nil {
		if err == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student")
	}

	var data student.UpdateRecord
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRecord")
	}
	if err = data.Validate(api.deps.Validate, api.deps.Translator, orig); err != nil {
		return err
	}
	rec, err := api.deps.StudentSvc.Update(orig.AdmissionNo, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *consoleApi) destroyStudent(ctx echo.Context) error {
	if err := api.deps.StudentSvc.Delete(admissionNoParam(ctx)); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *consoleApi) recordFee(ctx echo.Context) error {
	// the Fees screen re-checks the role on top of its route gating
	if _, err := api.screenCheck(ctx, policy.FeatureFees); err != nil {
		return err
	}

	var fee student.FeeRecord
	if err := ctx.Bind(&fee); err != nil {
		return errors.Wrap(err, "binding to FeeRecord")
	}
	rec, err := api.deps.StudentSvc.RecordFee(admissionNoParam(ctx), fee)
	if err != nil {
		if err == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "recording fee")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *consoleApi) recordResult(ctx echo.Context) error {
	var res student.Result
	if err := ctx.Bind(&res); err != nil {
		return errors.Wrap(err, "binding to Result")
	}
	rec, err := api.deps.StudentSvc.RecordResult(admissionNoParam(ctx), res)
	if err != nil {
		if err == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "recording result")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *consoleApi) recordAchievement(ctx echo.Context) error {
	var ach student.Achievement
	if err := ctx.Bind(&ach); err != nil {
		return errors.Wrap(err, "binding to Achievement")
	}
	rec, err := api.deps.StudentSvc.RecordAchievement(admissionNoParam(ctx), ach)
	if err != nil {
		if err == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "recording achievement")
	}
	return ctx.JSON(http.StatusOK, rec)
}

// Attendance handlers

func (api *consoleApi) attendanceSheet(ctx echo.Context) error {
	sheet, err := api.deps.AttendanceSvc.Sheet(
		ctx.QueryParam("class"), ctx.QueryParam("section"), ctx.QueryParam("date"))
	if err != nil {
		if err == attendance.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "loading attendance sheet")
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (api *consoleApi) markAttendance(ctx echo.Context) error {
	acct, err := getContextAccount(ctx, api.deps.AdminSvc)
	if err != nil {
		return err
	}

	var sheet attendance.Sheet
	if err = ctx.Bind(&sheet); err != nil {
		return errors.Wrap(err, "binding to Sheet")
	}
	if err = api.deps.AttendanceSvc.Mark(acct, sheet); err != nil {
		switch err {
		case attendance.ErrClassScope:
			return errHttpForbidden
		case attendance.ErrUnknownStatus:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Timetable handlers

func (api *consoleApi) retrieveTimetable(ctx echo.Context) error {
	tt, err := api.deps.TimetableSvc.Get(ctx.QueryParam("class"), ctx.QueryParam("section"))
	if err != nil {
		if err == timetable.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "loading timetable")
	}
	return ctx.JSON(http.StatusOK, tt)
}

func (api *consoleApi) setTimetable(ctx echo.Context) error {
	acct, err := getContextAccount(ctx, api.deps.AdminSvc)
	if err != nil {
		return err
	}

	var tt timetable.Timetable
	if err = ctx.Bind(&tt); err != nil {
		return errors.Wrap(err, "binding to Timetable")
	}
	if err = api.deps.TimetableSvc.Set(acct, tt); err != nil {
		if err == timetable.ErrClassScope {
			return errHttpForbidden
		}
		return errors.Wrap(err, "setting timetable")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Circular handlers

func (api *consoleApi) queryCirculars(ctx echo.Context) error {
	all, err := api.deps.CircularSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "loading circulars")
	}
	if all == nil {
		all = []circular.Circular{}
	}
	return ctx.JSON(http.StatusOK, all)
}

func (api *consoleApi) issueCircular(ctx echo.Context) error {
	acct, err := getContextAccount(ctx, api.deps.AdminSvc)
	if err != nil {
		return err
	}

	var data circular.NewCircular
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCircular")
	}
	if err = data.Validate(api.deps.Validate, api.deps.Translator); err != nil {
		return err
	}
	c, err := api.deps.CircularSvc.Issue(acct, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *consoleApi) destroyCircular(ctx echo.Context) error {
	acct, err := getContextAccount(ctx, api.deps.AdminSvc)
	if err != nil {
		return err
	}
	if err = api.deps.CircularSvc.Delete(acct, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Social link handlers

func (api *consoleApi) upsertSocialLink(ctx echo.Context) error {
	acct, err := getContextAccount(ctx, api.deps.AdminSvc)
	if err != nil {
		return err
	}

	var link settings.SocialLink
	if err = ctx.Bind(&link); err != nil {
		return errors.Wrap(err, "binding to SocialLink")
	}
	link, err = api.deps.SettingsSvc.UpsertSocialLink(acct, link)
	if err != nil {
		switch err {
		case settings.ErrClassScope:
			return errHttpForbidden
		case settings.ErrLinkNotFound:
			return errHttpNotFound
		}
		return errors.Wrap(err, "saving social link")
	}
	return ctx.JSON(http.StatusOK, link)
}

func (api *consoleApi) destroySocialLink(ctx echo.Context) error {
	acct, err := getContextAccount(ctx, api.deps.AdminSvc)
	if err != nil {
		return err
	}
	if err = api.deps.SettingsSvc.DeleteSocialLink(acct, ctx.Param("id")); err != nil {
		switch err {
		case settings.ErrClassScope:
			return errHttpForbidden
		case settings.ErrLinkNotFound:
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting social link")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Account handlers

func (api *consoleApi) queryAccounts(ctx echo.Context) error {
	accts, err := api.deps.AdminSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "loading accounts")
	}
	if accts == nil {
		accts = []admin.Account{}
	}
	return ctx.JSON(http.StatusOK, accts)
}

func (api *consoleApi) createAccount(ctx echo.Context) error {
	var data admin.NewAccount
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAccount")
	}
	if err := data.Validate(api.deps.Validate, api.deps.Translator, api.deps.AdminSvc); err != nil {
		return err
	}
	acct, err := api.deps.AdminSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating account")
	}
	return ctx.JSON(http.StatusCreated, acct)
}

func (api *consoleApi) updateAccount(ctx echo.Context) error {
	orig, err := api.deps.AdminSvc.GetByID(ctx.Param("id"))
	if err != nil {
		if err == admin.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding account")
	}

	var data admin.UpdateAccount
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAccount")
	}
	if err = data.Validate(api.deps.Validate, api.deps.Translator, orig, api.deps.AdminSvc); err != nil {
		return err
	}
	acct, err := api.deps.AdminSvc.Update(orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating account")
	}
	return ctx.JSON(http.StatusOK, acct)
}

func (api *consoleApi) destroyAccount(ctx echo.Context) error {
	if err := api.deps.AdminSvc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting account")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Settings handlers

func (api *consoleApi) retrieveSettings(ctx echo.Context) error {
	// the Settings screen re-checks the role on top of its route gating
	if _, err := api.screenCheck(ctx, policy.FeatureSettings); err != nil {
		return err
	}
	s, err := api.deps.SettingsSvc.Get()
	if err != nil {
		return errors.Wrap(err, "loading settings")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *consoleApi) updateSettings(ctx echo.Context) error {
	acct, err := api.screenCheck(ctx, policy.FeatureSettings)
	if err != nil {
		return err
	}

	var s settings.Settings
	if err = ctx.Bind(&s); err != nil {
		return errors.Wrap(err, "binding to Settings")
	}
	s, err = api.deps.SettingsSvc.Update(acct, s)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *consoleApi) updatePermissions(ctx echo.Context) error {
	acct, err := api.screenCheck(ctx, policy.FeatureSettings)
	if err != nil {
		return err
	}

	var flags policy.PermissionFlags
	if err = ctx.Bind(&flags); err != nil {
		return errors.Wrap(err, "binding to PermissionFlags")
	}
	if err = api.deps.SettingsSvc.SetFlags(acct, flags); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
