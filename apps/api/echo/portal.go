package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/thedigitalbhaiya/ans-sub000/core/attendance"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
	"github.com/thedigitalbhaiya/ans-sub000/core/timetable"
)

// portalApi serves the logged-in student's dashboard.
type portalApi struct {
	deps *Deps
}

func registerStudentPortalAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *Deps) {
	api := portalApi{deps: deps}

	mg := g.Group("/me", jwt, studentMiddleware())
	mg.GET("", api.retrieve)
	mg.GET("/siblings", api.siblings)
	mg.GET("/attendance", api.attendance)
	mg.GET("/fees", api.fees)
	mg.GET("/results", api.results)
	mg.GET("/achievements", api.achievements)
	mg.GET("/timetable", api.timetable)
	mg.GET("/links", api.socialLinks)
	mg.GET("/circulars", api.circulars)
}

func (api *portalApi) record(ctx echo.Context) (student.Record, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return student.Record{}, err
	}
	rec, err := api.deps.StudentSvc.GetByAdmissionNo(claims.AdmissionNo)
	if err != nil {
		if err == student.ErrNotFound {
			return student.Record{}, errUnauthorized
		}
		return student.Record{}, errors.Wrap(err, "finding student by admission number")
	}
	return rec, nil
}

// Handlers

func (api *portalApi) retrieve(ctx echo.Context) error {
	rec, err := api.record(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *portalApi) siblings(ctx echo.Context) error {
	rec, err := api.record(ctx)
	if err != nil {
		return err
	}
	sibs, err := api.deps.StudentSvc.Siblings(rec)
	if err != nil {
		return errors.Wrap(err, "listing siblings")
	}
	return ctx.JSON(http.StatusOK, sibs)
}

func (api *portalApi) attendance(ctx echo.Context) error {
	rec, err := api.record(ctx)
	if err != nil {
		return err
	}
	history, err := api.deps.AttendanceSvc.StudentHistory(rec.AdmissionNo)
	if err != nil {
		return errors.Wrap(err, "loading attendance history")
	}
	if history == nil {
		history = map[string]attendance.Status{}
	}
	return ctx.JSON(http.StatusOK, history)
}

func (api *portalApi) fees(ctx echo.Context) error {
	rec, err := api.record(ctx)
	if err != nil {
		return err
	}
	if rec.Fees == nil {
		rec.Fees = []student.FeeRecord{}
	}
	return ctx.JSON(http.StatusOK, rec.Fees)
}

func (api *portalApi) results(ctx echo.Context) error {
	rec, err := api.record(ctx)
	if err != nil {
		return err
	}
	if rec.Results == nil {
		rec.Results = []student.Result{}
	}
	return ctx.JSON(http.StatusOK, rec.Results)
}

func (api *portalApi) achievements(ctx echo.Context) error {
	rec, err := api.record(ctx)
	if err != nil {
		return err
	}
	if rec.Achievements == nil {
		rec.Achievements = []student.Achievement{}
	}
	return ctx.JSON(http.StatusOK, rec.Achievements)
}

func (api *portalApi) timetable(ctx echo.Context) error {
	rec, err := api.record(ctx)
	if err != nil {
		return err
	}
	tt, err := api.deps.TimetableSvc.Get(rec.Class, rec.Section)
	if err != nil {
		if err == timetable.ErrNotFound {
			return ctx.JSON(http.StatusOK, timetable.Timetable{Class: rec.Class, Section: rec.Section})
		}
		return errors.Wrap(err, "loading timetable")
	}
	return ctx.JSON(http.StatusOK, tt)
}

func (api *portalApi) socialLinks(ctx echo.Context) error {
	rec, err := api.record(ctx)
	if err != nil {
		return err
	}
	links, err := api.deps.SettingsSvc.LinksForClass(rec.Class, rec.Section)
	if err != nil {
		return errors.Wrap(err, "loading social links")
	}
	return ctx.JSON(http.StatusOK, links)
}

func (api *portalApi) circulars(ctx echo.Context) error {
	all, err := api.deps.CircularSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "loading circulars")
	}
	return ctx.JSON(http.StatusOK, all)
}
