package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-lms/darasa/core/enroll"
)

type enrollApi struct {
	svc *enroll.Service
}

func registerEnrollAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *enroll.Service) {
	api := enrollApi{svc: svc}

	eg := g.Group("/enrollments", jwt)
	eg.GET("", api.query)
	eg.GET("/completed", api.completed)
}

// Handlers

func (api *enrollApi) query(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	enrs, err := api.svc.UserEnrollments(actor.ID)
	if err != nil {
		return errors.Wrap(err, "querying enrollments")
	}
	if enrs == nil {
		enrs = []enroll.Enrollment{}
	}
	return ctx.JSON(http.StatusOK, enrs)
}

func (api *enrollApi) completed(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	completed, err := api.svc.CompletedCourses(actor.ID)
	if err != nil {
		return errors.Wrap(err, "querying completed courses")
	}
	return ctx.JSON(http.StatusOK, completed)
}
