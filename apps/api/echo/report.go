package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-lms/darasa/core/report"
)

type reportApi struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *report.Service) {
	api := reportApi{svc: svc}

	rg := g.Group("/reports", jwt)
	rg.GET("/stats", api.stats)
	rg.GET("/activity", api.activity)
}

// Handlers

func (api *reportApi) stats(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	stats, err := api.svc.DashboardStats(actor.ID)
	if err != nil {
		return errors.Wrap(err, "deriving dashboard stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *reportApi) activity(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	activities, err := api.svc.RecentActivity(actor.ID, limit)
	if err != nil {
		return errors.Wrap(err, "querying recent activity")
	}
	return ctx.JSON(http.StatusOK, activities)
}
