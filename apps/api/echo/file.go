package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-lms/darasa/core/file"
)

type fileApi struct {
	svc *file.Service
}

func registerFileAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *file.Service) {
	api := fileApi{svc: svc}

	fg := g.Group("/files", jwt)
	fg.POST("", api.create, adminMiddleware())
	fg.DELETE("/:id", api.destroy, adminMiddleware())
}

// Handlers

func (api *fileApi) create(ctx echo.Context) error {
	var data file.NewFile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFile")
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	f, err := api.svc.Add(actor, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, f)
}

func (api *fileApi) destroy(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(actor, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
