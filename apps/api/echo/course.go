package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-lms/darasa/core/course"
	"github.com/darasa-lms/darasa/core/enroll"
	"github.com/darasa-lms/darasa/core/file"
)

type courseApi struct {
	svc       *course.Service
	enrollSvc *enroll.Service
	fileSvc   *file.Service
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *course.Service, enrollSvc *enroll.Service, fileSvc *file.Service) {
	api := courseApi{svc: svc, enrollSvc: enrollSvc, fileSvc: fileSvc}

	cg := g.Group("/courses", jwt)
	cg.GET("", api.query)
	cg.POST("", api.create, adminMiddleware())
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update, adminMiddleware())
	cg.DELETE("/:id", api.destroy, adminMiddleware())
	cg.POST("/:id/enroll", api.enroll)
	cg.GET("/:id/progress", api.progress)
	cg.GET("/:id/files", api.files)

	lg := g.Group("/lessons", jwt)
	lg.GET("/:id", api.retrieveLesson)
	lg.POST("/:id/complete", api.completeLesson)
	lg.GET("/:id/files", api.lessonFiles)
}

// Handlers

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	crs, err := api.svc.Create(actor, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) update(ctx echo.Context) error {
	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	crs, err := api.svc.Update(actor, ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(actor, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) enroll(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	enr, err := api.enrollSvc.Enroll(actor.ID, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, enr)
}

func (api *courseApi) progress(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.enrollSvc.CourseProgress(actor.ID, ctx.Param("id")))
}

func (api *courseApi) files(ctx echo.Context) error {
	files, err := api.fileSvc.ForCourse(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying course files")
	}
	return ctx.JSON(http.StatusOK, files)
}

func (api *courseApi) retrieveLesson(ctx echo.Context) error {
	lesson, err := api.svc.GetLessonByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, lesson)
}

func (api *courseApi) completeLesson(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	lp, err := api.enrollSvc.CompleteLesson(actor.ID, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, lp)
}

func (api *courseApi) lessonFiles(ctx echo.Context) error {
	files, err := api.fileSvc.ForLesson(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying lesson files")
	}
	return ctx.JSON(http.StatusOK, files)
}
