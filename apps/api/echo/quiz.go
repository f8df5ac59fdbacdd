package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-lms/darasa/core/quiz"
)

type quizApi struct {
	svc *quiz.Service
}

type attemptRequest struct {
	Answers map[string]int `json:"answers"`
}

func registerQuizAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *quiz.Service) {
	api := quizApi{svc: svc}

	qg := g.Group("/quizzes", jwt)
	qg.GET("", api.query)
	qg.POST("", api.create, adminMiddleware())
	qg.GET("/:id", api.retrieve)
	qg.GET("/:id/summary", api.summary)
	qg.POST("/:id/attempts", api.submitAttempt)
}

// Handlers

func (api *quizApi) query(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	views, err := api.svc.ForUser(actor.ID)
	if err != nil {
		return errors.Wrap(err, "querying quizzes")
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *quizApi) create(ctx echo.Context) error {
	var data quiz.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	q, err := api.svc.Create(actor, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, q)
}

func (api *quizApi) retrieve(ctx echo.Context) error {
	q, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, q)
}

func (api *quizApi) summary(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	summary, err := api.svc.AttemptSummary(actor.ID, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *quizApi) submitAttempt(ctx echo.Context) error {
	var data attemptRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to attemptRequest")
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	att, err := api.svc.SubmitAttempt(actor.ID, ctx.Param("id"), data.Answers)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, att)
}
