package controller

import (
	"errors"

	"practicetime_backend/internal/service"
	"practicetime_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// List godoc
// @Summary List users
// @Tags users
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.UserSummary}
// @Router /api/users [get]
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.UserService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// Get godoc
// @Summary Get user
// @Description Full account document with assigned sets and quiz results; credentials stripped
// @Tags users
// @Produce  json
// @Param   id path string true "User id"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	user, err := c.UserService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.writeUserError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// GetQuizResult godoc
// @Summary Get quiz result
// @Tags users
// @Produce  json
// @Param   id path string true "User id"
// @Param   quizId path string true "Quiz id"
// @Success 200 {object} util.Response{data=model.QuizResult}
// @Failure 404 {object} util.Response
// @Router /api/users/{id}/results/{quizId} [get]
func (c *UserController) GetQuizResult(ctx *gin.Context) {
	result, err := c.UserService.GetQuizResult(ctx.Request.Context(), ctx.Param("id"), ctx.Param("quizId"))
	if err != nil {
		c.writeUserError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// DetachSet godoc
// @Summary Detach assigned set
// @Description Removes the user's frozen copy; the set itself is untouched
// @Tags users
// @Produce  json
// @Param   id path string true "User id"
// @Param   setName path string true "Set name"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/users/{id}/assignedSets/{setName} [delete]
func (c *UserController) DetachSet(ctx *gin.Context) {
	err := c.UserService.DetachSet(ctx.Request.Context(), ctx.Param("id"), ctx.Param("setName"))
	if err != nil {
		c.writeUserError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *UserController) writeUserError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrQuizResultNotFound),
		errors.Is(err, util.ErrAssignedSetNotFound):
		util.NotFound(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
