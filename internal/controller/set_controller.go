package controller

import (
	"errors"

	"practicetime_backend/internal/service"
	"practicetime_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SetController struct {
	SetService *service.SetService
}

func NewSetController(setService *service.SetService) *SetController {
	return &SetController{SetService: setService}
}

type AddQuestionRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
}

type AttachSetRequest struct {
	User string `json:"user" binding:"required"`
}

// List godoc
// @Summary List question sets
// @Tags sets
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.SetSummary}
// @Router /api/sets [get]
func (c *SetController) List(ctx *gin.Context) {
	sets, err := c.SetService.ListSets(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sets)
}

// Questions godoc
// @Summary Get set questions
// @Description Resolves the set entries to question documents in display order
// @Tags sets
// @Produce  json
// @Param   name path string true "Set name"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 404 {object} util.Response
// @Router /api/sets/{name}/questions [get]
func (c *SetController) Questions(ctx *gin.Context) {
	questions, err := c.SetService.GetSetQuestions(ctx.Request.Context(), ctx.Param("name"))
	if err != nil {
		c.writeSetError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// AddQuestion godoc
// @Summary Add question to set
// @Description Appends the question with the next display order; duplicates are rejected without a write
// @Tags sets
// @Accept  json
// @Produce  json
// @Param   name path string true "Set name"
// @Param   body body AddQuestionRequest true "Question id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "Question already in set"
// @Router /api/sets/{name}/questions [post]
func (c *SetController) AddQuestion(ctx *gin.Context) {
	var req AddQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	order, err := c.SetService.AddQuestionToSet(ctx.Request.Context(), ctx.Param("name"), req.QuestionID)
	if err != nil {
		c.writeSetError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"order": order})
}

// RemoveQuestion godoc
// @Summary Remove question from set
// @Description Removes the membership entry and compacts the remaining orders
// @Tags sets
// @Produce  json
// @Param   name path string true "Set name"
// @Param   questionId path string true "Question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/sets/{name}/questions/{questionId} [delete]
func (c *SetController) RemoveQuestion(ctx *gin.Context) {
	err := c.SetService.RemoveQuestionFromSet(ctx.Request.Context(), ctx.Param("name"), ctx.Param("questionId"))
	if err != nil {
		c.writeSetError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary Delete set
// @Description Removes the set; copies attached to users are frozen and stay
// @Tags sets
// @Produce  json
// @Param   name path string true "Set name"
// @Success 200 {object} util.Response
// @Router /api/sets/{name} [delete]
func (c *SetController) Delete(ctx *gin.Context) {
	if err := c.SetService.DeleteSet(ctx.Request.Context(), ctx.Param("name")); err != nil {
		c.writeSetError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Attach godoc
// @Summary Attach set to user
// @Description Writes a frozen copy of the set's question ids under the user; unknown users are provisioned
// @Tags sets
// @Accept  json
// @Produce  json
// @Param   name path string true "Set name"
// @Param   body body AttachSetRequest true "Username or email"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/sets/{name}/attach [post]
func (c *SetController) Attach(ctx *gin.Context) {
	var req AttachSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.SetService.AttachSetToUser(ctx.Request.Context(), ctx.Param("name"), req.User)
	if err != nil {
		c.writeSetError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"userId": user.ID, "email": user.Email})
}

func (c *SetController) writeSetError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSetNameRequired), errors.Is(err, util.ErrEmailRequired):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrQuestionAlreadyInSet):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrSetNotFound), errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
