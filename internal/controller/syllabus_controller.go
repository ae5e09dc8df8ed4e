package controller

import (
	"errors"

	"practicetime_backend/internal/service"
	"practicetime_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SyllabusController struct {
	SyllabusService *service.SyllabusService
}

func NewSyllabusController(syllabusService *service.SyllabusService) *SyllabusController {
	return &SyllabusController{SyllabusService: syllabusService}
}

// Create godoc
// @Summary Create syllabus entry
// @Description Adds a grade/topic/subtopic taxonomy row
// @Tags syllabus
// @Accept  json
// @Produce  json
// @Param   body body service.SyllabusInput true "Taxonomy row"
// @Success 201 {object} util.Response{data=model.SyllabusEntry}
// @Failure 400 {object} util.Response
// @Router /api/syllabus [post]
func (c *SyllabusController) Create(ctx *gin.Context) {
	var in service.SyllabusInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.SyllabusService.Create(ctx.Request.Context(), in)
	if err != nil {
		c.writeSyllabusError(ctx, err)
		return
	}
	util.Created(ctx, entry)
}

// List godoc
// @Summary List syllabus entries
// @Tags syllabus
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.SyllabusEntry}
// @Router /api/syllabus [get]
func (c *SyllabusController) List(ctx *gin.Context) {
	entries, err := c.SyllabusService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// Search godoc
// @Summary Search syllabus
// @Description Exact grade, case-insensitive topic and optional subtopic
// @Tags syllabus
// @Produce  json
// @Param   grade query string true "Grade"
// @Param   topic query string true "Topic name"
// @Param   subtopic query string false "Subtopic name"
// @Success 200 {object} util.Response{data=[]model.SyllabusEntry}
// @Failure 400 {object} util.Response
// @Router /api/syllabus/search [get]
func (c *SyllabusController) Search(ctx *gin.Context) {
	entries, err := c.SyllabusService.Search(
		ctx.Request.Context(),
		ctx.Query("grade"),
		ctx.Query("topic"),
		ctx.Query("subtopic"),
	)
	if err != nil {
		c.writeSyllabusError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// Update godoc
// @Summary Update syllabus entry
// @Tags syllabus
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry id"
// @Param   body body service.SyllabusInput true "Replacement row"
// @Success 200 {object} util.Response{data=model.SyllabusEntry}
// @Failure 404 {object} util.Response
// @Router /api/syllabus/{id} [put]
func (c *SyllabusController) Update(ctx *gin.Context) {
	var in service.SyllabusInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.SyllabusService.Update(ctx.Request.Context(), ctx.Param("id"), in)
	if err != nil {
		c.writeSyllabusError(ctx, err)
		return
	}
	util.Success(ctx, entry)
}

// Delete godoc
// @Summary Delete syllabus entry
// @Tags syllabus
// @Produce  json
// @Param   id path string true "Entry id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/syllabus/{id} [delete]
func (c *SyllabusController) Delete(ctx *gin.Context) {
	if err := c.SyllabusService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.writeSyllabusError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *SyllabusController) writeSyllabusError(ctx *gin.Context, err error) {
	switch {
	case service.IsValidationError(err):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrSyllabusNotFound):
		util.NotFound(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
