package controller

import (
	"path/filepath"
	"strconv"

	"practicetime_backend/internal/model"
	"practicetime_backend/internal/service"
	"practicetime_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuestionController struct {
	QuestionService *service.QuestionService
	StorageService  *service.StorageService
}

func NewQuestionController(questionService *service.QuestionService, storageService *service.StorageService) *QuestionController {
	return &QuestionController{
		QuestionService: questionService,
		StorageService:  storageService,
	}
}

type CreateQuestionRequest struct {
	Question        string             `json:"question"`
	QuestionImage   string             `json:"questionImage"`
	Type            string             `json:"type" binding:"required"`
	Grade           string             `json:"grade"`
	Topic           string             `json:"topic"`
	TopicList       string             `json:"topicList"`
	DifficultyLevel string             `json:"difficultyLevel"`
	Options         []model.AnswerPart `json:"options"`
	CorrectAnswer   *model.AnswerPart  `json:"correctAnswer"`
}

// Create godoc
// @Summary Create question
// @Description Creates a question document; non-trivia types get an allocated question id
// @Tags questions
// @Accept  json
// @Produce  json
// @Param   body body CreateQuestionRequest true "Question fields"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Router /api/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.Create(ctx.Request.Context(), service.CreateQuestionInput{
		Question:        req.Question,
		QuestionImage:   req.QuestionImage,
		Type:            model.QuestionType(req.Type),
		Grade:           req.Grade,
		Topic:           req.Topic,
		TopicList:       req.TopicList,
		DifficultyLevel: model.DifficultyLevel(req.DifficultyLevel),
		Options:         req.Options,
		CorrectAnswer:   req.CorrectAnswer,
	})
	if err != nil {
		if service.IsValidationError(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, q)
}

// List godoc
// @Summary List questions
// @Description Filtered, paginated question listing, newest first
// @Tags questions
// @Produce  json
// @Param   grade query string false "Grade filter, empty or all matches everything"
// @Param   topic query string false "Topic filter"
// @Param   topicList query string false "Subtopic filter"
// @Param   difficultyLevel query string false "Difficulty filter"
// @Param   type query string false "Type filter"
// @Param   page query int false "Page number, default 1"
// @Param   limit query int false "Page size, default 50"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	filter := service.QuestionFilter{
		Grade:           ctx.Query("grade"),
		Topic:           ctx.Query("topic"),
		TopicList:       ctx.Query("topicList"),
		DifficultyLevel: ctx.Query("difficultyLevel"),
		Type:            ctx.Query("type"),
	}

	questions, total, err := c.QuestionService.List(ctx.Request.Context(), filter, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  questions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Delete godoc
// @Summary Delete question
// @Tags questions
// @Produce  json
// @Param   id path string true "Question document key"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	if err := c.QuestionService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// BulkImport godoc
// @Summary Bulk import questions
// @Description Validates every row before writing; problems are reported with spreadsheet line numbers
// @Tags questions
// @Accept  json
// @Produce  json
// @Param   body body []service.BulkImportRow true "Parsed spreadsheet rows"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/questions/bulk [post]
func (c *QuestionController) BulkImport(ctx *gin.Context) {
	var rows []service.BulkImportRow
	if err := ctx.ShouldBindJSON(&rows); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	imported, err := c.QuestionService.BulkImport(ctx.Request.Context(), rows)
	if err != nil {
		if service.IsValidationError(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"imported": imported})
}

// UploadImage godoc
// @Summary Upload question image
// @Description Stores the image and returns its URL for use in question or answer fields
// @Tags questions
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Image file"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/questions/image [post]
func (c *QuestionController) UploadImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	if !util.IsAllowedImageExtension(fileHeader.Filename) {
		util.BadRequest(ctx, "unsupported image extension")
		return
	}

	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url, "filename": filename})
}
