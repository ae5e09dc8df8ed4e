package controller

import (
	"net/http"

	"practicetime_backend/internal/service"
	"practicetime_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadController serves the unauthenticated question upload endpoint kept
// for the legacy uploader tool. Its response shape predates the standard
// envelope and is preserved as-is.
type UploadController struct {
	UploadService *service.UploadService
}

func NewUploadController(uploadService *service.UploadService) *UploadController {
	return &UploadController{UploadService: uploadService}
}

// UploadQuestion godoc
// @Summary Upload question row
// @Description Inserts a flat question record into the relational table
// @Tags upload
// @Accept  json
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /upload-question [post]
func (c *UploadController) UploadQuestion(ctx *gin.Context) {
	var input service.UploadQuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	if err := c.UploadService.Upload(input); err != nil {
		logger.Log.Error("question upload failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Question uploaded successfully",
	})
}
