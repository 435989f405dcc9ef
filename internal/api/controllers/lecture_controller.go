package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"studymate/internal/models/request_models"
	"studymate/internal/services"
	"studymate/pkg/utils"
)

type LectureController struct {
	lectureService services.LectureServiceInterface
}

func NewLectureController(lectureService services.LectureServiceInterface) *LectureController {
	return &LectureController{
		lectureService: lectureService,
	}
}

// ProcessVideo godoc
// @Summary Summarize a video lecture
// @Description Fetches the transcript for a video and generates a structured summary
// @Tags Lectures
// @Accept json
// @Produce json
// @Param request body request_models.ProcessVideoRequest true "Video processing payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /lectures/process [post]
func (l *LectureController) ProcessVideo(c *gin.Context) {
	var req request_models.ProcessVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	result, err := l.lectureService.ProcessVideo(c.Request.Context(), userID, req.URL)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Lecture processed successfully")
}

// RecentLectures godoc
// @Summary List recently processed lectures
// @Tags Lectures
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /lectures/recent [get]
func (l *LectureController) RecentLectures(c *gin.Context) {
	userID := c.GetString("user_id")
	items := l.lectureService.RecentLectures(c.Request.Context(), userID)
	utils.RespondSuccess(c, items, "Recent lectures fetched successfully")
}

// SearchLectures godoc
// @Summary Search past lectures
// @Description Semantic search over previously generated lecture summaries
// @Tags Lectures
// @Accept json
// @Produce json
// @Param request body request_models.SearchLecturesRequest true "Search payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /lectures/search [post]
func (l *LectureController) SearchLectures(c *gin.Context) {
	var req request_models.SearchLecturesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	hits, err := l.lectureService.SearchLectures(c.Request.Context(), userID, req.Query, req.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, hits, "Search completed successfully")
}
