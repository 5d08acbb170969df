package handler

import (
	"errors"

	"microdrama-go/internal/api/dto"
	"microdrama-go/internal/api/response"
	"microdrama-go/internal/service"
	"microdrama-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RatingHandler struct {
	ratingService *service.RatingService
}

func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// Create 评分
// @Summary 给短剧评分
// @Description 追加一条评分事件，1 为点赞，0 为点踩
// @Tags 评分
// @Accept json
// @Produce json
// @Param id path string true "短剧ID (uuid)"
// @Param body body dto.RatingCreateRequest true "评分"
// @Success 201 {object} response.Response{data=dto.RatingInfo} "评分成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 404 {object} response.ErrorResponse "短剧不存在"
// @Failure 429 {object} response.ErrorResponse "请求过于频繁"
// @Router /shows/{id}/like [post]
func (h *RatingHandler) Create(c *gin.Context) {
	var uri dto.ShowIDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "无效的短剧ID")
		return
	}

	var req dto.RatingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.ratingService.Record(c.Request.Context(), uri.ID, *req.RatingValue)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShowNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrInvalidRating):
			response.BadRequest(c, err.Error())
		default:
			logger.Error("Create rating failed", zap.String("show_id", uri.ID), zap.Error(err))
			response.InternalError(c, "评分失败")
		}
		return
	}
	response.Created(c, "评分成功", info)
}

// Counts 评分汇总
// @Summary 评分汇总
// @Tags 评分
// @Produce json
// @Param id path string true "短剧ID (uuid)"
// @Success 200 {object} response.Response{data=dto.RatingCounts} "获取成功"
// @Failure 404 {object} response.ErrorResponse "短剧不存在"
// @Router /shows/{id}/ratings [get]
func (h *RatingHandler) Counts(c *gin.Context) {
	var uri dto.ShowIDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "无效的短剧ID")
		return
	}

	counts, err := h.ratingService.Count(c.Request.Context(), uri.ID)
	if err != nil {
		if errors.Is(err, service.ErrShowNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Count ratings failed", zap.String("show_id", uri.ID), zap.Error(err))
		response.InternalError(c, "获取评分失败")
		return
	}
	response.OK(c, "获取成功", counts)
}
