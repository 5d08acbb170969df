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

type WatchHandler struct {
	watchService *service.WatchService
}

func NewWatchHandler(watchService *service.WatchService) *WatchHandler {
	return &WatchHandler{watchService: watchService}
}

// MarkWatched POST /api/v1/episodes/:id/watched
// @Summary 标记已看
// @Tags 观看记录
// @Produce json
// @Param id path string true "剧集ID (uuid)"
// @Success 200 {object} response.Response{data=dto.WatchStatus} "已标记"
// @Failure 404 {object} response.ErrorResponse "剧集不存在"
// @Router /episodes/{id}/watched [post]
func (h *WatchHandler) MarkWatched(c *gin.Context) {
	h.update(c, true)
}

// MarkUnwatched DELETE /api/v1/episodes/:id/watched
// @Summary 标记未看
// @Tags 观看记录
// @Produce json
// @Param id path string true "剧集ID (uuid)"
// @Success 200 {object} response.Response{data=dto.WatchStatus} "已取消"
// @Failure 404 {object} response.ErrorResponse "剧集不存在"
// @Router /episodes/{id}/watched [delete]
func (h *WatchHandler) MarkUnwatched(c *gin.Context) {
	h.update(c, false)
}

func (h *WatchHandler) update(c *gin.Context, watched bool) {
	var uri dto.EpisodeIDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "无效的剧集ID")
		return
	}

	var (
		status *dto.WatchStatus
		err    error
	)
	if watched {
		status, err = h.watchService.MarkWatched(c.Request.Context(), uri.ID)
	} else {
		status, err = h.watchService.MarkUnwatched(c.Request.Context(), uri.ID)
	}
	if err != nil {
		if errors.Is(err, service.ErrEpisodeNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Update watch status failed",
			zap.String("episode_id", uri.ID),
			zap.Bool("watched", watched),
			zap.Error(err),
		)
		response.InternalError(c, "更新观看状态失败")
		return
	}

	message := "已标记为已看"
	if !watched {
		message = "已标记为未看"
	}
	response.OK(c, message, status)
}

// GetStatus GET /api/v1/episodes/:id/watched
// @Summary 观看状态
// @Tags 观看记录
// @Produce json
// @Param id path string true "剧集ID (uuid)"
// @Success 200 {object} response.Response{data=dto.WatchStatus} "获取成功"
// @Failure 404 {object} response.ErrorResponse "剧集不存在"
// @Router /episodes/{id}/watched [get]
func (h *WatchHandler) GetStatus(c *gin.Context) {
	var uri dto.EpisodeIDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "无效的剧集ID")
		return
	}

	status, err := h.watchService.Status(c.Request.Context(), uri.ID)
	if err != nil {
		if errors.Is(err, service.ErrEpisodeNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Get watch status failed", zap.String("episode_id", uri.ID), zap.Error(err))
		response.InternalError(c, "获取观看状态失败")
		return
	}
	response.OK(c, "获取成功", status)
}
