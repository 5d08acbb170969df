package handler

import (
	"errors"

	"microdrama-go/internal/api/dto"
	"microdrama-go/internal/api/response"
	"microdrama-go/internal/model"
	"microdrama-go/internal/service"
	"microdrama-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ShowHandler struct {
	showService *service.ShowService
}

func NewShowHandler(showService *service.ShowService) *ShowHandler {
	return &ShowHandler{showService: showService}
}

// List 短剧列表
// @Summary 短剧列表
// @Description 返回全部短剧及点赞/点踩汇总，最新创建的在前
// @Tags 短剧
// @Produce json
// @Success 200 {object} response.Response{data=dto.ShowListData} "获取成功"
// @Failure 500 {object} response.ErrorResponse "服务器内部错误"
// @Router /shows [get]
func (h *ShowHandler) List(c *gin.Context) {
	data, err := h.showService.List(c.Request.Context())
	if err != nil {
		logger.Error("List shows failed", zap.Error(err))
		response.InternalError(c, "获取短剧列表失败")
		return
	}
	response.OK(c, "获取成功", data)
}

// GetDetail 短剧详情
// @Summary 短剧详情
// @Description 返回短剧元数据、评分汇总与按序号排列的剧集（含播放地址）
// @Tags 短剧
// @Produce json
// @Param id path string true "短剧ID (uuid)"
// @Success 200 {object} response.Response{data=dto.ShowDetail} "获取成功"
// @Failure 400 {object} response.ErrorResponse "短剧ID无效"
// @Failure 404 {object} response.ErrorResponse "短剧不存在"
// @Router /shows/{id} [get]
func (h *ShowHandler) GetDetail(c *gin.Context) {
	var uri dto.ShowIDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "无效的短剧ID")
		return
	}

	detail, err := h.showService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		if errors.Is(err, service.ErrShowNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Get show detail failed", zap.String("show_id", uri.ID), zap.Error(err))
		response.InternalError(c, "获取短剧详情失败")
		return
	}
	response.OK(c, "获取成功", detail)
}

// ListEpisodes 剧集列表
// @Summary 剧集列表
// @Description 按观看状态筛选并排序；短剧不存在时返回空列表
// @Tags 短剧
// @Produce json
// @Param id path string true "短剧ID (uuid)"
// @Param filterBy query string false "筛选: all, watched, unwatched" default(all)
// @Param sortBy query string false "排序字段: title, order, created_at" default(order)
// @Param orderBy query string false "排序方向: asc, desc" default(asc)
// @Success 200 {object} response.Response{data=dto.EpisodeListData} "获取成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /shows/{id}/episodes [get]
func (h *ShowHandler) ListEpisodes(c *gin.Context) {
	var uri dto.ShowIDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "无效的短剧ID")
		return
	}

	var q dto.EpisodeListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.showService.ListEpisodes(c.Request.Context(), uri.ID, model.EpisodeQuery{
		Filter:    model.WatchFilter(q.FilterBy),
		SortBy:    model.SortField(q.SortBy),
		Direction: model.SortDirection(q.OrderBy),
	})
	if err != nil {
		logger.Error("List episodes failed", zap.String("show_id", uri.ID), zap.Error(err))
		response.InternalError(c, "获取剧集列表失败")
		return
	}
	response.OK(c, "获取成功", data)
}
