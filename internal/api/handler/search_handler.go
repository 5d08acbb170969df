package handler

import (
	"microdrama-go/internal/api/dto"
	"microdrama-go/internal/api/response"
	"microdrama-go/internal/service"
	"microdrama-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchShows 搜索短剧
// @Summary 搜索短剧
// @Description 按标题/简介搜索，优先使用 Elasticsearch，不可用时降级为数据库查询
// @Tags 搜索
// @Produce json
// @Param q query string false "搜索关键词"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.SearchShowData} "搜索成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /shows/search [get]
func (h *SearchHandler) SearchShows(c *gin.Context) {
	var req dto.SearchShowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.searchService.SearchShows(c.Request.Context(), &req)
	if err != nil {
		logger.Error("Search shows failed", zap.Error(err))
		response.InternalError(c, "搜索失败")
		return
	}

	response.OK(c, "搜索成功", data)
}
