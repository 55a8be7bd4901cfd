package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kona/dto"
	"kona/repositories"
	"kona/services"
)

// ListTopicsHandler 토픽 요약 목록 조회 (최신 갱신순, 페이지네이션)
func ListTopicsHandler(svc *services.TopicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ListTopicsInput
		in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		in.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
		in.Keyword = c.Query("keyword")

		entries, err := svc.List(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		items := make([]dto.TopicSummaryDTO, 0, len(entries))
		for _, entry := range entries {
			items = append(items, dto.NewTopicSummaryDTO(entry))
		}
		c.JSON(http.StatusOK, items)
	}
}

// GetTopicHandler 토픽 ID로 기사 레코드 전체 조회
func GetTopicHandler(svc *services.TopicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		topicID := c.Param("id")
		record, err := svc.Get(c.Request.Context(), topicID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.NewTopicDetailDTO(*record))
	}
}

// GetTopicHistoryHandler 토픽의 버전 체인 조회 (최신 버전부터)
func GetTopicHistoryHandler(svc *services.TopicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		topicID := c.Param("id")
		chain, err := svc.History(c.Request.Context(), topicID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if len(chain) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		items := make([]dto.VersionDTO, 0, len(chain))
		for _, v := range chain {
			items = append(items, dto.NewVersionDTO(v))
		}
		c.JSON(http.StatusOK, items)
	}
}
