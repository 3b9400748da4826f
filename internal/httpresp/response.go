package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicops/clinic-scheduler/internal/dto"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type PageResponse[T any] struct {
	Data    []T   `json:"data"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Page[T any](c *gin.Context, p dto.Page[T]) {
	c.JSON(http.StatusOK, PageResponse[T]{
		Data:    p.Items,
		Page:    p.Page,
		Limit:   p.Limit,
		Total:   p.Total,
		HasNext: p.HasNext,
		HasPrev: p.HasPrev,
	})
}
