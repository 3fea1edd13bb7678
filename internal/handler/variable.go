package handler

import (
	"errors"
	"net/http"

	"github.com/amformscst/backend/internal/pkg/variables"
	"github.com/amformscst/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// VariableHandler 变量查询与扫描
type VariableHandler struct {
	render service.RenderService
}

func NewVariableHandler(render service.RenderService) *VariableHandler {
	return &VariableHandler{render: render}
}

func (h *VariableHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/variables", h.List)
	router.POST("/variables/scan", h.Scan)
	router.POST("/variables/process", h.Process)
}

type ScanRequest struct {
	Text string `json:"text"`
}

// ProcessRequest variables 为 ProperName 列表，对应 text 中的 {0}、{1}…
type ProcessRequest struct {
	Text      string   `json:"text"`
	Variables []string `json:"variables"`
	Overrides []string `json:"overrides"`
}

// List 列出变量及当前值，q 非空时模糊搜索
func (h *VariableHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.render.Variables(c.Query("q"))})
}

func (h *VariableHandler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.render.Scan(req.Text)})
}

func (h *VariableHandler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.render.Process(req.Text, req.Variables, req.Overrides)
	if err != nil {
		if errors.Is(err, service.ErrVariableNotFound) || errors.Is(err, variables.ErrFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"text": text}})
}
