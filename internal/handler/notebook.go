package handler

import (
	"errors"
	"net/http"

	"github.com/amformscst/backend/internal/model"
	"github.com/amformscst/backend/internal/service"
	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

// NotebookHandler 笔记本 Handler
type NotebookHandler struct {
	notebook service.NotebookService
}

func NewNotebookHandler(notebook service.NotebookService) *NotebookHandler {
	return &NotebookHandler{notebook: notebook}
}

func (h *NotebookHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/notes", h.Get)
	router.PUT("/notes", h.Replace)
	router.POST("/notes/select", h.Select)
}

func (h *NotebookHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.notebook.Notebook()})
}

// Replace 整体替换笔记本
func (h *NotebookHandler) Replace(c *gin.Context) {
	nb := model.NewNotebook()
	if err := c.ShouldBindJSON(nb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.notebook.Replace(c.Request.Context(), nb); err != nil {
		klog.Errorf("替换笔记本失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": nb})
}

// Select 更新选择路径
func (h *NotebookHandler) Select(c *gin.Context) {
	var req service.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	nb, err := h.notebook.Select(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrSelectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": nb})
}
