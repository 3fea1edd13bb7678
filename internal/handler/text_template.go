package handler

import (
	"errors"
	"net/http"

	"github.com/amformscst/backend/internal/model"
	"github.com/amformscst/backend/internal/pkg/richtext"
	"github.com/amformscst/backend/internal/pkg/variables"
	"github.com/amformscst/backend/internal/service"
	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

// TextTemplateHandler 文本模板 Handler
type TextTemplateHandler struct {
	templates service.TemplateEnforcer
	render    service.RenderService
}

// NewTextTemplateHandler 创建 Handler
func NewTextTemplateHandler(templates service.TemplateEnforcer, render service.RenderService) *TextTemplateHandler {
	return &TextTemplateHandler{templates: templates, render: render}
}

// RegisterRoutes 注册路由
func (h *TextTemplateHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/templates", h.List)
	router.POST("/templates", h.Create)
	router.GET("/templates/states", h.StateCodes)
	router.GET("/templates/:id", h.Get)
	router.PUT("/templates/:id", h.Update)
	router.DELETE("/templates/:id", h.Delete)
	router.POST("/templates/:id/render", h.Render)
	router.GET("/templates/:id/variables", h.Variables)
}

// TextTemplateRequest 创建/更新模板请求，text 可以是纯文本或 FlowDocument 标记
type TextTemplateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Text        string `json:"text"`
}

// RenderRequest 渲染请求，overrides 与模板中变量出现顺序对应
type RenderRequest struct {
	Overrides []string `json:"overrides"`
}

// TextTemplateResponse 模板响应
type TextTemplateResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	TypeValue   int    `json:"type_value"`
	Text        string `json:"text"`
	PlainText   string `json:"plain_text"`
}

func toTextTemplateResponse(t *model.TextTemplate) TextTemplateResponse {
	return TextTemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Type:        t.Type.String(),
		TypeValue:   int(t.Type),
		Text:        t.TextXaml,
		PlainText:   t.PlainText(),
	}
}

func (r TextTemplateRequest) toModel() *model.TextTemplate {
	typ, _ := model.ParseTemplateType(r.Type)
	return model.NewTextTemplate(r.Name, r.Description, richtext.Normalize(r.Text), typ)
}

// List 获取模板列表
func (h *TextTemplateHandler) List(c *gin.Context) {
	templates := h.templates.Templates()
	resp := make([]TextTemplateResponse, 0, len(templates))
	for _, t := range templates {
		resp = append(resp, toTextTemplateResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Get 获取模板详情
func (h *TextTemplateHandler) Get(c *gin.Context) {
	t, err := h.templates.GetTemplate(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toTextTemplateResponse(t)})
}

// Create 创建模板
func (h *TextTemplateHandler) Create(c *gin.Context) {
	var req TextTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := req.toModel()
	if err := h.templates.AddTemplate(c.Request.Context(), t); err != nil {
		writeTemplateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": toTextTemplateResponse(t)})
}

// Update 更新模板名称、描述和正文，模板不存在时 updated 为 false
func (h *TextTemplateHandler) Update(c *gin.Context) {
	var req TextTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := req.toModel()
	t.ID = c.Param("id")
	updated, err := h.templates.UpdateTemplate(c.Request.Context(), t)
	if err != nil {
		writeTemplateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// Delete 删除模板
func (h *TextTemplateHandler) Delete(c *gin.Context) {
	t, err := h.templates.GetTemplate(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}
	if err := h.templates.RemoveTemplate(c.Request.Context(), t); err != nil {
		writeTemplateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Render 渲染模板
func (h *TextTemplateHandler) Render(c *gin.Context) {
	var req RenderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	text, err := h.render.Render(c.Param("id"), req.Overrides)
	if err != nil {
		writeTemplateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"text": text}})
}

// Variables 模板中引用的变量，顺序与 overrides 对应
func (h *TextTemplateHandler) Variables(c *gin.Context) {
	plan, err := h.render.Plan(c.Param("id"))
	if err != nil {
		writeTemplateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plan})
}

// StateCodes 表单可用的州代码
func (h *TextTemplateHandler) StateCodes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.templates.StateCodes()})
}

func writeTemplateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.IsValidationError(err), errors.Is(err, variables.ErrFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		klog.Errorf("模板操作失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
