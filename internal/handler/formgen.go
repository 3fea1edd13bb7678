package handler

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/amformscst/backend/internal/pkg/formgen"
	"github.com/amformscst/backend/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	xmlContentType = "application/xml; charset=utf-8"
	formgenExt     = ".formgen"
)

var errFormgenName = errors.New("invalid formgen file name")

// FormgenHandler .formgen 解析与生成，dir 为空时不提供文件读写
type FormgenHandler struct {
	formgen service.FormgenService
	dir     string
}

func NewFormgenHandler(formgen service.FormgenService, dir string) *FormgenHandler {
	return &FormgenHandler{formgen: formgen, dir: dir}
}

func (h *FormgenHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/formgen/parse", h.Parse)
	router.POST("/formgen/generate", h.Generate)
	router.POST("/formgen/clone-prompt", h.ClonePrompt)
	router.GET("/formgen/files/:name", h.Load)
	router.PUT("/formgen/files/:name", h.Save)
}

// resolvePath 只接受目录下的文件名，缺省补 .formgen 扩展名
func (h *FormgenHandler) resolvePath(name string) (string, error) {
	if h.dir == "" {
		return "", fmt.Errorf("%w: formgen directory is not configured", errFormgenName)
	}
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", errFormgenName, name)
	}
	if filepath.Ext(name) == "" {
		name += formgenExt
	}
	return filepath.Join(h.dir, name), nil
}

// Load 读取目录下的 .formgen 文件
func (h *FormgenHandler) Load(c *gin.Context) {
	path, err := h.resolvePath(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := h.formgen.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "formgen file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"document": doc,
		"summary":  h.formgen.Summary(doc),
	}})
}

// Save 请求体为文档 JSON，覆盖前备份旧文件
func (h *FormgenHandler) Save(c *gin.Context) {
	path, err := h.resolvePath(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc := formgen.New()
	if err := c.ShouldBindJSON(doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.formgen.Save(path, doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.formgen.Summary(doc)})
}

// ClonePromptRequest new_name 为空时在原变量名上自增
type ClonePromptRequest struct {
	XML         string `json:"xml" binding:"required"`
	PromptIndex int    `json:"prompt_index"`
	NewName     string `json:"new_name"`
}

// Parse 请求体为 .formgen 原文
func (h *FormgenHandler) Parse(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := formgen.Parse(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"document": doc,
		"summary":  h.formgen.Summary(doc),
	}})
}

// Generate 请求体为文档 JSON，返回 XML
func (h *FormgenHandler) Generate(c *gin.Context) {
	doc := formgen.New()
	if err := c.ShouldBindJSON(doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := doc.Generate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, xmlContentType, out)
}

// ClonePrompt 复制指定 PROMPT 行并返回新的 XML
func (h *FormgenHandler) ClonePrompt(c *gin.Context) {
	var req ClonePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := formgen.Parse([]byte(req.XML))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.formgen.ClonePrompt(doc, req.PromptIndex, req.NewName); err != nil {
		if errors.Is(err, formgen.ErrIndexOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out, err := doc.Generate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, xmlContentType, out)
}
