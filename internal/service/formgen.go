package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/amformscst/backend/internal/pkg/formgen"
	"k8s.io/klog/v2"
)

const backupTimeLayout = "2006-01-02.15-04-05.000"

// FormgenSummary 表单概要
type FormgenSummary struct {
	Title       string   `json:"title"`
	UUID        string   `json:"uuid"`
	Category    string   `json:"category"`
	Format      string   `json:"format"`
	PageCount   int      `json:"page_count"`
	FieldCount  int      `json:"field_count"`
	InitCount   int      `json:"init_count"`
	PromptCount int      `json:"prompt_count"`
	PostCount   int      `json:"post_count"`
	States      []string `json:"states"`
}

// FormgenService .formgen 文件读写与编辑
type FormgenService interface {
	Load(path string) (*formgen.DotFormgen, error)
	Save(path string, doc *formgen.DotFormgen) error
	Summary(doc *formgen.DotFormgen) FormgenSummary
	ClonePrompt(doc *formgen.DotFormgen, promptIndex int, newName string) (*formgen.CodeLine, error)
}

type formgenService struct {
	backupDir string
	retention uint
	now       func() time.Time
}

// NewFormgenService backupDir 为空时不做备份，retention 为 0 时不清理旧备份
func NewFormgenService(backupDir string, retention uint) FormgenService {
	return &formgenService{backupDir: backupDir, retention: retention, now: time.Now}
}

// Load 读取并解析文件
func (s *formgenService) Load(path string) (*formgen.DotFormgen, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read formgen file: %w", err)
	}
	doc, err := formgen.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse formgen file %s: %w", path, err)
	}
	klog.V(6).Infof("Load: 已读取表单 %s (%s)", doc.Title, path)
	return doc, nil
}

// Save 先备份磁盘上的旧文件再写入
func (s *formgenService) Save(path string, doc *formgen.DotFormgen) error {
	if doc == nil {
		return fmt.Errorf("failed to save formgen file: document is nil")
	}
	data, err := doc.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate formgen file: %w", err)
	}

	if old, err := os.ReadFile(path); err == nil {
		s.backup(doc.Settings.PublishedUUID, old)
	} else if !os.IsNotExist(err) {
		klog.Warningf("Save: 读取旧文件失败，跳过备份: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create formgen directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write formgen file: %w", err)
	}
	klog.V(6).Infof("Save: 已保存表单 %s (%s)", doc.Title, path)
	return nil
}

// backup 写入 <backupDir>/<uuid>/<时间戳>.bak 并清理旧备份，失败只记录日志
func (s *formgenService) backup(uuid string, data []byte) {
	if s.backupDir == "" {
		return
	}
	if strings.TrimSpace(uuid) == "" {
		uuid = "unknown"
	}

	dir := filepath.Join(s.backupDir, filepath.Base(uuid))
	if err := os.MkdirAll(dir, 0755); err != nil {
		klog.Errorf("backup: 创建备份目录失败 %s: %v", dir, err)
		return
	}

	name := filepath.Join(dir, s.now().Format(backupTimeLayout)+".bak")
	if err := os.WriteFile(name, data, 0644); err != nil {
		klog.Errorf("backup: 写入备份失败 %s: %v", name, err)
		return
	}
	klog.V(6).Infof("backup: 已备份表单 %s", name)

	s.prune(dir)
}

// prune 只保留最新的 retention 个备份；文件名即时间戳，按名称排序
func (s *formgenService) prune(dir string) {
	if s.retention == 0 {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		klog.Errorf("prune: 读取备份目录失败 %s: %v", dir, err)
		return
	}

	var backups []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".bak") {
			backups = append(backups, entry.Name())
		}
	}
	if uint(len(backups)) <= s.retention {
		return
	}

	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	for _, name := range backups[s.retention:] {
		full := filepath.Join(dir, name)
		if err := os.Remove(full); err != nil {
			klog.Warningf("prune: 删除旧备份失败 %s: %v", full, err)
			continue
		}
		klog.V(6).Infof("prune: 已删除旧备份 %s", full)
	}
}

// Summary 计数每次重新计算
func (s *formgenService) Summary(doc *formgen.DotFormgen) FormgenSummary {
	if doc == nil {
		return FormgenSummary{States: []string{}}
	}
	states := doc.States
	if states == nil {
		states = []string{}
	}
	return FormgenSummary{
		Title:       doc.Title,
		UUID:        doc.Settings.PublishedUUID,
		Category:    doc.Category.String(),
		Format:      doc.FormType.String(),
		PageCount:   len(doc.Pages),
		FieldCount:  doc.FieldCount(),
		InitCount:   doc.InitCount(),
		PromptCount: doc.PromptCount(),
		PostCount:   doc.PostCount(),
		States:      states,
	}
}

// ClonePrompt 复制第 promptIndex 个 PROMPT 行
// newName 为空时在原变量名上自增，序号取下一个可用值
func (s *formgenService) ClonePrompt(doc *formgen.DotFormgen, promptIndex int, newName string) (*formgen.CodeLine, error) {
	if doc == nil {
		return nil, fmt.Errorf("failed to clone prompt: document is nil")
	}
	prompt, err := doc.GetPrompt(promptIndex)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(newName) == "" {
		newName = formgen.AutoIncrement(prompt.Settings.Variable)
	}
	line := doc.ClonePrompt(prompt, newName, doc.NextPromptOrder())
	klog.V(6).Infof("ClonePrompt: %s -> %s (order=%d)", prompt.Settings.Variable, newName, line.Settings.Order)
	return line, nil
}
