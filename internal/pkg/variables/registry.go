package variables

import (
	"sync"

	"k8s.io/klog/v2"
)

// Registry 缓存内置变量列表
// 首次访问时构建；更换上下文来源或 Invalidate 后，下一次访问重新构建
type Registry struct {
	mu         sync.Mutex
	provider   ContextProvider
	loose      map[string]string
	vars       []*Variable
	built      bool
	generation uint64
}

// NewRegistry 创建注册表，loose 为组织常量，会被复制
func NewRegistry(provider ContextProvider, loose map[string]string) *Registry {
	return &Registry{
		provider: provider,
		loose:    copyLoose(loose),
	}
}

// Variables 返回变量列表，调用方不应修改返回切片中的变量
func (r *Registry) Variables() []*Variable {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.built {
		r.vars = BuildRegistry(r.provider, r.loose)
		r.built = true
		r.generation++
		klog.V(6).Infof("变量注册表已构建: generation=%d, count=%d", r.generation, len(r.vars))
	}

	out := make([]*Variable, len(r.vars))
	copy(out, r.vars)
	return out
}

// SetProvider 更换上下文来源，已构建的变量作废
func (r *Registry) SetProvider(provider ContextProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.provider = provider
	r.built = false
}

// SetLooseVariables 更换组织常量，已构建的变量作废
func (r *Registry) SetLooseVariables(loose map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loose = copyLoose(loose)
	r.built = false
}

// Invalidate 强制下一次访问重新构建
func (r *Registry) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.built = false
}

// Generation 已构建的次数
func (r *Registry) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// Lookup 按 ProperName 查找
func (r *Registry) Lookup(properName string) (*Variable, bool) {
	return Lookup(r.Variables(), properName)
}

func copyLoose(loose map[string]string) map[string]string {
	out := make(map[string]string, len(loose))
	for k, v := range loose {
		out[k] = v
	}
	return out
}
