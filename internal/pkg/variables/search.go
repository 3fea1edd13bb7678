package variables

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Search 按 ProperName、描述和别名模糊匹配，按匹配度排序；空查询返回全部
func Search(query string, vars []*Variable) []*Variable {
	if strings.TrimSpace(query) == "" {
		out := make([]*Variable, len(vars))
		copy(out, vars)
		return out
	}

	searchStrings := make([]string, len(vars))
	for i, v := range vars {
		if v == nil {
			continue
		}
		searchStrings[i] = v.ProperName + " " + v.Description + " " + strings.Join(v.Aliases, " ")
	}

	matches := fuzzy.Find(query, searchStrings)
	results := make([]*Variable, 0, len(matches))
	for _, match := range matches {
		results = append(results, vars[match.Index])
	}
	return results
}
