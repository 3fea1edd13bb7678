package variables

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Match 文本中一次变量引用
type Match struct {
	Position int       // 字节偏移
	Length   int       // 在文本中匹配到的字节数
	Variable *Variable // 命中的变量
	Alias    string    // 命中的候选写法
}

// ContainsVariable 文本中是否引用了任一变量
func ContainsVariable(text string, vars []*Variable) bool {
	for _, v := range vars {
		if v == nil {
			continue
		}
		for _, candidate := range v.Candidates() {
			if pos, _ := indexFold(text, candidate); pos >= 0 {
				return true
			}
		}
	}
	return false
}

// GetFirstVariable 返回最靠前的变量引用
// 起始位置相同时取扫描顺序中先出现的候选；没有引用时返回 (-1, nil, "")
func GetFirstVariable(text string, vars []*Variable) (int, *Variable, string) {
	m, ok := firstMatch(text, vars)
	if !ok {
		return -1, nil, ""
	}
	return m.Position, m.Variable, m.Alias
}

func firstMatch(text string, vars []*Variable) (Match, bool) {
	best := Match{Position: -1}
	if !ContainsVariable(text, vars) {
		return best, false
	}

	for _, v := range vars {
		if v == nil {
			continue
		}
		for _, candidate := range v.Candidates() {
			pos, n := indexFold(text, candidate)
			if pos == -1 {
				continue
			}
			if best.Variable == nil || pos < best.Position {
				best = Match{Position: pos, Length: n, Variable: v, Alias: candidate}
			}
		}
	}
	return best, best.Variable != nil
}

// Matches 从左到右依次取出所有变量引用，引用之间不重叠
func Matches(text string, vars []*Variable) []Match {
	var out []Match
	offset := 0
	for offset <= len(text) {
		m, ok := firstMatch(text[offset:], vars)
		if !ok {
			break
		}
		m.Position += offset
		out = append(out, m)
		offset = m.Position + m.Length
	}
	return out
}

// FindVariables 文本中以 ProperName 或 Prefix+Name 引用的变量，按注册顺序
func FindVariables(text string, vars []*Variable) []*Variable {
	var out []*Variable
	for _, v := range vars {
		if v == nil {
			continue
		}
		if pos, _ := indexFold(text, v.ProperName); pos >= 0 {
			out = append(out, v)
			continue
		}
		if pos, _ := indexFold(text, v.Prefix+v.Name); pos >= 0 {
			out = append(out, v)
		}
	}
	return out
}

// Prepare 把文本中的变量引用依次替换成 {0}、{1}…，
// 其余文本中的花括号转义，返回格式串和对应顺序的变量
func Prepare(text string, vars []*Variable) (string, []*Variable) {
	matches := Matches(text, vars)
	ordered := make([]*Variable, 0, len(matches))

	var sb strings.Builder
	last := 0
	for i, m := range matches {
		sb.WriteString(escapeBraces(text[last:m.Position]))
		sb.WriteString("{" + strconv.Itoa(i) + "}")
		ordered = append(ordered, m.Variable)
		last = m.Position + m.Length
	}
	sb.WriteString(escapeBraces(text[last:]))
	return sb.String(), ordered
}

func escapeBraces(s string) string {
	if !strings.ContainsAny(s, "{}") {
		return s
	}
	s = strings.ReplaceAll(s, "{", "{{")
	return strings.ReplaceAll(s, "}", "}}")
}

// indexFold 不区分大小写的子串查找，返回起始字节偏移和匹配到的字节数
// 空候选不参与匹配
func indexFold(s, substr string) (int, int) {
	if substr == "" {
		return -1, 0
	}
	for i := 0; i < len(s); {
		if n, ok := hasPrefixFold(s[i:], substr); ok {
			return i, n
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return -1, 0
}

func hasPrefixFold(s, prefix string) (int, bool) {
	consumed := 0
	for prefix != "" {
		if s == "" {
			return 0, false
		}
		r1, n1 := utf8.DecodeRuneInString(s)
		r2, n2 := utf8.DecodeRuneInString(prefix)
		if r1 != r2 && !strings.EqualFold(string(r1), string(r2)) {
			return 0, false
		}
		s = s[n1:]
		prefix = prefix[n2:]
		consumed += n1
	}
	return consumed, true
}
