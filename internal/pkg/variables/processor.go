package variables

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrFormat 格式串非法或占位符下标越界
var ErrFormat = errors.New("invalid format string")

// maxIndex 占位符下标上限，防止超长数字溢出
const maxIndex = 1_000_000

// Process 按顺序取变量值，用非空覆盖值替换后做位置格式化
// User:Input 的覆盖值即使为空也会替换
func Process(rawText string, ordered []*Variable, overrides []string) (string, error) {
	if len(overrides) > len(ordered) {
		return "", fmt.Errorf("%w: %d overrides for %d variables", ErrFormat, len(overrides), len(ordered))
	}

	values := make([]string, len(ordered))
	for i, v := range ordered {
		values[i] = v.GetValue()
	}
	for i, override := range overrides {
		if override != "" || ordered[i].IsUserInput() {
			values[i] = override
		}
	}

	return Format(rawText, values)
}

// Format 复合格式化：{index[,alignment][:format]}，{{ 和 }} 为转义
// alignment 为正右对齐、为负左对齐；字符串参数忽略 format
func Format(format string, args []string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(format))

	i := 0
	for i < len(format) {
		c := format[i]
		switch c {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				sb.WriteByte('{')
				i += 2
				continue
			}
			next, err := writeItem(&sb, format, i, args)
			if err != nil {
				return "", err
			}
			i = next
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				sb.WriteByte('}')
				i += 2
				continue
			}
			return "", fmt.Errorf("%w: unmatched '}' at %d", ErrFormat, i)
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), nil
}

// writeItem 解析从 start（指向 '{'）开始的一个格式项，返回其后的位置
func writeItem(sb *strings.Builder, format string, start int, args []string) (int, error) {
	i := start + 1
	n := len(format)

	digits := i
	index := 0
	for i < n && isDigit(format[i]) {
		index = index*10 + int(format[i]-'0')
		if index >= maxIndex {
			return 0, fmt.Errorf("%w: index too large at %d", ErrFormat, start)
		}
		i++
	}
	if i == digits {
		return 0, fmt.Errorf("%w: missing index at %d", ErrFormat, start)
	}
	i = skipSpaces(format, i)

	align := 0
	if i < n && format[i] == ',' {
		i = skipSpaces(format, i+1)
		negative := false
		if i < n && format[i] == '-' {
			negative = true
			i++
		}
		alignStart := i
		for i < n && isDigit(format[i]) {
			align = align*10 + int(format[i]-'0')
			if align >= maxIndex {
				return 0, fmt.Errorf("%w: alignment too large at %d", ErrFormat, start)
			}
			i++
		}
		if i == alignStart {
			return 0, fmt.Errorf("%w: missing alignment at %d", ErrFormat, start)
		}
		if negative {
			align = -align
		}
		i = skipSpaces(format, i)
	}

	if i < n && format[i] == ':' {
		// 格式说明对字符串参数无效，只校验它能正常闭合
		i++
		for i < n && format[i] != '}' {
			if format[i] == '{' {
				return 0, fmt.Errorf("%w: unexpected '{' in format item at %d", ErrFormat, start)
			}
			i++
		}
	}

	if i >= n || format[i] != '}' {
		return 0, fmt.Errorf("%w: unterminated format item at %d", ErrFormat, start)
	}
	if index >= len(args) {
		return 0, fmt.Errorf("%w: index %d out of range (%d arguments)", ErrFormat, index, len(args))
	}

	sb.WriteString(pad(args[index], align))
	return i + 1, nil
}

func pad(value string, align int) string {
	width := align
	if width < 0 {
		width = -width
	}
	fill := width - utf8.RuneCountInString(value)
	if fill <= 0 {
		return value
	}
	if align > 0 {
		return strings.Repeat(" ", fill) + value
	}
	return value + strings.Repeat(" ", fill)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func skipSpaces(s string, i int) int {
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return i
}
