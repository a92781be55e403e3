package llm

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var lineNumberPattern = regexp.MustCompile(`^\d+[\.\)、]?\s*`)

// ParseTitleLines 从模型输出中逐行提取标题。
// 去掉行首编号与引号，过长度阈值过滤解释性短句，最多取 limit 条。
func ParseTitleLines(content string, limit int) []string {
	titles := make([]string, 0, limit)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = lineNumberPattern.ReplaceAllString(line, "")
		line = strings.Trim(line, `"「」`)

		if utf8.RuneCountInString(line) <= 5 {
			continue
		}
		titles = append(titles, line)
		if len(titles) >= limit {
			break
		}
	}
	return titles
}

var tagSeparator = regexp.MustCompile(`[,，、]`)

// ParseIdeaBlocks 解析 --- 分隔的选题块，块内按 标题：/描述：/标签： 前缀取字段。
// 缺少标题的块丢弃。
func ParseIdeaBlocks(content string) []*Idea {
	ideas := make([]*Idea, 0)
	for _, block := range strings.Split(content, "---") {
		idea := &Idea{}
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			line = lineNumberPattern.ReplaceAllString(line, "")

			switch {
			case hasLabel(line, "标题"):
				idea.Title = stripLabel(line, "标题")
			case hasLabel(line, "描述"):
				idea.Description = stripLabel(line, "描述")
			case hasLabel(line, "标签"):
				for _, tag := range tagSeparator.Split(stripLabel(line, "标签"), -1) {
					tag = strings.TrimSpace(strings.TrimPrefix(tag, "#"))
					if tag != "" {
						idea.Tags = append(idea.Tags, tag)
					}
				}
			}
		}
		if idea.Title != "" {
			ideas = append(ideas, idea)
		}
	}
	return ideas
}

func hasLabel(line, label string) bool {
	return strings.HasPrefix(line, label+"：") || strings.HasPrefix(line, label+":")
}

func stripLabel(line, label string) string {
	line = strings.TrimPrefix(line, label+"：")
	line = strings.TrimPrefix(line, label+":")
	return strings.TrimSpace(line)
}
