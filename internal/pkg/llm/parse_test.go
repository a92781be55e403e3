package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTitleLines(t *testing.T) {
	content := `1. 🔥秋冬护肤必看攻略，干皮亲测有效
2) 七天养成冷白皮的秘密
好的
3、 新手也能学会的护肤顺序💡
`
	titles := ParseTitleLines(content, 10)
	require.Len(t, titles, 3)
	assert.Equal(t, "🔥秋冬护肤必看攻略，干皮亲测有效", titles[0])
	assert.Equal(t, "七天养成冷白皮的秘密", titles[1])
	assert.Equal(t, "新手也能学会的护肤顺序💡", titles[2])
}

func TestParseTitleLinesRespectsLimit(t *testing.T) {
	content := "第一个足够长的标题\n第二个足够长的标题\n第三个足够长的标题"
	titles := ParseTitleLines(content, 2)
	assert.Len(t, titles, 2)
}

func TestParseTitleLinesEmptyContent(t *testing.T) {
	assert.Empty(t, ParseTitleLines("", 5))
	assert.Empty(t, ParseTitleLines("短\n太短", 5))
}

func TestParseIdeaBlocks(t *testing.T) {
	content := `标题：秋季穿搭公式
描述：用三件基础单品搭出通勤感
标签：穿搭,通勤，秋天
---
标题：一周减脂餐
描述：低卡又好吃
标签：#减脂 #食谱
---
描述：没有标题的块会被丢弃
`
	ideas := ParseIdeaBlocks(content)
	require.Len(t, ideas, 2)

	assert.Equal(t, "秋季穿搭公式", ideas[0].Title)
	assert.Equal(t, "用三件基础单品搭出通勤感", ideas[0].Description)
	assert.Equal(t, []string{"穿搭", "通勤", "秋天"}, ideas[0].Tags)

	assert.Equal(t, "一周减脂餐", ideas[1].Title)
	assert.Equal(t, []string{"减脂 #食谱"}, ideas[1].Tags)
}

func TestParseIdeaBlocksHalfWidthColon(t *testing.T) {
	content := "标题: 半角冒号也能解析\n描述: ok\n标签: a,b"
	ideas := ParseIdeaBlocks(content)
	require.Len(t, ideas, 1)
	assert.Equal(t, "半角冒号也能解析", ideas[0].Title)
}
