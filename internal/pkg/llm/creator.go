package llm

import (
	"context"
	"errors"
	"fmt"
)

// Idea 一条完整的选题建议
type Idea struct {
	Title       string
	Description string
	Tags        []string
}

const defaultTitlesPrompt = `你是小红书爆款标题专家。根据用户给出的主题，生成指定数量的小红书风格标题。
要求：带 emoji、制造好奇心或紧迫感、长度 10-25 字。
每行输出一个标题，不要输出解释。`

const defaultIdeasPrompt = `你是小红书内容策划。根据用户给出的类目，生成指定数量的选题建议。
每条建议包含三行：标题：xxx、描述：xxx、标签：tag1,tag2,tag3。
建议之间用单独一行 --- 分隔，不要输出其他内容。`

// Creator 创作助手文本生成器
type Creator struct{}

func NewCreator() *Creator {
	return &Creator{}
}

// GenerateTitles 为指定主题生成爆款标题
func (s *Creator) GenerateTitles(ctx context.Context, topic string, count int) ([]string, error) {
	system := titlesPrompt
	if system == "" {
		system = defaultTitlesPrompt
	}
	user := fmt.Sprintf("主题：%s，生成 %d 个标题", topic, count)

	resp, err := fetchModel(ctx, system, user, 0.8)
	if err != nil {
		return nil, err
	}
	content, err := firstChoice(resp)
	if err != nil {
		return nil, err
	}

	titles := ParseTitleLines(content, count)
	if len(titles) == 0 {
		return nil, errors.New("no usable titles in llm response")
	}
	return titles, nil
}

// GenerateIdeas 为指定类目生成选题建议
func (s *Creator) GenerateIdeas(ctx context.Context, category string, count int) ([]*Idea, error) {
	system := ideasPrompt
	if system == "" {
		system = defaultIdeasPrompt
	}
	user := fmt.Sprintf("类目：%s，生成 %d 条选题建议", category, count)

	resp, err := fetchModel(ctx, system, user, 0.9)
	if err != nil {
		return nil, err
	}
	content, err := firstChoice(resp)
	if err != nil {
		return nil, err
	}

	ideas := ParseIdeaBlocks(content)
	if len(ideas) == 0 {
		return nil, errors.New("no usable ideas in llm response")
	}
	if len(ideas) > count {
		ideas = ideas[:count]
	}
	return ideas, nil
}
