package analytics

import (
	"Prism/internal/model"
	"Prism/internal/pkg/consts"
	log "log/slog"
	"strings"

	"github.com/liuzl/gocc"
)

// CategoryDict 单个类目的关键词表
type CategoryDict struct {
	Label    string
	Keywords []string
}

// DefaultCategory 无任何关键词命中时的兜底类目
const DefaultCategory = "生活方式"

// defaultCategoryDicts 类目词表，声明顺序即平局时的优先顺序
var defaultCategoryDicts = []CategoryDict{
	{Label: "美妆护肤", Keywords: []string{"美妆", "护肤", "化妆", "口红", "面膜", "精华", "彩妆"}},
	{Label: "时尚穿搭", Keywords: []string{"穿搭", "时尚", "搭配", "ootd", "服装", "鞋子", "包包"}},
	{Label: "美食料理", Keywords: []string{"美食", "食谱", "烹饪", "餐厅", "小吃", "甜品", "探店"}},
	{Label: "旅行攻略", Keywords: []string{"旅行", "旅游", "景点", "攻略", "出游", "自驾", "民宿"}},
	{Label: "健身运动", Keywords: []string{"健身", "运动", "减肥", "瑜伽", "跑步", "塑形"}},
	{Label: "学习成长", Keywords: []string{"学习", "教育", "考试", "技能", "读书", "考研"}},
	{Label: "萌宠日常", Keywords: []string{"宠物", "猫", "狗", "养宠", "萌宠"}},
	{Label: "科技数码", Keywords: []string{"数码", "科技", "手机", "电脑", "测评"}},
	{Label: "家居装修", Keywords: []string{"家居", "装修", "收纳", "家具", "软装"}},
	{Label: "生活方式", Keywords: []string{"生活", "日常", "好物", "居家", "vlog"}},
}

var positiveWords = []string{"好", "棒", "喜欢", "推荐", "满意", "开心", "赞", "爱", "完美"}

var negativeWords = []string{"差", "不好", "失望", "糟糕", "后悔", "难用", "坑", "垃圾"}

// Classifier 基于关键词子串匹配的笔记分类器。
// 分类前将文本统一转为小写并做繁转简归一化。
type Classifier struct {
	dicts     []CategoryDict
	converter *gocc.OpenCC
}

func NewClassifier() *Classifier {
	c := &Classifier{dicts: defaultCategoryDicts}

	converter, err := gocc.New("t2s")
	if err != nil {
		log.Warn("opencc converter unavailable, skipping t2s normalization", "err", err)
	} else {
		c.converter = converter
	}
	return c
}

// normalize 小写 + 繁转简
func (c *Classifier) normalize(text string) string {
	text = strings.ToLower(text)
	if c.converter != nil {
		if converted, err := c.converter.Convert(text); err == nil {
			text = converted
		}
	}
	return text
}

// Classify 统计标题、正文与标签中各类目关键词的出现次数，
// 取命中最多的类目。平局时取词表中先声明的类目，零命中时返回兜底类目。
func (c *Classifier) Classify(note *model.Note) string {
	text := c.normalize(note.Title + " " + note.Content + " " + strings.Join(note.Tags, " "))

	best := DefaultCategory
	bestCount := 0
	for _, dict := range c.dicts {
		count := 0
		for _, kw := range dict.Keywords {
			count += strings.Count(text, kw)
		}
		if count > bestCount {
			best = dict.Label
			bestCount = count
		}
	}
	return best
}

// Sentiment 统计正负情感词出现次数，多者胜出，平局或零命中视为中性
func (c *Classifier) Sentiment(note *model.Note) string {
	text := c.normalize(note.Title + " " + note.Content)

	positive, negative := 0, 0
	for _, w := range positiveWords {
		positive += strings.Count(text, w)
	}
	for _, w := range negativeWords {
		negative += strings.Count(text, w)
	}

	switch {
	case positive > negative:
		return consts.SentimentPositive
	case negative > positive:
		return consts.SentimentNegative
	default:
		return consts.SentimentNeutral
	}
}

// ClassifyAll 为缺失类目的笔记补齐分类
func (c *Classifier) ClassifyAll(notes []*model.Note) {
	for _, note := range notes {
		if note.Category == "" {
			note.Category = c.Classify(note)
		}
	}
}

// Categories 返回词表声明顺序的全部类目标签
func (c *Classifier) Categories() []string {
	labels := make([]string, 0, len(c.dicts))
	for _, dict := range c.dicts {
		labels = append(labels, dict.Label)
	}
	return labels
}
