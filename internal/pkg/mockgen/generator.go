package mockgen

import (
	"Prism/internal/model"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// template 单个类目的造数模板
type template struct {
	category  string
	titles    []string
	tags      []string
	locations []string
}

var templates = []template{
	{
		category:  "美妆护肤",
		titles:    []string{"新手化妆全流程", "干皮救星面霜测评", "平价口红试色合集", "换季护肤避雷指南"},
		tags:      []string{"护肤", "美妆", "测评"},
		locations: []string{"上海", "广州", "杭州"},
	},
	{
		category:  "时尚穿搭",
		titles:    []string{"小个子显高穿搭公式", "通勤一周不重样", "秋冬叠穿思路", "今日OOTD"},
		tags:      []string{"穿搭", "OOTD", "显高"},
		locations: []string{"北京", "上海", "成都"},
	},
	{
		category:  "美食料理",
		titles:    []string{"十分钟搞定的快手晚餐", "城中最值得排队的小吃", "一人食食谱合集", "周末探店记录"},
		tags:      []string{"美食", "食谱", "探店"},
		locations: []string{"成都", "长沙", "广州"},
	},
	{
		category:  "旅行攻略",
		titles:    []string{"三天两夜穷游路线", "小众海岛避坑攻略", "高铁直达的周边游", "citywalk路线分享"},
		tags:      []string{"旅行", "攻略", "周边游"},
		locations: []string{"大理", "厦门", "重庆"},
	},
	{
		category:  "健身运动",
		titles:    []string{"居家徒手训练计划", "跑步一个月的变化", "瑜伽入门体式拆解", "减脂期怎么吃"},
		tags:      []string{"健身", "减肥", "跑步"},
		locations: []string{"北京", "深圳", "武汉"},
	},
	{
		category:  "学习成长",
		titles:    []string{"考研上岸时间表", "高效笔记方法论", "一年读50本书的秘诀", "自学编程路线图"},
		tags:      []string{"学习", "读书", "考研"},
		locations: []string{"北京", "南京", "西安"},
	},
	{
		category:  "萌宠日常",
		titles:    []string{"接猫回家第一周", "狗子的快乐瞬间", "养宠新手清单", "猫咪挑粮实录"},
		tags:      []string{"宠物", "猫", "狗"},
		locations: []string{"上海", "杭州", "苏州"},
	},
	{
		category:  "生活方式",
		titles:    []string{"独居生活好物清单", "周末宅家仪式感", "极简生活一年后", "记录平凡的一天"},
		tags:      []string{"生活", "好物", "日常"},
		locations: []string{"上海", "北京", "昆明"},
	},
}

var authors = []string{"小红薯", "阿枝", "momo", "栗子酱", "南山不南", "一颗冬枣", "皮蛋日记"}

// 与线上采集字段 user_demographics 对齐的粗粒度年龄画像
var ageHints = []string{"18-25", "26-35", "36-45", "46-55", "55+"}

// Generator 确定性笔记造数器，同一种子产出同一数据集
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate 生成 n 条带互动数据的笔记，发布时间均匀散布在最近 30 天
func (g *Generator) Generate(n int, now time.Time) []*model.Note {
	notes := make([]*model.Note, 0, n)
	for i := 0; i < n; i++ {
		tpl := templates[g.rng.Intn(len(templates))]
		title := tpl.titles[g.rng.Intn(len(tpl.titles))]

		likes := g.rng.Intn(5000)
		// 约一半笔记带年龄画像，剩下的走散列兜底
		hint := ""
		if g.rng.Intn(2) == 0 {
			hint = ageHints[g.rng.Intn(len(ageHints))]
		}
		notes = append(notes, &model.Note{
			ID:           uuid.NewString(),
			Title:        fmt.Sprintf("%s Day%d", title, i+1),
			Content:      fmt.Sprintf("关于%s的分享，今天聊聊「%s」。", tpl.category, title),
			Author:       authors[g.rng.Intn(len(authors))],
			Category:     tpl.category,
			Tags:         model.TagList(tpl.tags),
			Location:     tpl.locations[g.rng.Intn(len(tpl.locations))],
			AgeGroupHint: hint,
			LikeCount:    likes,
			CommentCount: g.rng.Intn(likes/5 + 1),
			ShareCount:   g.rng.Intn(likes/10 + 1),
			ViewCount:    likes*10 + g.rng.Intn(10000),
			PublishedAt:  now.Add(-time.Duration(g.rng.Intn(30*24*60)) * time.Minute).UTC(),
		})
	}
	return notes
}
