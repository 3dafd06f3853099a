package format

import (
	"regexp"
	"strings"
)

// Category 表示回复内容所属的语义类别。
type Category string

const (
	General  Category = "general"
	Personal Category = "personal"
	Skills   Category = "skills"
)

// Rule 把一组关键词映射到类别以及是否去除加粗标记。
type Rule struct {
	Category      Category
	Keywords      []string
	StripEmphasis bool
}

// Decision 给出分类结果以及命中的关键词。
type Decision struct {
	Category      Category
	StripEmphasis bool
	Keyword       string
}

// DefaultRules 返回默认规则表：个人兴趣类内容去掉加粗，技能列表保留加粗。
// 规则按顺序匹配，先命中者生效。
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: Personal,
			Keywords: []string{
				"personal interests", "hobbies", "weekend hikes", "salsa dancing",
				"golden retriever", "valkyries",
			},
			StripEmphasis: true,
		},
		{
			Category: Skills,
			Keywords: []string{
				"skills", "technologies", "tech stack", "programming languages", "frameworks",
			},
			StripEmphasis: false,
		},
	}
}

// Classifier 基于关键词规则表做启发式分类。
type Classifier struct {
	rules []Rule
}

// NewClassifier 使用给定规则表创建分类器，规则中的关键词统一转为小写。
func NewClassifier(rules []Rule) *Classifier {
	normalized := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		keywords := make([]string, 0, len(rule.Keywords))
		for _, word := range rule.Keywords {
			word = strings.ToLower(strings.TrimSpace(word))
			if word == "" {
				continue
			}
			keywords = append(keywords, word)
		}
		rule.Keywords = keywords
		normalized = append(normalized, rule)
	}
	return &Classifier{rules: normalized}
}

// Classify 返回第一条命中规则的决策；未命中时归为 General 且保留格式。
func (c *Classifier) Classify(text string) Decision {
	normalized := strings.ToLower(text)
	if strings.TrimSpace(normalized) == "" {
		return Decision{Category: General}
	}

	for _, rule := range c.rules {
		for _, word := range rule.Keywords {
			if strings.Contains(normalized, word) {
				return Decision{Category: rule.Category, StripEmphasis: rule.StripEmphasis, Keyword: word}
			}
		}
	}
	return Decision{Category: General}
}

// Apply 对文本执行分类，并在需要时去除加粗标签。
func (c *Classifier) Apply(text string) string {
	if !c.Classify(text).StripEmphasis {
		return text
	}
	return StripEmphasis(text)
}

var emphasisTagPattern = regexp.MustCompile(`(?i)</?(?:strong|b)(?:\s[^>]*)?>`)

// StripEmphasis 去掉 <strong> 与 <b> 标签，保留内部文本。
func StripEmphasis(text string) string {
	return emphasisTagPattern.ReplaceAllString(text, "")
}
