package sanitize

import "github.com/zhouzirui/clio/backend/internal/analysis/format"

// Options configures the server-side stages.
type Options struct {
	// LinkStyle is an optional inline style for generated mailto links.
	LinkStyle string
	// Rules drives formatting normalization; nil disables that stage.
	Rules []format.Rule
}

// Pipeline applies email linkification and formatting normalization, in that order.
type Pipeline struct {
	linkStyle  string
	classifier *format.Classifier
}

// NewPipeline builds a pipeline from opts.
func NewPipeline(opts Options) *Pipeline {
	p := &Pipeline{linkStyle: opts.LinkStyle}
	if len(opts.Rules) > 0 {
		p.classifier = format.NewClassifier(opts.Rules)
	}
	return p
}

// Sanitize runs the server-side stages over an upstream answer.
func (p *Pipeline) Sanitize(text string) HTML {
	out := LinkifyEmails(text, p.linkStyle)
	if p.classifier != nil {
		// 去掉强调标签可能拼出新的地址，需要再链接一次
		if stripped := p.classifier.Apply(out); stripped != out {
			out = LinkifyEmails(stripped, p.linkStyle)
		}
	}
	return HTML{s: out}
}
