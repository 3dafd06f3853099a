package ai

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/clio/backend/internal/model/persona"
)

// PromptTemplate holds persona-specific instructions layered on the base prompt.
type PromptTemplate struct {
	SystemPrompt string
	Rules        []string
}

// PromptManager builds system prompts for assistant personas.
type PromptManager struct {
	templates map[string]*PromptTemplate
}

// NewPromptManager returns a manager preloaded with the built-in templates.
func NewPromptManager() *PromptManager {
	pm := &PromptManager{templates: make(map[string]*PromptTemplate)}
	pm.templates["clio"] = &PromptTemplate{
		SystemPrompt: "You are Clio, the AI assistant embedded in a personal portfolio website. " +
			"You answer visitors' questions about the site owner's experience, projects and skills.",
		Rules: []string{
			"Answer in short HTML fragments (<p>, <ul>, <li>, <strong>); never wrap the answer in markdown code fences",
			"Write email addresses as plain text; the site turns them into links",
			"If a question is unrelated to the portfolio, say so politely and suggest the contact form",
			"Never invent employers, dates or credentials",
		},
	}
	return pm
}

// Template returns the template registered for personaID.
func (pm *PromptManager) Template(personaID string) (*PromptTemplate, bool) {
	t, ok := pm.templates[personaID]
	return t, ok
}

// BuildSystemPrompt renders the system prompt for p, falling back to a generic
// prompt built from the persona fields when no template is registered.
func (pm *PromptManager) BuildSystemPrompt(p *persona.Persona) string {
	template, ok := pm.Template(p.ID)
	if !ok {
		return pm.buildBasicSystemPrompt(p)
	}

	return fmt.Sprintf(`%s

Persona:
- Name: %s
- Role: %s
- Tone: %s

Rules:
- %s

Greeting for reference: %s`,
		template.SystemPrompt,
		p.Name,
		p.Title,
		p.Tone,
		strings.Join(template.Rules, "\n- "),
		p.Greeting,
	)
}

func (pm *PromptManager) buildBasicSystemPrompt(p *persona.Persona) string {
	return fmt.Sprintf(`You are %s, %s.

- Tone: %s
- Hint: %s

Stay in character and answer in short HTML fragments without markdown fences.`,
		p.Name,
		p.Title,
		p.Tone,
		p.PromptHint,
	)
}
