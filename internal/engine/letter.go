package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/anatolykoptev/go_apply/internal/hh"
)

// DraftFunc calls the drafting model with a complete prompt and returns
// the raw response text.
type DraftFunc func(ctx context.Context, prompt string) (string, error)

// ErrEmptyDraft means the model returned no usable text; the vacancy is
// skipped without a decision and re-evaluated next cycle.
var ErrEmptyDraft = errors.New("letter: empty draft")

const letterSystemPrompt = "Ты - высококлассный специалист по написанию персонализированных сопроводительных писем. %s" +
	"Твоя задача: На основе вакансии и резюме создать сопроводительное письмо от первого лица. " +
	"ЗАПРЕЩЕНО: Придумывать навыки, которых нет в резюме; давать советы; добавлять пояснения; " +
	"использовать заполнители типа '[Ваше имя]'; включать инструкции. " +
	"ФОРМАТ ОТВЕТА: ТОЛЬКО готовое сопроводительное письмо без каких-либо дополнений. " +
	"ПРИНЦИПЫ: 1. Точность - используй ТОЛЬКО данные из резюме. " +
	"2. Релевантность - подчеркивай пересечения между вакансией и резюме. " +
	"3. Структура - зацепка, релевантность, ценность, призыв к действию. " +
	"4. Краткость: 150-250 слов. " +
	"КРИТИЧЕСКИ ВАЖНО: Твой ответ должен содержать ИСКЛЮЧИТЕЛЬНО готовое к отправке сопроводительное письмо."

const (
	genderInstructionMale = "Обязательно пиши от лица мужчины. Используй глаголы и прилагательные " +
		"в мужском роде (например, 'выполнил', 'уверен', 'профессиональный'). "
	genderInstructionFemale = "Обязательно пиши от лица женщины. Используй глаголы и прилагательные " +
		"в женском роде (например, 'выполнила', 'уверена', 'профессиональная'). "
)

// genderInstruction maps the configured gender flag to the grammatical
// agreement clause of the prompt. Unknown values get no clause.
func genderInstruction(gender string) string {
	switch strings.ToLower(gender) {
	case "male", "m":
		return genderInstructionMale
	case "female", "f":
		return genderInstructionFemale
	}
	return ""
}

// buildLetterPrompt assembles the full drafting prompt: system framing
// with constraints, vacancy block and optional resume block.
func buildLetterPrompt(d *hh.VacancyDetail, profile, gender string) string {
	description := d.Description
	if md, err := htmltomarkdown.ConvertString(description); err == nil {
		description = md
	} else {
		description = CleanHTML(description)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, letterSystemPrompt, genderInstruction(gender))
	sb.WriteString("\n\nВот информация о вакансии:\n\n")
	fmt.Fprintf(&sb, "Название: %s\nКомпания: %s\nОписание:\n%s", d.Name, d.Employer.Name, description)
	if profile != "" {
		sb.WriteString("\n\nДанные резюме кандидата:\n")
		sb.WriteString(profile)
	}
	return sb.String()
}

// stripFences removes markdown code fences some models wrap output in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// draftLetter runs the letter pipeline for one vacancy: prompt build,
// one model call, fence stripping. Empty output is an error so the
// scheduler skips the vacancy without recording a decision.
func (e *Engine) draftLetter(ctx context.Context, d *hh.VacancyDetail) (string, error) {
	prompt := buildLetterPrompt(d, e.profile, e.cfg.Gender)

	metrics.LLMCalls.Add(1)
	raw, err := e.cfg.Draft(ctx, prompt)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", fmt.Errorf("letter: draft for %s: %w", d.ID, err)
	}
	letter := stripFences(raw)
	if letter == "" {
		metrics.LLMErrors.Add(1)
		return "", ErrEmptyDraft
	}
	return letter, nil
}
