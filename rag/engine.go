package rag

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/sanggwon-lab/market-rag/model"
	"github.com/sanggwon-lab/market-rag/search"
	"github.com/tmc/langchaingo/prompts"
	"go.uber.org/zap"
)

// SourceTag records which context path produced an answer.
type SourceTag string

const (
	TagDocumentGrounded SourceTag = "document-grounded"
	TagFallbackGrounded SourceTag = "fallback-grounded"
	TagUnconstrained    SourceTag = "unconstrained-inference"
)

// Human-readable labels, one per path. The two unconstrained labels
// distinguish "retrieval was skipped" from "retrieval found nothing".
const (
	labelDocumentGrounded = "🔍 문서 기반 응답 (RAG)"
	labelFallbackGrounded = "💡 GPT 추론 응답 (Fallback Context)"
	labelDirectOnly       = "💡 GPT 단독 응답"
	labelNoContext        = "💡 GPT 단독 추론 응답 (문서/컨텍스트 없음)"
)

// Answer is the envelope returned by the resolution engine: a source tag,
// its rendered label, and the post-processed model text.
type Answer struct {
	Tag   SourceTag
	Label string
	Text  string
}

// Render produces the final answer string handed to API clients.
func (a Answer) Render() string {
	return a.Label + "\n\n" + a.Text
}

var answerPrompt = prompts.NewPromptTemplate(`
당신은 유능한 AI 어시스턴트입니다. 아래는 검색된 문서 내용과 질문입니다.

[문서 컨텍스트]
{{.context}}

[질문]
{{.question}}

위 내용을 바탕으로 구체적이고 신뢰도 높은 답변을 작성하세요:
`, []string{"context", "question"})

// Engine resolves a question into an answer by choosing, in priority
// order, retrieved documents, the caller-supplied fallback context, or
// ungrounded model inference.
type Engine struct {
	retriever search.Retriever
	model     Model
	topK      int
}

func NewEngine(retriever search.Retriever, model Model, topK int) *Engine {
	return &Engine{
		retriever: retriever,
		model:     model,
		topK:      topK,
	}
}

// Ask resolves a question. forceDirect skips retrieval entirely and sends
// the raw question to the model. Model errors propagate; retrieval errors
// degrade to an empty passage list and never surface.
func (e *Engine) Ask(ctx context.Context, question, fallbackContext string, forceDirect bool) (Answer, error) {
	if forceDirect {
		text, err := e.model.Generate(ctx, question)
		if err != nil {
			return Answer{}, err
		}
		return Answer{Tag: TagUnconstrained, Label: labelDirectOnly, Text: Postprocess(text)}, nil
	}

	rewritten := RewriteForSearch(question)

	passages, err := e.retriever.Retrieve(ctx, rewritten, e.topK)
	if err != nil {
		logger.Error("retrieval failed, answering without documents", zap.Error(err))
		passages = nil
	}
	texts := nonEmptyTexts(passages)

	var contextText string
	tag, label := TagDocumentGrounded, labelDocumentGrounded

	switch {
	case len(texts) > 0:
		contextText = strings.Join(texts, "\n")
	case strings.TrimSpace(fallbackContext) != "":
		contextText = fallbackContext
		tag, label = TagFallbackGrounded, labelFallbackGrounded
	default:
		text, err := e.model.Generate(ctx, rewritten)
		if err != nil {
			return Answer{}, err
		}
		return Answer{Tag: TagUnconstrained, Label: labelNoContext, Text: Postprocess(text)}, nil
	}

	prompt, err := answerPrompt.Format(map[string]any{
		"context":  contextText,
		"question": question,
	})
	if err != nil {
		return Answer{}, err
	}

	text, err := e.model.Generate(ctx, prompt)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Tag: tag, Label: label, Text: Postprocess(text)}, nil
}

// nonEmptyTexts keeps passage contents that carry more than whitespace,
// preserving retriever order.
func nonEmptyTexts(passages []model.Passage) []string {
	texts := make([]string, 0, len(passages))
	for _, p := range passages {
		if strings.TrimSpace(p.Text) != "" {
			texts = append(texts, p.Text)
		}
	}
	return texts
}
