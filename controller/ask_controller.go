package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/sanggwon-lab/market-rag/analysis"
	"github.com/sanggwon-lab/market-rag/appconfig"
	"github.com/sanggwon-lab/market-rag/middleware"
	"github.com/sanggwon-lab/market-rag/model"
	"github.com/sanggwon-lab/market-rag/rag"
	"go.uber.org/zap"
)

// asker is the slice of the resolution engine the controllers call.
type asker interface {
	Ask(ctx context.Context, question, fallbackContext string, forceDirect bool) (rag.Answer, error)
}

// AskController serves the free-form question endpoints.
type AskController struct {
	engine   asker
	sessions *rag.SessionStore
}

func ProvideAskController(cfg *appconfig.AppConfig, mongo odm.MongoClient, embedder embed.Embedder) *AskController {
	return &AskController{
		engine:   provideEngine(cfg, mongo, embedder),
		sessions: rag.NewSessionStore(),
	}
}

// HandleAsk answers a free-form question, optionally grounded in a prior
// analysis and the session's conversation history.
func (c *AskController) HandleAsk(w http.ResponseWriter, r *http.Request) {
	var req model.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode request", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "질문이 비어 있습니다.")
		return
	}

	var session *rag.Session
	if req.SessionID != "" {
		session = c.sessions.Get(req.SessionID)
	}

	question := composeChatQuestion(req.Analyzed, session, req.Question)

	ctx := r.Context()
	answer, err := c.engine.Ask(ctx, question, "", false)
	if err != nil {
		logger.Error("Failed to answer question", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rendered := answer.Render()
	if session != nil {
		session.Append(rag.RoleUser, req.Question)
		session.Append(rag.RoleAssistant, rendered)
	}

	writeJSON(w, http.StatusOK, model.AskResponse{Answer: rendered})
	logger.Info("Question answered", zap.String("sourceTag", string(answer.Tag)))
}

// HandleAskRAG is the raw resolution endpoint: no analyzed context, no
// session, optional forced model-only inference.
func (c *AskController) HandleAskRAG(w http.ResponseWriter, r *http.Request) {
	var req model.AskRAGRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode request", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "질문이 비어 있습니다.")
		return
	}

	answer, err := c.engine.Ask(r.Context(), req.Question, "", req.ForceGPT)
	if err != nil {
		logger.Error("Failed to answer question", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.AskRAGResponse{Response: answer.Render()})
}

func (c *AskController) HandlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

// composeChatQuestion stitches the analysis summary, the conversation so
// far, and the user's input into the question handed to the engine.
func composeChatQuestion(analyzed *model.AnalyzedContext, session *rag.Session, input string) string {
	parts := make([]string, 0, 3)

	if block := analysis.ChatContext(analyzed); block != "" {
		parts = append(parts, block)
	}
	if session != nil {
		if transcript := session.Transcript(); transcript != "" {
			parts = append(parts, transcript)
		}
	}
	parts = append(parts, input)

	return strings.Join(parts, "\n\n")
}

func (c *AskController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/ask",
			Method:  http.MethodPost,
			Handler: middleware.CORS(c.HandleAsk),
		},
		{
			Pattern: "/ask_rag",
			Method:  http.MethodPost,
			Handler: middleware.CORS(c.HandleAskRAG),
		},
		{
			Pattern: "/ping",
			Method:  http.MethodGet,
			Handler: middleware.CORS(c.HandlePing),
		},
	}
}
