package controller

import (
	"encoding/json"
	"net/http"

	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/sanggwon-lab/market-rag/appconfig"
	"github.com/sanggwon-lab/market-rag/db"
	"github.com/sanggwon-lab/market-rag/model"
	"github.com/sanggwon-lab/market-rag/rag"
	"github.com/sanggwon-lab/market-rag/search"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
		// Note: Can't call http.Error here as headers may already be written
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// provideEngine wires the resolution engine from the injected Mongo client
// and embedder. Fatal on a misconfigured chat model: the service is
// useless without one.
func provideEngine(cfg *appconfig.AppConfig, mongo odm.MongoClient, embedder embed.Embedder) *rag.Engine {
	passageRepository := odm.CollectionOf[db.PassageModel](mongo, cfg.Tenant)
	vectorRepository := odm.CollectionOf[db.PassageAnnModel](mongo, cfg.Tenant)
	retriever := search.NewHybridRetriever(passageRepository, vectorRepository, embedder)

	chatModel, err := rag.NewOpenAIModel(cfg)
	if err != nil {
		logger.Fatal("Failed to create chat model", zap.Error(err))
	}

	return rag.NewEngine(retriever, chatModel, cfg.RetrievalTopK)
}
