package controller

import (
	"encoding/json"
	"net/http"

	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/sanggwon-lab/market-rag/analysis"
	"github.com/sanggwon-lab/market-rag/appconfig"
	"github.com/sanggwon-lab/market-rag/data"
	"github.com/sanggwon-lab/market-rag/gateway"
	"github.com/sanggwon-lab/market-rag/middleware"
	"github.com/sanggwon-lab/market-rag/model"
	"go.uber.org/zap"
)

// MarketController serves the district/business analysis endpoints.
type MarketController struct {
	analyzer *analysis.Analyzer
}

func ProvideMarketController(cfg *appconfig.AppConfig, mongo odm.MongoClient, embedder embed.Embedder) *MarketController {
	guCodes, err := data.LoadGuCodes(cfg.GuCodePath)
	if err != nil {
		logger.Fatal("Failed to load gu code map", zap.Error(err))
	}

	book, err := data.LoadAddressBook(cfg.AddressMasterPath)
	if err != nil {
		logger.Fatal("Failed to load address master", zap.Error(err))
	}

	analyzer := analysis.NewAnalyzer(
		gateway.NewRealEstateClient(cfg, guCodes),
		gateway.NewPopulationClient(cfg, book),
		gateway.NewKakaoClient(cfg),
		provideEngine(cfg, mongo, embedder),
	)

	return &MarketController{analyzer: analyzer}
}

// HandleAnalyze scores and analyzes a gu/dong/item with caller-supplied
// population and estate data.
func (mc *MarketController) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode request", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Gu == "" || req.Dong == "" || req.Item == "" {
		writeError(w, http.StatusBadRequest, "필수 입력 값(gu, dong, item)이 부족합니다.")
		return
	}

	ctx := r.Context()
	similar := mc.analyzer.SimilarBusiness(ctx, req.Gu, req.Dong, req.Item)
	score, verdict := analysis.EvaluateSuitability(req.Population, req.Estate, similar.Count)

	recommendation, err := mc.analyzer.RecommendBusiness(ctx, req.Gu, req.Dong, req.Population, req.Estate)
	if err != nil {
		logger.Error("Failed to build recommendation", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	locationAnalysis, err := mc.analyzer.LocationAnalysis(ctx, req.Gu, req.Dong, req.Item, req.Population, req.Estate, similar.Description)
	if err != nil {
		logger.Error("Failed to build location analysis", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.AnalyzeResponse{
		Score:            score,
		Verdict:          verdict,
		Recommendation:   recommendation,
		LocationAnalysis: locationAnalysis,
		Similar:          similar,
	})
}

func (mc *MarketController) HandleSimilarBusinessInfo(w http.ResponseWriter, r *http.Request) {
	gu := r.URL.Query().Get("gu")
	dong := r.URL.Query().Get("dong")
	businessType := r.URL.Query().Get("business_type")

	if gu == "" || dong == "" || businessType == "" {
		writeError(w, http.StatusBadRequest, "gu, dong, and business_type parameters are required.")
		return
	}

	writeJSON(w, http.StatusOK, mc.analyzer.SimilarBusiness(r.Context(), gu, dong, businessType))
}

func (mc *MarketController) HandleRecommendBusiness(w http.ResponseWriter, r *http.Request) {
	gu := r.URL.Query().Get("gu")
	dong := r.URL.Query().Get("dong")

	if gu == "" || dong == "" {
		writeError(w, http.StatusBadRequest, "gu and dong parameters are required.")
		return
	}

	ctx := r.Context()
	pop := mc.analyzer.PopulationRecord(ctx, gu, dong)
	estate := mc.analyzer.EstateDeals(ctx, gu, dong)

	recommendation, err := mc.analyzer.RecommendBusiness(ctx, gu, dong, pop, estate)
	if err != nil {
		logger.Error("Failed to build recommendation", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"recommendation": recommendation})
}

func (mc *MarketController) HandleLocationAnalysis(w http.ResponseWriter, r *http.Request) {
	gu := r.URL.Query().Get("gu")
	dong := r.URL.Query().Get("dong")
	item := r.URL.Query().Get("item")

	if gu == "" || dong == "" || item == "" {
		writeError(w, http.StatusBadRequest, "gu, dong, and item parameters are required.")
		return
	}

	ctx := r.Context()
	pop := mc.analyzer.PopulationRecord(ctx, gu, dong)
	estate := mc.analyzer.EstateDeals(ctx, gu, dong)
	similar := mc.analyzer.SimilarBusiness(ctx, gu, dong, item)

	locationAnalysis, err := mc.analyzer.LocationAnalysis(ctx, gu, dong, item, pop, estate, similar.Description)
	if err != nil {
		logger.Error("Failed to build location analysis", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"location_analysis": locationAnalysis})
}

func (mc *MarketController) HandleAnalyzeMarket(w http.ResponseWriter, r *http.Request) {
	gu := r.URL.Query().Get("gu")
	dong := r.URL.Query().Get("dong")
	item := r.URL.Query().Get("item")

	if gu == "" || dong == "" || item == "" {
		writeError(w, http.StatusBadRequest, "gu, dong, and item parameters are required.")
		return
	}

	report, err := mc.analyzer.AnalyzeMarket(r.Context(), gu, dong, item)
	if err != nil {
		logger.Error("Failed to analyze market", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
	logger.Info("Market analyzed",
		zap.String("gu", gu), zap.String("dong", dong), zap.String("item", item),
		zap.Int("score", report.Score))
}

func (mc *MarketController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/analyze",
			Method:  http.MethodPost,
			Handler: middleware.CORS(mc.HandleAnalyze),
		},
		{
			Pattern: "/similar_business_info",
			Method:  http.MethodGet,
			Handler: middleware.CORS(mc.HandleSimilarBusinessInfo),
		},
		{
			Pattern: "/recommend_business",
			Method:  http.MethodGet,
			Handler: middleware.CORS(mc.HandleRecommendBusiness),
		},
		{
			Pattern: "/location_analysis",
			Method:  http.MethodGet,
			Handler: middleware.CORS(mc.HandleLocationAnalysis),
		},
		{
			Pattern: "/analyze_market",
			Method:  http.MethodGet,
			Handler: middleware.CORS(mc.HandleAnalyzeMarket),
		},
	}
}
