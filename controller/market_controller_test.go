package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sanggwon-lab/market-rag/analysis"
	"github.com/sanggwon-lab/market-rag/model"
	"github.com/sanggwon-lab/market-rag/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEstate struct{ deals []model.EstateDeal }

func (s *stubEstate) DealsByDong(context.Context, string, string) []model.EstateDeal {
	return s.deals
}

type stubPopulation struct{ record *model.PopulationRecord }

func (s *stubPopulation) RecordByDong(context.Context, string, string) *model.PopulationRecord {
	return s.record
}

type stubSimilar struct{ info *model.SimilarBusinessInfo }

func (s *stubSimilar) SimilarBusinessInfo(context.Context, string, string, string) *model.SimilarBusinessInfo {
	return s.info
}

func newMarketController(engine asker) *MarketController {
	analyzer := analysis.NewAnalyzer(
		&stubEstate{deals: []model.EstateDeal{{DealAmount: "100000"}}},
		&stubPopulation{record: &model.PopulationRecord{
			PassengerCount:   "12000",
			RidePassengers:   "3000",
			AlightPassengers: "2500",
		}},
		&stubSimilar{info: &model.SimilarBusinessInfo{Description: "약 5건", Count: 5}},
		engine,
	)
	return &MarketController{analyzer: analyzer}
}

func get(t *testing.T, handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestMarketController_HandleAnalyze(t *testing.T) {
	t.Run("Should reject missing required fields", func(t *testing.T) {
		c := newMarketController(&stubAsker{})

		w := postJSON(t, c.HandleAnalyze, "/analyze", `{"gu":"마포구","dong":"서교동"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "필수 입력 값(gu, dong, item)이 부족합니다.", resp.Error)
	})

	t.Run("Should score caller-supplied data and attach the texts", func(t *testing.T) {
		engine := &stubAsker{answer: rag.Answer{Label: "💡 GPT 단독 응답", Text: "본문"}}
		c := newMarketController(engine)

		body := `{
			"gu":"마포구","dong":"서교동","item":"카페",
			"population":{"RIDE_PASGR_NUM":"3000","ALIGHT_PASGR_NUM":"2500"},
			"estate":[{"dealAmount":"100000"}]
		}`
		w := postJSON(t, c.HandleAnalyze, "/analyze", body)
		require.Equal(t, http.StatusOK, w.Code)

		var resp model.AnalyzeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.Score)
		assert.Equal(t, analysis.Verdict(3), resp.Verdict)
		assert.NotEmpty(t, resp.Recommendation)
		assert.NotEmpty(t, resp.LocationAnalysis)
		require.NotNil(t, resp.Similar)
		assert.Equal(t, 5, resp.Similar.Count)
	})
}

func TestMarketController_HandleSimilarBusinessInfo(t *testing.T) {
	t.Run("Should require gu, dong and business_type", func(t *testing.T) {
		c := newMarketController(&stubAsker{})

		w := get(t, c.HandleSimilarBusinessInfo, "/similar_business_info?gu=마포구&dong=서교동")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should return the similar-business estimate", func(t *testing.T) {
		c := newMarketController(&stubAsker{})

		w := get(t, c.HandleSimilarBusinessInfo, "/similar_business_info?gu=마포구&dong=서교동&business_type=카페")
		require.Equal(t, http.StatusOK, w.Code)

		var resp model.SimilarBusinessInfo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 5, resp.Count)
	})
}

func TestMarketController_HandleRecommendBusiness(t *testing.T) {
	t.Run("Should require gu and dong", func(t *testing.T) {
		c := newMarketController(&stubAsker{})

		w := get(t, c.HandleRecommendBusiness, "/recommend_business?gu=마포구")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should return a recommendation", func(t *testing.T) {
		engine := &stubAsker{answer: rag.Answer{Label: "💡 GPT 단독 응답", Text: "카페를 추천합니다."}}
		c := newMarketController(engine)

		w := get(t, c.HandleRecommendBusiness, "/recommend_business?gu=마포구&dong=서교동")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "카페를 추천합니다.")
		assert.True(t, engine.lastForce)
	})
}

func TestMarketController_HandleLocationAnalysis(t *testing.T) {
	t.Run("Should require gu, dong and item", func(t *testing.T) {
		c := newMarketController(&stubAsker{})

		w := get(t, c.HandleLocationAnalysis, "/location_analysis?gu=마포구&dong=서교동")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should hand the similar-business description to the engine", func(t *testing.T) {
		engine := &stubAsker{answer: rag.Answer{Text: "입지 분석"}}
		c := newMarketController(engine)

		w := get(t, c.HandleLocationAnalysis, "/location_analysis?gu=마포구&dong=서교동&item=카페")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, engine.lastFallback, "약 5건")
	})
}

func TestMarketController_HandleAnalyzeMarket(t *testing.T) {
	t.Run("Should return the composite report", func(t *testing.T) {
		engine := &stubAsker{answer: rag.Answer{Label: "💡 GPT 단독 응답", Text: "본문"}}
		c := newMarketController(engine)

		w := get(t, c.HandleAnalyzeMarket, "/analyze_market?gu=강남구&dong=역삼동&item=카페")
		require.Equal(t, http.StatusOK, w.Code)

		var report model.MarketReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, "강남구", report.Gu)
		assert.Equal(t, 3, report.Score)
		require.NotNil(t, report.Population)
		assert.Equal(t, "12000", report.Population.PassengerCount)
	})
}
