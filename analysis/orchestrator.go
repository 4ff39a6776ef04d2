package analysis

import (
	"context"
	"fmt"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/sanggwon-lab/market-rag/model"
	"github.com/sanggwon-lab/market-rag/rag"
)

// Data sources consumed by the orchestrator. A source degrades to an
// empty/absent value on upstream failure; it never errors.
type EstateSource interface {
	DealsByDong(ctx context.Context, gu, dong string) []model.EstateDeal
}

type PopulationSource interface {
	RecordByDong(ctx context.Context, gu, dong string) *model.PopulationRecord
}

type SimilarBusinessSource interface {
	SimilarBusinessInfo(ctx context.Context, gu, dong, businessType string) *model.SimilarBusinessInfo
}

// Asker is the resolution engine's surface the orchestrator depends on.
type Asker interface {
	Ask(ctx context.Context, question, fallbackContext string, forceDirect bool) (rag.Answer, error)
}

// Analyzer sequences the data gateways, the scorer, and the resolution
// engine into composite market reports.
type Analyzer struct {
	estate     EstateSource
	population PopulationSource
	similar    SimilarBusinessSource
	engine     Asker
}

func NewAnalyzer(estate EstateSource, population PopulationSource, similar SimilarBusinessSource, engine Asker) *Analyzer {
	return &Analyzer{
		estate:     estate,
		population: population,
		similar:    similar,
		engine:     engine,
	}
}

func (a *Analyzer) SimilarBusiness(ctx context.Context, gu, dong, businessType string) *model.SimilarBusinessInfo {
	return a.similar.SimilarBusinessInfo(ctx, gu, dong, businessType)
}

func (a *Analyzer) EstateDeals(ctx context.Context, gu, dong string) []model.EstateDeal {
	return a.estate.DealsByDong(ctx, gu, dong)
}

func (a *Analyzer) PopulationRecord(ctx context.Context, gu, dong string) *model.PopulationRecord {
	return a.population.RecordByDong(ctx, gu, dong)
}

// RecommendBusiness asks for promising business categories for the area.
// The composed context keeps the question self-contained should grounding
// be re-enabled; the call itself runs the model directly.
func (a *Analyzer) RecommendBusiness(ctx context.Context, gu, dong string, pop *model.PopulationRecord, estate []model.EstateDeal) (string, error) {
	fallback := fmt.Sprintf(`
'%s %s' 지역은 상업 및 주거 기능이 복합된 지역으로 파악됩니다. 해당 지역의 유동인구는 약 %s명이며,
최근 부동산 거래는 %d건 발생했습니다. 유동인구가 꾸준하고 상업 활동이 활발한 지역에서는 카페, 음식점, 편의점, 미용실 등
생활 밀착형 업종이 안정적으로 운영될 가능성이 높습니다.

또한 경쟁 업체 수, 임대료 수준, 상권 접근성, 고객 선호도 등의 요소를 종합적으로 고려하여 업종을 선택하는 것이 중요합니다.
`, gu, dong, passengerCount(pop), len(estate))

	question := fmt.Sprintf("%s %s 지역의 상권 데이터를 바탕으로 유망한 창업 업종을 추천하고, 그 이유를 구체적으로 설명해주세요.", gu, dong)

	answer, err := a.engine.Ask(ctx, question, fallback, true)
	if err != nil {
		return "", err
	}
	return answer.Render(), nil
}

// LocationAnalysis asks whether the item suits the area.
func (a *Analyzer) LocationAnalysis(ctx context.Context, gu, dong, item string, pop *model.PopulationRecord, estate []model.EstateDeal, similarDesc string) (string, error) {
	fallback := fmt.Sprintf(`
서울시 %s %s 지역에서 '%s' 업종의 입지 분석을 요청하였습니다.
- 유동인구: %s명
- 부동산 거래 건수: %d건
- 유사 업종 정보: %s

이 정보를 바탕으로 '%s' 업종이 이 지역에서 창업하기에 적합한지 구체적으로 평가해주세요.
`, gu, dong, item, passengerCount(pop), len(estate), similarDesc, item)

	question := fmt.Sprintf("%s %s 지역에서 '%s' 업종의 창업 가능성을 분석해주세요.", gu, dong, item)

	answer, err := a.engine.Ask(ctx, question, fallback, true)
	if err != nil {
		return "", err
	}
	return answer.Render(), nil
}

// AnalyzeMarket builds the full composite report. The three independent
// lookups fan out concurrently; the model calls stay sequential.
func (a *Analyzer) AnalyzeMarket(ctx context.Context, gu, dong, item string) (*model.MarketReport, error) {
	estateTask := async.Go(func() ([]model.EstateDeal, error) {
		return a.estate.DealsByDong(ctx, gu, dong), nil
	})
	popTask := async.Go(func() (*model.PopulationRecord, error) {
		return a.population.RecordByDong(ctx, gu, dong), nil
	})
	similarTask := async.Go(func() (*model.SimilarBusinessInfo, error) {
		return a.similar.SimilarBusinessInfo(ctx, gu, dong, item), nil
	})

	estate, _ := async.Await(estateTask)
	pop, _ := async.Await(popTask)
	similar, _ := async.Await(similarTask)
	if similar == nil {
		similar = &model.SimilarBusinessInfo{}
	}

	score, verdict := EvaluateSuitability(pop, estate, similar.Count)

	recommendation, err := a.RecommendBusiness(ctx, gu, dong, pop, estate)
	if err != nil {
		return nil, err
	}

	locationAnalysis, err := a.LocationAnalysis(ctx, gu, dong, item, pop, estate, similar.Description)
	if err != nil {
		return nil, err
	}

	return &model.MarketReport{
		Gu:               gu,
		Dong:             dong,
		Item:             item,
		Population:       pop,
		Estate:           estate,
		Similar:          similar,
		Score:            score,
		Verdict:          verdict,
		Recommendation:   recommendation,
		LocationAnalysis: locationAnalysis,
	}, nil
}

func passengerCount(pop *model.PopulationRecord) string {
	if pop == nil || pop.PassengerCount == "" {
		return "정보 없음"
	}
	return pop.PassengerCount
}

// ChatContext renders a prior analysis as the summary block prepended to
// free-form chat questions.
func ChatContext(analyzed *model.AnalyzedContext) string {
	if analyzed == nil {
		return ""
	}

	similarDesc := "정보 없음"
	if analyzed.Similar != nil && analyzed.Similar.Description != "" {
		similarDesc = analyzed.Similar.Description
	}

	return fmt.Sprintf(`
[분석 요약]
- 지역: %s %s
- 업종: %s
- 유동인구: %s
- 유사 업종: %s
- 창업 평가: %s
- 추천 업종: %s
- 입지 분석: %s
`, analyzed.Gu, analyzed.Dong, analyzed.Item,
		passengerCount(analyzed.Population), similarDesc,
		orDefault(analyzed.Score), orDefault(analyzed.Recommendation), orDefault(analyzed.LocationAnalysis))
}

func orDefault(s string) string {
	if s == "" {
		return "정보 없음"
	}
	return s
}
