package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/go-resty/resty/v2"
	"github.com/sanggwon-lab/market-rag/appconfig"
	"github.com/sanggwon-lab/market-rag/model"
	"go.uber.org/zap"
)

// KakaoClient estimates the number of competing businesses around a
// gu/dong via the Kakao local keyword search API.
type KakaoClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewKakaoClient(cfg *appconfig.AppConfig) *KakaoClient {
	return &KakaoClient{
		client:  resty.New().SetTimeout(10 * time.Second),
		baseURL: cfg.KakaoAPIURL,
		apiKey:  cfg.KakaoRESTAPIKey,
	}
}

type kakaoMeta struct {
	TotalCount int `json:"total_count"`
}

type kakaoSearchResponse struct {
	Meta kakaoMeta `json:"meta"`
}

// SimilarBusinessInfo never fails: any upstream error degrades to a zero
// count with the error folded into the description.
func (k *KakaoClient) SimilarBusinessInfo(ctx context.Context, gu, dong, businessType string) *model.SimilarBusinessInfo {
	query := fmt.Sprintf("%s %s %s", gu, dong, businessType)

	resp, err := k.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "KakaoAK "+k.apiKey).
		SetQueryParam("query", query).
		Get(k.baseURL)
	if err != nil {
		return degradedSimilar(query, err)
	}
	if resp.IsError() {
		return degradedSimilar(query, fmt.Errorf("status %d", resp.StatusCode()))
	}

	var parsed kakaoSearchResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return degradedSimilar(query, err)
	}

	count := parsed.Meta.TotalCount
	return &model.SimilarBusinessInfo{
		Description: fmt.Sprintf("카카오 API 기준 '%s' 관련 업종 수는 약 %d건으로 확인됩니다.", query, count),
		Count:       count,
	}
}

func degradedSimilar(query string, err error) *model.SimilarBusinessInfo {
	logger.Error("kakao local search failed", zap.String("query", query), zap.Error(err))
	return &model.SimilarBusinessInfo{
		Description: fmt.Sprintf("카카오 API 호출 오류: %v", err),
		Count:       0,
	}
}
