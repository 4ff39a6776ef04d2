package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/go-resty/resty/v2"
	"github.com/sanggwon-lab/market-rag/appconfig"
	"github.com/sanggwon-lab/market-rag/data"
	"github.com/sanggwon-lab/market-rag/model"
	"go.uber.org/zap"
)

// PopulationClient looks up pedestrian-traffic rows from the Seoul
// tpssPassengerCnt open dataset, keyed by the 8-digit dong id from the
// address master.
type PopulationClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	book    *data.AddressBook
}

func NewPopulationClient(cfg *appconfig.AppConfig, book *data.AddressBook) *PopulationClient {
	return &PopulationClient{
		client:  resty.New().SetTimeout(10 * time.Second),
		baseURL: cfg.PopulationAPIURL,
		apiKey:  cfg.PopulationAPIKey,
		book:    book,
	}
}

type passengerCntBody struct {
	Rows []model.PopulationRecord `json:"row"`
}

type passengerCntResponse struct {
	PassengerCnt passengerCntBody `json:"tpssPassengerCnt"`
}

// RecordByDong returns the traffic row for a gu/dong, or nil when the dong
// is unknown, the API fails, or no row matches. Absence is not an error.
func (p *PopulationClient) RecordByDong(ctx context.Context, gu, dong string) *model.PopulationRecord {
	dongID := p.book.DongID(gu, dong)
	if dongID == "" {
		return nil
	}

	url := fmt.Sprintf("%s/%s/json/tpssPassengerCnt/1/1000", p.baseURL, p.apiKey)
	resp, err := p.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil || resp.IsError() {
		logger.Error("population api failed", zap.String("dongId", dongID), zap.Error(err))
		return nil
	}

	var parsed passengerCntResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		logger.Error("population api payload malformed", zap.Error(err))
		return nil
	}

	for i := range parsed.PassengerCnt.Rows {
		if parsed.PassengerCnt.Rows[i].DongID == dongID {
			return &parsed.PassengerCnt.Rows[i]
		}
	}
	return nil
}
