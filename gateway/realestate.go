package gateway

import (
	"context"
	"encoding/xml"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/go-resty/resty/v2"
	"github.com/sanggwon-lab/market-rag/appconfig"
	"github.com/sanggwon-lab/market-rag/model"
	"go.uber.org/zap"
)

const (
	estateLookbackMonths = 6
	estateMaxDeals       = 30
)

// RealEstateClient fetches recent transaction records from the national
// RTMS open-data API, one month per request.
type RealEstateClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	guCodes map[string]string
	now     func() time.Time
}

func NewRealEstateClient(cfg *appconfig.AppConfig, guCodes map[string]string) *RealEstateClient {
	return &RealEstateClient{
		client:  resty.New().SetTimeout(10 * time.Second),
		baseURL: cfg.RealEstateAPIURL,
		apiKey:  cfg.RealEstateKey,
		guCodes: guCodes,
		now:     time.Now,
	}
}

type rtmsItem struct {
	UmdNm        string `xml:"umdNm"`
	DealAmount   string `xml:"dealAmount"`
	DealYear     string `xml:"dealYear"`
	DealMonth    string `xml:"dealMonth"`
	DealDay      string `xml:"dealDay"`
	BuildingType string `xml:"buildingType"`
}

type rtmsResponse struct {
	XMLName xml.Name   `xml:"response"`
	Items   []rtmsItem `xml:"body>items>item"`
}

// DealsByDong returns up to 30 deals in the dong over the last six months,
// newest first. A failed month is skipped; the result is never an error.
func (r *RealEstateClient) DealsByDong(ctx context.Context, gu, dong string) []model.EstateDeal {
	lawdCd, ok := r.guCodes[gu]
	if !ok {
		return nil
	}

	now := r.now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var deals []model.EstateDeal
	for i := 0; i < estateLookbackMonths; i++ {
		yyyymm := firstOfMonth.AddDate(0, -i, 0).Format("200601")

		resp, err := r.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"serviceKey": r.apiKey,
				"LAWD_CD":    lawdCd,
				"DEAL_YMD":   yyyymm,
				"pageNo":     "1",
				"numOfRows":  "100",
				"type":       "xml",
			}).
			Get(r.baseURL)
		if err != nil || resp.IsError() {
			logger.Error("real estate api month skipped",
				zap.String("dealYmd", yyyymm), zap.Error(err))
			continue
		}

		var parsed rtmsResponse
		if err := xml.Unmarshal(resp.Body(), &parsed); err != nil {
			logger.Error("real estate api month skipped",
				zap.String("dealYmd", yyyymm), zap.Error(err))
			continue
		}

		for _, item := range parsed.Items {
			umd := textOrDefault(item.UmdNm, "N/A")
			if !strings.Contains(umd, dong) {
				continue
			}
			deals = append(deals, model.EstateDeal{
				DealAmount:   textOrDefault(item.DealAmount, "N/A"),
				DealYear:     atoiOrZero(item.DealYear),
				DealMonth:    atoiOrZero(item.DealMonth),
				DealDay:      atoiOrZero(item.DealDay),
				BuildingType: textOrDefault(item.BuildingType, "N/A"),
			})
		}
	}

	sort.Slice(deals, func(i, j int) bool {
		a, b := deals[i], deals[j]
		if a.DealYear != b.DealYear {
			return a.DealYear > b.DealYear
		}
		if a.DealMonth != b.DealMonth {
			return a.DealMonth > b.DealMonth
		}
		return a.DealDay > b.DealDay
	})

	if len(deals) > estateMaxDeals {
		deals = deals[:estateMaxDeals]
	}
	return deals
}

func textOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
