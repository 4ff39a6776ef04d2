package model

// PopulationRecord is one row of the Seoul tpssPassengerCnt dataset.
// Counts arrive as formatted strings and are parsed lazily by consumers.
type PopulationRecord struct {
	DongID           string `json:"DONG_ID"`
	DongName         string `json:"DONG_NM,omitempty"`
	PassengerCount   string `json:"PSNG_NO,omitempty"`
	RidePassengers   string `json:"RIDE_PASGR_NUM,omitempty"`
	AlightPassengers string `json:"ALIGHT_PASGR_NUM,omitempty"`
}

// EstateDeal is a single real-estate transaction. DealAmount keeps the
// upstream formatting ("100,000") or the sentinel "N/A".
type EstateDeal struct {
	DealAmount   string `json:"dealAmount"`
	DealYear     int    `json:"dealYear"`
	DealMonth    int    `json:"dealMonth"`
	DealDay      int    `json:"dealDay"`
	BuildingType string `json:"buildingType"`
}

// SimilarBusinessInfo is the competing-business estimate for a gu/dong/type.
type SimilarBusinessInfo struct {
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// AnalyzedContext is the prior analysis a chat question may be grounded in.
type AnalyzedContext struct {
	Gu               string               `json:"gu"`
	Dong             string               `json:"dong"`
	Item             string               `json:"item"`
	Population       *PopulationRecord    `json:"population,omitempty"`
	Similar          *SimilarBusinessInfo `json:"similar,omitempty"`
	Score            string               `json:"score,omitempty"`
	Recommendation   string               `json:"recommendation,omitempty"`
	LocationAnalysis string               `json:"location_analysis,omitempty"`
}

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Gu         string            `json:"gu"`
	Dong       string            `json:"dong"`
	Item       string            `json:"item"`
	Population *PopulationRecord `json:"population,omitempty"`
	Estate     []EstateDeal      `json:"estate,omitempty"`
}

// AnalyzeResponse is the body returned by POST /analyze.
type AnalyzeResponse struct {
	Score            int                  `json:"score"`
	Verdict          string               `json:"verdict"`
	Recommendation   string               `json:"recommendation"`
	LocationAnalysis string               `json:"location_analysis"`
	Similar          *SimilarBusinessInfo `json:"similar"`
}

// MarketReport is the composite result of GET /analyze_market.
type MarketReport struct {
	Gu               string               `json:"gu"`
	Dong             string               `json:"dong"`
	Item             string               `json:"item"`
	Population       *PopulationRecord    `json:"population"`
	Estate           []EstateDeal         `json:"estate"`
	Similar          *SimilarBusinessInfo `json:"similar"`
	Score            int                  `json:"score"`
	Verdict          string               `json:"verdict"`
	Recommendation   string               `json:"recommendation"`
	LocationAnalysis string               `json:"location_analysis"`
}
