package analysis

import (
	"strconv"
	"strings"

	"github.com/sanggwon-lab/market-rag/model"
)

// Suitability thresholds. Units come straight from the data sources:
// passenger counts per day, deal amounts in 만원.
const (
	trafficThreshold     = 5000
	priceThreshold       = 120000
	competitionThreshold = 10
)

// Verdict maps a 0–3 score to its textual band. Scores 0 and 1 share the
// unfavorable band.
func Verdict(score int) string {
	switch score {
	case 3:
		return "✅ 매우 적합한 입지예요! 👍"
	case 2:
		return "⚠️ 나쁘지는 않지만 경쟁을 고려하세요."
	default:
		return "❌ 다소 불리한 입지입니다."
	}
}

// EvaluateSuitability counts the satisfied signals and returns the score
// with its verdict band. Missing or unparseable inputs contribute a false
// signal; the computation itself never fails.
func EvaluateSuitability(pop *model.PopulationRecord, estate []model.EstateDeal, similarCount int) (int, string) {
	score := 0

	if trafficSignal(pop) {
		score++
	}
	if priceSignal(estate) {
		score++
	}
	if similarCount < competitionThreshold {
		score++
	}

	return score, Verdict(score)
}

// trafficSignal: boarding + alighting counts above the threshold.
func trafficSignal(pop *model.PopulationRecord) bool {
	if pop == nil {
		return false
	}

	ride, err := strconv.Atoi(strings.TrimSpace(pop.RidePassengers))
	if err != nil {
		return false
	}
	alight, err := strconv.Atoi(strings.TrimSpace(pop.AlightPassengers))
	if err != nil {
		return false
	}
	return ride+alight > trafficThreshold
}

// priceSignal: mean of the parseable deal amounts below the threshold.
// Records with the "N/A" sentinel or otherwise unparseable amounts are
// excluded rather than failing the signal.
func priceSignal(estate []model.EstateDeal) bool {
	sum, n := 0, 0
	for _, deal := range estate {
		amount := strings.ReplaceAll(deal.DealAmount, ",", "")
		v, err := strconv.Atoi(strings.TrimSpace(amount))
		if err != nil {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return false
	}
	return float64(sum)/float64(n) < priceThreshold
}
