package rag

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	hangulRunPattern = regexp.MustCompile(`[가-힣]+`)
	dongNamePattern  = regexp.MustCompile(`[가-힣]+동`)
)

// emphasisKeywords are appended to the question before keyword extraction
// so that domain terms dominate the search query.
var emphasisKeywords = []string{
	"상권", "입지", "분석", "업종", "추천", "창업",
	"유동인구", "시간대", "연령대", "혼잡도",
}

func emphasizeKeywords(question string) string {
	for _, kw := range emphasisKeywords {
		if strings.Contains(question, kw) {
			question += fmt.Sprintf(" %s 관련 정보 %s 분석", kw, kw)
		}
	}
	return question
}

// reformulateForSearch condenses a question to its Hangul keywords:
// maximal Hangul runs longer than one syllable, joined by single spaces.
func reformulateForSearch(question string) string {
	runs := hangulRunPattern.FindAllString(question, -1)
	keywords := make([]string, 0, len(runs))
	for _, run := range runs {
		if utf8.RuneCountInString(run) > 1 {
			keywords = append(keywords, run)
		}
	}
	return strings.Join(keywords, " ")
}

// RewriteForSearch turns a free-form question into a retrieval query.
// The rewritten text is only ever sent to the retriever; the model always
// receives the original question.
func RewriteForSearch(question string) string {
	dongName := dongNamePattern.FindString(question)
	reformatted := reformulateForSearch(emphasizeKeywords(question))

	if dongName != "" {
		return fmt.Sprintf(`
'%s' 지역에 대해 유동인구, 업종, 상권, 창업, 시간대 분석과 관련된 문서를 찾고자 합니다.
핵심 키워드: %s
원 질문: %s
`, dongName, reformatted, question)
	}
	return fmt.Sprintf("%s\n\n원 질문: %s", reformatted, question)
}
