package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReformulateForSearch(t *testing.T) {
	t.Run("Should keep Hangul runs longer than one syllable", func(t *testing.T) {
		got := reformulateForSearch("역삼동 내 카페 창업")
		assert.Equal(t, "역삼동 카페 창업", got)
	})

	t.Run("Should return empty string for non-Hangul input", func(t *testing.T) {
		assert.Equal(t, "", reformulateForSearch("coffee shop 123"))
	})
}

func TestEmphasizeKeywords(t *testing.T) {
	t.Run("Should append emphasis for matched keywords", func(t *testing.T) {
		got := emphasizeKeywords("상권 알려줘")
		assert.Contains(t, got, "상권 관련 정보 상권 분석")
	})

	t.Run("Should leave unmatched questions untouched", func(t *testing.T) {
		assert.Equal(t, "날씨 알려줘", emphasizeKeywords("날씨 알려줘"))
	})
}

func TestRewriteForSearch(t *testing.T) {
	t.Run("Should use the dong template when a dong name appears", func(t *testing.T) {
		got := RewriteForSearch("서교동에서 카페 창업 어때?")

		assert.Contains(t, got, "'서교동' 지역에 대해")
		assert.Contains(t, got, "핵심 키워드:")
		assert.Contains(t, got, "원 질문: 서교동에서 카페 창업 어때?")
	})

	t.Run("Should concatenate keywords and question otherwise", func(t *testing.T) {
		got := RewriteForSearch("강남에서 카페 창업 어때?")

		assert.NotContains(t, got, "지역에 대해 유동인구")
		assert.Contains(t, got, "원 질문: 강남에서 카페 창업 어때?")
	})
}
