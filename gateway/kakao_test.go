package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sanggwon-lab/market-rag/appconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kakaoClientFor(ts *httptest.Server) *KakaoClient {
	return NewKakaoClient(&appconfig.AppConfig{
		KakaoAPIURL:     ts.URL,
		KakaoRESTAPIKey: "test-key",
	})
}

func TestKakaoClient_SimilarBusinessInfo(t *testing.T) {
	t.Run("Should report the keyword search total count", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "KakaoAK test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "마포구 서교동 카페", r.URL.Query().Get("query"))
			w.Write([]byte(`{"meta":{"total_count":12}}`))
		}))
		defer ts.Close()

		info := kakaoClientFor(ts).SimilarBusinessInfo(context.Background(), "마포구", "서교동", "카페")
		require.NotNil(t, info)
		assert.Equal(t, 12, info.Count)
		assert.Contains(t, info.Description, "'마포구 서교동 카페'")
		assert.Contains(t, info.Description, "12건")
	})

	t.Run("Should degrade to zero count on upstream failure", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		info := kakaoClientFor(ts).SimilarBusinessInfo(context.Background(), "마포구", "서교동", "카페")
		require.NotNil(t, info)
		assert.Zero(t, info.Count)
		assert.Contains(t, info.Description, "카카오 API 호출 오류")
	})

	t.Run("Should degrade on malformed payload", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer ts.Close()

		info := kakaoClientFor(ts).SimilarBusinessInfo(context.Background(), "마포구", "서교동", "카페")
		assert.Zero(t, info.Count)
		assert.Contains(t, info.Description, "카카오 API 호출 오류")
	})
}
