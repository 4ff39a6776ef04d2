package appconfig

import (
	"github.com/caarlos0/env/v6"
)

// AppConfig holds process-wide settings. Loaded once at startup from the
// environment (dotenv.LoadEnv reads .env first) and treated as immutable.
type AppConfig struct {
	// Language model
	OpenAIAPIKey    string  `env:"OPENAI_API_KEY"`
	ChatModel       string  `env:"CHAT_MODEL" envDefault:"gpt-4"`
	ChatTemperature float64 `env:"CHAT_TEMPERATURE" envDefault:"0.7"`

	// Retrieval
	RetrievalTopK int    `env:"RETRIEVAL_TOP_K" envDefault:"5"`
	Tenant        string `env:"MONGO_TENANT" envDefault:"sanggwon"`

	// Data gateways
	KakaoRESTAPIKey  string `env:"KAKAO_REST_API_KEY"`
	KakaoAPIURL      string `env:"KAKAO_API_URL" envDefault:"https://dapi.kakao.com/v2/local/search/keyword.json"`
	RealEstateKey    string `env:"REAL_ESTATE_KEY"`
	RealEstateAPIURL string `env:"REAL_ESTATE_API_URL" envDefault:"http://apis.data.go.kr/1613000/RTMSDataSvcNrgTrade/getRTMSDataSvcNrgTrade"`
	PopulationAPIKey string `env:"POPULATION_API_KEY"`
	PopulationAPIURL string `env:"POPULATION_API_URL" envDefault:"http://openapi.seoul.go.kr:8088"`

	// Optional overrides for the bundled reference data.
	GuCodePath        string `env:"GU_CODE_PATH"`
	AddressMasterPath string `env:"ADDRESS_MASTER_PATH"`
}

func ProvideAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
