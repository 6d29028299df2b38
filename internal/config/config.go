package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Google    Google    `mapstructure:",squash"`
	Cache     Cache     `mapstructure:",squash"`
	Retry     Retry     `mapstructure:",squash"`
	SheetSync SheetSync `mapstructure:",squash"`
	Alerts    Alerts    `mapstructure:",squash"`
	SecretKey string    `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Google concentra o acesso à planilha e ao provedor de identidade
type Google struct {
	SpreadsheetID string `mapstructure:"google_spreadsheet_id"`
	SheetsURL     string `mapstructure:"google_sheets_url"`
	ClientID      string `mapstructure:"google_client_id"`
	ClientSecret  string `mapstructure:"google_client_secret"`
	RefreshToken  string `mapstructure:"google_refresh_token"`
	TokenURL      string `mapstructure:"google_token_url"`
	RevokeURL     string `mapstructure:"google_revoke_url"`
	UserinfoURL   string `mapstructure:"google_userinfo_url"`
	TokenFile     string `mapstructure:"google_token_file"`
}

type Cache struct {
	TTL time.Duration `mapstructure:"cache_ttl"`
}

type Retry struct {
	Attempts  int           `mapstructure:"retry_attempts"`
	BaseDelay time.Duration `mapstructure:"retry_base_delay"`
}

type SheetSync struct {
	CronSchedule string `mapstructure:"sheet_sync_cron"`
	Enabled      bool   `mapstructure:"sheet_sync_enabled"`
}

type Alerts struct {
	TTL time.Duration `mapstructure:"alert_ttl"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("GOOGLE_SPREADSHEET_ID", "")
	viper.SetDefault("GOOGLE_SHEETS_URL", "https://sheets.googleapis.com/v4/spreadsheets")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REFRESH_TOKEN", "")
	viper.SetDefault("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_REVOKE_URL", "https://oauth2.googleapis.com/revoke")
	viper.SetDefault("GOOGLE_USERINFO_URL", "https://www.googleapis.com/oauth2/v2/userinfo")
	viper.SetDefault("GOOGLE_TOKEN_FILE", ".sales_gapi_token.json")

	viper.SetDefault("CACHE_TTL", "30s")

	viper.SetDefault("RETRY_ATTEMPTS", 3)
	viper.SetDefault("RETRY_BASE_DELAY", "1s")

	// Aquecimento periódico do cache, desligado por padrão
	viper.SetDefault("SHEET_SYNC_CRON", "*/15 * * * *")
	viper.SetDefault("SHEET_SYNC_ENABLED", false)

	viper.SetDefault("ALERT_TTL", "5s")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
