package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Llm              Llm              `mapstructure:",squash"`
	Mail             Mail             `mapstructure:",squash"`
	ReportWorker     ReportWorker     `mapstructure:",squash"`
	WeeklyReportSync WeeklyReportSync `mapstructure:",squash"`
	SecretKey        string           `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Llm configura o provedor de resumos de texto. Sem token o cliente opera
// apenas com o resumo local de fallback.
type Llm struct {
	BaseURL string `mapstructure:"llm_base_url"`
	ModelID string `mapstructure:"llm_model_id"`
	Token   string `mapstructure:"llm_token"`
}

type Mail struct {
	SendGridAPIKey string `mapstructure:"sendgrid_api_key"`
	FromEmail      string `mapstructure:"mail_from_email"`
	FromName       string `mapstructure:"mail_from_name"`
}

// ReportWorker configura o pipeline assíncrono de relatórios.
type ReportWorker struct {
	QueueSize int `mapstructure:"report_worker_queue_size"`
	Workers   int `mapstructure:"report_worker_concurrency"`
}

// WeeklyReportSync configura o agendador que dispara o resumo semanal
// automaticamente para uma sucursal fixa.
type WeeklyReportSync struct {
	CronSchedule string `mapstructure:"weekly_report_sync_cron"`
	Enabled      bool   `mapstructure:"weekly_report_sync_enabled"`
	Branch       string `mapstructure:"weekly_report_sync_branch"`
	EmailTo      string `mapstructure:"weekly_report_sync_email_to"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("LLM_BASE_URL", "https://models.github.ai/inference")
	viper.SetDefault("LLM_MODEL_ID", "gpt-4o-mini")
	viper.SetDefault("LLM_TOKEN", "") // Sem token usa apenas o fallback local

	viper.SetDefault("SENDGRID_API_KEY", "")
	viper.SetDefault("MAIL_FROM_EMAIL", "reportes@sales-tracker.local")
	viper.SetDefault("MAIL_FROM_NAME", "Sales Tracker")

	viper.SetDefault("REPORT_WORKER_QUEUE_SIZE", 64)
	viper.SetDefault("REPORT_WORKER_CONCURRENCY", 2)

	viper.SetDefault("WEEKLY_REPORT_SYNC_CRON", "0 8 * * 1") // Segunda-feira às 8h
	viper.SetDefault("WEEKLY_REPORT_SYNC_ENABLED", false)
	viper.SetDefault("WEEKLY_REPORT_SYNC_BRANCH", "")
	viper.SetDefault("WEEKLY_REPORT_SYNC_EMAIL_TO", "")

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

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile tenta carregar o arquivo .env das localizações conhecidas
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
