package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"`
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`

	Systempay struct {
		PaymentURL             string `yaml:"payment_url"`
		SiteID                 string `yaml:"site_id"`
		CtxMode                string `yaml:"ctx_mode"` // TEST или PRODUCTION
		ActionMode             string `yaml:"action_mode"`
		PageAction             string `yaml:"page_action"`
		PaymentConfig          string `yaml:"payment_config"`
		Version                string `yaml:"version"`
		RedirectSuccessMessage string `yaml:"redirect_success_message"`
		RedirectErrorMessage   string `yaml:"redirect_error_message"`
		URLReturn              string `yaml:"url_return"`
		KeyTest                string `yaml:"key_test"`
		KeyProd                string `yaml:"key_prod"`
	} `yaml:"systempay"`
}

// RequiredFields возвращает сконфигурированные значения обязательных полей
// платежной формы (без префикса vads_).
func (c *Config) RequiredFields() map[string]string {
	sp := c.Systempay
	return map[string]string{
		"action_mode":              sp.ActionMode,
		"ctx_mode":                 sp.CtxMode,
		"page_action":              sp.PageAction,
		"payment_config":           sp.PaymentConfig,
		"site_id":                  sp.SiteID,
		"version":                  sp.Version,
		"redirect_success_message": sp.RedirectSuccessMessage,
		"redirect_error_message":   sp.RedirectErrorMessage,
		"url_return":               sp.URLReturn,
	}
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml (режим НЕ-тест)")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		AppConfig = &cfg
		return
	}

	log.Println("✅ Загрузка конфигурации из ПЕРЕМЕННЫХ ОКРУЖЕНИЯ (режим теста)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "payments@test.com"

	cfg.Systempay.PaymentURL = "https://paiement.systempay.fr/vads-payment/"
	cfg.Systempay.SiteID = getEnvDefault("SYSTEMPAY_SITE_ID", "12345678")
	cfg.Systempay.CtxMode = getEnvDefault("SYSTEMPAY_CTX_MODE", "TEST")
	cfg.Systempay.ActionMode = "INTERACTIVE"
	cfg.Systempay.PageAction = "PAYMENT"
	cfg.Systempay.PaymentConfig = "SINGLE"
	cfg.Systempay.Version = "V2"
	cfg.Systempay.RedirectSuccessMessage = "Payment accepted"
	cfg.Systempay.RedirectErrorMessage = "Payment refused"
	cfg.Systempay.URLReturn = "http://localhost:4000/payment/return"
	cfg.Systempay.KeyTest = getEnvDefault("SYSTEMPAY_KEY_TEST", "test_key_1234567890")
	cfg.Systempay.KeyProd = os.Getenv("SYSTEMPAY_KEY_PROD")

	AppConfig = &cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
