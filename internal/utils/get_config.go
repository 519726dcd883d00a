package utils

import (
	"Smart-Shelf-Backend/domain"

	"gopkg.in/yaml.v2"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppPort     string `yaml:"APP_PORT"`
	CORSOrigins string `yaml:"CORS_ORIGINS"`

	// Persisted store configuration
	StoreDriver   string `yaml:"STORE_DRIVER"`
	StorePath     string `yaml:"STORE_PATH"`
	StoreName     string `yaml:"STORE_NAME"`
	StoreWatch    bool   `yaml:"STORE_WATCH"`
	SeedDemoItems bool   `yaml:"SEED_DEMO_ITEMS"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBTimeZone string `yaml:"DB_TIMEZONE"`

	RedisURL string `yaml:"REDIS_URL"`

	// Household auth
	JWTSecret          string `yaml:"JWT_SECRET"`
	AuthPassphraseHash string `yaml:"AUTH_PASSPHRASE_HASH"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
	DigestRecipient  string `yaml:"DIGEST_RECIPIENT"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Recipe provider configuration
	RecipeProvider string `yaml:"RECIPE_PROVIDER"`
	GeminiAPIKey   string `yaml:"GEMINI_API_KEY"`
	GeminiModel    string `yaml:"GEMINI_MODEL"`
	OpenAIAPIKey   string `yaml:"OPENAI_API_KEY"`
	OpenAIModel    string `yaml:"OPENAI_MODEL"`
	OpenAIBaseURL  string `yaml:"OPENAI_BASE_URL"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		AppPort:        "8080",
		CORSOrigins:    "*",
		StoreDriver:    "file",
		StorePath:      "./data/smart-shelf.json",
		StoreName:      domain.DefaultStoreName,
		DBPort:         "5432",
		DBTimeZone:     "UTC",
		RecipeProvider: "gemini",
		GeminiModel:    "gemini-2.0-flash",
		OpenAIModel:    "gpt-4o-mini",
	}
}

// LoadConfig reads config.yaml from the working directory, then lets
// environment variables override any key.
func LoadConfig() {
	LoadConfigFile("config.yaml")
}

func LoadConfigFile(path string) {
	config = defaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	applyEnvOverrides()
}

func applyEnvOverrides() {
	for key, target := range stringKeys() {
		if v, ok := os.LookupEnv(key); ok {
			*target = v
		}
	}
	for key, target := range boolKeys() {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				log.Printf("Ignoring %s=%q: %s\n", key, v, err)
				continue
			}
			*target = b
		}
	}
}

func stringKeys() map[string]*string {
	return map[string]*string{
		"APP_PORT":             &config.AppPort,
		"CORS_ORIGINS":         &config.CORSOrigins,
		"STORE_DRIVER":         &config.StoreDriver,
		"STORE_PATH":           &config.StorePath,
		"STORE_NAME":           &config.StoreName,
		"DB_USER":              &config.DBUser,
		"DB_NAME":              &config.DBName,
		"DB_PASSWORD":          &config.DBPassword,
		"DB_PORT":              &config.DBPort,
		"DB_HOST":              &config.DBHost,
		"DB_TIMEZONE":          &config.DBTimeZone,
		"REDIS_URL":            &config.RedisURL,
		"JWT_SECRET":           &config.JWTSecret,
		"AUTH_PASSPHRASE_HASH": &config.AuthPassphraseHash,
		"APP_URL":              &config.AppURL,
		"SMTP_HOST":            &config.SMTPHost,
		"SMTP_PORT":            &config.SMTPPort,
		"SMTP_SENDER_NAME":     &config.SMTPSenderName,
		"SMTP_AUTH_EMAIL":      &config.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD":   &config.SMTPAuthPassword,
		"DIGEST_RECIPIENT":     &config.DigestRecipient,
		"AWS_S3_BUCKET":        &config.AWSS3Bucket,
		"AWS_S3_REGION":        &config.AWSS3Region,
		"AWS_ACCESS_KEY":       &config.AWSAccessKey,
		"AWS_SECRET_KEY":       &config.AWSSecretKey,
		"RECIPE_PROVIDER":      &config.RecipeProvider,
		"GEMINI_API_KEY":       &config.GeminiAPIKey,
		"GEMINI_MODEL":         &config.GeminiModel,
		"OPENAI_API_KEY":       &config.OpenAIAPIKey,
		"OPENAI_MODEL":         &config.OpenAIModel,
		"OPENAI_BASE_URL":      &config.OpenAIBaseURL,
	}
}

func boolKeys() map[string]*bool {
	return map[string]*bool{
		"STORE_WATCH":     &config.StoreWatch,
		"SEED_DEMO_ITEMS": &config.SeedDemoItems,
	}
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func GetConfig(key string) string {
	if target, ok := stringKeys()[key]; ok {
		return *target
	}
	if target, ok := boolKeys()[key]; ok {
		return getBoolString(*target)
	}
	return ""
}

func GetBoolConfig(key string) bool {
	if target, ok := boolKeys()[key]; ok {
		return *target
	}
	return false
}

// SetConfig overrides one key in the loaded configuration.
func SetConfig(key, value string) {
	if target, ok := stringKeys()[key]; ok {
		*target = value
		return
	}
	if target, ok := boolKeys()[key]; ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			*target = b
		}
	}
}
