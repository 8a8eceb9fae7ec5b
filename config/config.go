package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// Service
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"formup"`

	// PostgreSQL
	PostgreSQLHost       string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort       string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser       string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword   string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase   string `env:"POSTGRESQL_DATABASE" envDefault:"formup"`
	PostgreSQLSchema     string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode    string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle    int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"30"`
	PostgreSQLMaxOpen    int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"200"`
	PostgreSQLReplicaDSN string `env:"POSTGRESQL_REPLICA_DSN"` // optional read replica

	// Redis
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"formup"`

	// RabbitMQ
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// JWT
	JWTSecret        string `env:"JWT_SECRET"`
	JWTExpireMinutes int    `env:"JWT_EXPIRE_MINUTES" envDefault:"30"`
	JWTRefreshDays   int    `env:"JWT_REFRESH_DAYS" envDefault:"7"`

	// Session / CSRF (browser clients)
	CSRFEnabled   bool   `env:"CSRF_ENABLED" envDefault:"false"`
	CSRFSecret    string `env:"CSRF_SECRET" envDefault:"formup-csrf-secret"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"formup-session-secret"`

	// SMS provider for reminder notifications
	SMSProvider     string `env:"SMS_PROVIDER" envDefault:"mock"` // aliyun, mock
	SMSSignName     string `env:"SMS_SIGN_NAME"`
	SMSTemplateCode string `env:"SMS_TEMPLATE_CODE"`

	// External OCR (document table extraction) for scanned IPPT scoresheets
	OCRProvider string `env:"OCR_PROVIDER" envDefault:"mock"` // azure, mock
	OCREndpoint string `env:"OCR_ENDPOINT"`
	OCRAPIKey   string `env:"OCR_API_KEY"`

	// Sensitive-field encryption (phone numbers), 32 bytes AES-256
	EncryptionKey string `env:"ENCRYPTION_KEY"`
	PhoneHashSalt string `env:"PHONEHASH_SALT" envDefault:"formup-phone-salt"`

	// Snowflake ID generator
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// Logging
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// Tracing / metrics
	OTLPEndpoint string `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`

	// Rate limiting
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"100"`

	// Driving currency rules
	CurrencyValidityDays int `env:"CURRENCY_VALIDITY_DAYS" envDefault:"90"`
	CurrencyWarningDays  int `env:"CURRENCY_WARNING_DAYS" envDefault:"30"`

	// Mess booking rules
	BookingMaxPerHour       int `env:"BOOKING_MAX_PER_HOUR" envDefault:"20"`
	BookingLimitedAt        int `env:"BOOKING_LIMITED_AT" envDefault:"15"`
	BookingCreditsPerHour   int `env:"BOOKING_CREDITS_PER_HOUR" envDefault:"1"`
	BookingRefundCutoffHrs  int `env:"BOOKING_REFUND_CUTOFF_HOURS" envDefault:"24"`
	BookingReminderLeadMins int `env:"BOOKING_REMINDER_LEAD_MINUTES" envDefault:"120"`
	DefaultCreditBalance    int `env:"DEFAULT_CREDIT_BALANCE" envDefault:"30"` // credits for a newly created soldier

	// Bootstrap admin, created during migration when no admin exists
	BootstrapAdminServiceNo string `env:"BOOTSTRAP_ADMIN_SERVICE_NO" envDefault:"ADMIN001"`
	BootstrapAdminPassword  string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.JWTSecret == "" {
		if Cfg.IsProduction() {
			log.Fatal("JWT_SECRET is required in production")
		}
		log.Printf("WARN: JWT_SECRET is not set, using an insecure development default")
		Cfg.JWTSecret = "formup-dev-jwt-secret"
	}

	if Cfg.EncryptionKey == "" {
		if Cfg.IsProduction() {
			log.Fatal("ENCRYPTION_KEY is required (32 bytes for AES-256)")
		}
		log.Printf("WARN: ENCRYPTION_KEY is not set, using an insecure development default")
		Cfg.EncryptionKey = "formup-dev-encryption-key-32-byt"
	}

	if len(Cfg.EncryptionKey) != 32 {
		log.Fatal("ENCRYPTION_KEY must be exactly 32 bytes for AES-256")
	}

	if Cfg.SMSProvider == "aliyun" && Cfg.SMSSignName == "" {
		log.Printf("WARN: SMS_SIGN_NAME is not set, SMS reminders may not work properly")
	}

	if Cfg.OCRProvider == "azure" && (Cfg.OCREndpoint == "" || Cfg.OCRAPIKey == "") {
		log.Printf("WARN: OCR endpoint/key not set, scoresheet scanning will not work")
	}
}

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
