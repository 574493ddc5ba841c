package configs

import (
	"flag"
	"os"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	App struct {
		ServiceMode string `env:"FULFILLMENT_SERVICE_MODE"`

		Currency              string `env:"FULFILLMENT_CURRENCY"`
		DeliveryFee           string `env:"FULFILLMENT_DELIVERY_FEE"`
		FreeDeliveryThreshold string `env:"FULFILLMENT_FREE_DELIVERY_THRESHOLD"`
		TaxPercent            string `env:"FULFILLMENT_TAX_PERCENT"`

		CartTTLHours         int `env:"FULFILLMENT_CART_TTL_HOURS"`
		DefaultReturnWindow  int `env:"FULFILLMENT_DEFAULT_RETURN_WINDOW_DAYS"`
		MaxEvidenceImages    int `env:"FULFILLMENT_MAX_EVIDENCE_IMAGES"`
		MinReasonLength      int `env:"FULFILLMENT_MIN_REASON_LENGTH"`
		ServiceTimeoutSecond int `env:"FULFILLMENT_SERVICE_TIMEOUT_SECONDS"`
	}

	HTTPServer struct {
		Address string `env:"FULFILLMENT_SERVER_ADDRESS"`
		Port    int    `env:"FULFILLMENT_SERVER_PORT"`
	}

	JWT struct {
		Secret string `env:"FULFILLMENT_JWT_SECRET"`
	}

	PaymentGatewayService struct {
		URL         string `env:"PAYMENT_GATEWAY_URL"`
		APIKey      string `env:"PAYMENT_GATEWAY_API_KEY"`
		MockEnabled bool   `env:"PAYMENT_SERVICE_MOCK_ENABLED"`
	}

	NotifyService struct {
		URL         string `env:"NOTIFY_SERVICE_URL"`
		MockEnabled bool   `env:"NOTIFY_SERVICE_MOCK_ENABLED"`
	}

	UploaderService struct {
		AllowedHosts string `env:"UPLOADER_ALLOWED_HOSTS"`
	}

	Mongo struct {
		User              string `env:"FULFILLMENT_MONGO_USER"`
		Pass              string `env:"FULFILLMENT_MONGO_PASS"`
		Host              string `env:"FULFILLMENT_MONGO_HOST"`
		Port              int    `env:"FULFILLMENT_MONGO_PORT"`
		Database          string `env:"FULFILLMENT_MONGO_DATABASE"`
		ConnectionTimeout int    `env:"FULFILLMENT_MONGO_CONN_TIMEOUT"`
		MaxConnIdleTime   int    `env:"FULFILLMENT_MONGO_MAX_CONN_IDLE_TIME"`
		MaxPoolSize       int    `env:"FULFILLMENT_MONGO_MAX_POOL_SIZE"`
		MinPoolSize       int    `env:"FULFILLMENT_MONGO_MIN_POOL_SIZE"`
	}

	Redis struct {
		Host     string `env:"FULFILLMENT_REDIS_HOST"`
		Port     int    `env:"FULFILLMENT_REDIS_PORT"`
		Password string `env:"FULFILLMENT_REDIS_PASSWORD"`
		DB       int    `env:"FULFILLMENT_REDIS_DB"`
	}
}

func LoadConfig(path string) (*Config, error) {
	var config = &Config{}

	if os.Getenv("APP_ENV") == "dev" {
		if path != "" {
			if err := godotenv.Load(path); err != nil {
				return nil, errors.Wrapf(err, "loading env file %s failed", path)
			}
		} else if flag.Lookup("test.v") != nil {
			// test mode
			_ = godotenv.Load("../testdata/.env")
		} else {
			_ = godotenv.Load("./.env")
		}
	}

	if _, err := env.UnmarshalFromEnviron(config); err != nil {
		return nil, errors.Wrap(err, "unmarshal environment failed")
	}

	return config, nil
}
