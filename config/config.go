package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// JWT
	JWTSecret           string
	JWTExpiresIn        time.Duration
	JWTRefreshExpiresIn time.Duration

	// Server
	Port   string
	AppEnv string

	// Logging
	LogLevel         string
	LogFile          string
	LogRetentionDays int

	// Feature Toggles
	SkipMigrate bool
	SeedCatalog bool
}

func (c *Config) GetDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local"
}

var AppConfig *Config

func LoadConfig() {
	useSSM := getEnv("USE_SSM", "false") == "true"

	var (
		ssmClient *ssm.SSM
		paramMap  map[string]string
	)

	// Stage & base path for SSM (allows multi-env without code changes)
	basePath := getEnv("SSM_BASE_PATH", "/studytrack")
	stage := getEnv("STAGE", getEnv("APP_ENV", "production"))
	basePath = strings.TrimRight(basePath, "/")
	prefix := basePath + "/" + stage

	if useSSM {
		sess, err := session.NewSession(&aws.Config{Region: aws.String(getEnv("AWS_REGION", "ap-south-1"))})
		if err != nil {
			log.Fatal("Failed to create AWS session:", err)
		}
		ssmClient = ssm.New(sess)
		log.Printf("Using AWS SSM Parameter Store (prefix=%s)", prefix)
		paramMap = fetchSSMParameters(ssmClient, prefix)
	} else {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found, using environment variables")
		}
	}

	// Helper accessor respecting map / env fallback
	getVal := func(key, def string) string {
		if useSSM {
			// map key stored uppercase
			uk := strings.ToUpper(key)
			if v, ok := paramMap[uk]; ok && v != "" {
				return v
			}
		}
		return getEnv(strings.ToUpper(key), def)
	}

	jwtExpires := parseDurationWithShorthand(getVal("JWT_EXPIRES_IN", "24h"), "JWT_EXPIRES_IN")
	jwtRefreshExpires := parseDurationWithShorthand(getVal("JWT_REFRESH_EXPIRES_IN", "7d"), "JWT_REFRESH_EXPIRES_IN")

	retentionStr := getVal("LOG_RETENTION_DAYS", "90")
	retentionDays, err := strconv.Atoi(retentionStr)
	if err != nil || retentionDays < 1 {
		log.Fatal("Invalid LOG_RETENTION_DAYS format:", retentionStr)
	}

	AppConfig = &Config{
		DBHost:     getVal("DB_HOST", "localhost"),
		DBPort:     getVal("DB_PORT", "3306"),
		DBUser:     getVal("DB_USER", "root"),
		DBPassword: getVal("DB_PASSWORD", ""),
		DBName:     getVal("DB_NAME", "studytrack_go"),

		RedisHost:     getVal("REDIS_HOST", "localhost"),
		RedisPort:     getVal("REDIS_PORT", "6379"),
		RedisPassword: getVal("REDIS_PASSWORD", ""),

		JWTSecret:           getVal("JWT_SECRET", "your_super_secret_jwt_key"),
		JWTExpiresIn:        jwtExpires,
		JWTRefreshExpiresIn: jwtRefreshExpires,

		Port:   getVal("PORT", "3000"),
		AppEnv: getVal("APP_ENV", "development"),

		LogLevel:         getVal("LOG_LEVEL", "info"),
		LogFile:          getVal("LOG_FILE", "logs/app.log"),
		LogRetentionDays: retentionDays,

		SkipMigrate: strings.ToLower(getVal("SKIP_MIGRATE", "false")) == "true",
		SeedCatalog: strings.ToLower(getVal("SEED_CATALOG", "true")) == "true",
	}

	validateConfig(AppConfig, useSSM)
}

// parseDurationWithShorthand parses a Go duration, additionally accepting
// "7d" / "2w" shorthand.
func parseDurationWithShorthand(value, key string) time.Duration {
	d, err := time.ParseDuration(value)
	if err == nil {
		return d
	}
	s := strings.TrimSpace(strings.ToLower(value))
	if len(s) > 1 {
		unit := s[len(s)-1]
		numStr := s[:len(s)-1]
		if n, err2 := strconv.Atoi(numStr); err2 == nil {
			switch unit {
			case 'd':
				return time.Duration(n) * 24 * time.Hour
			case 'w':
				return time.Duration(n*7) * 24 * time.Hour
			}
		}
	}
	log.Fatalf("Invalid %s format: %v", key, err)
	return 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// fetchSSMParameters reads all parameters under prefix and returns map with UPPERCASE keys.
func fetchSSMParameters(client *ssm.SSM, prefix string) map[string]string {
	out := make(map[string]string)
	next := aws.String("")
	for {
		in := &ssm.GetParametersByPathInput{
			Path:           aws.String(prefix),
			WithDecryption: aws.Bool(true),
			Recursive:      aws.Bool(true),
		}
		if *next != "" {
			in.NextToken = next
		}
		resp, err := client.GetParametersByPath(in)
		if err != nil {
			log.Printf("Warning: unable to fetch SSM parameters for prefix %s: %v", prefix, err)
			break
		}
		for _, p := range resp.Parameters {
			if p.Name == nil || p.Value == nil {
				continue
			}
			name := *p.Name
			// last segment after '/'
			idx := strings.LastIndex(name, "/")
			key := name
			if idx >= 0 {
				key = name[idx+1:]
			}
			if key == "" {
				continue
			}
			out[strings.ToUpper(key)] = *p.Value
		}
		if resp.NextToken == nil || *resp.NextToken == "" {
			break
		}
		next = resp.NextToken
	}
	return out
}

func validateConfig(c *Config, usedSSM bool) {
	// Only enforce stricter rules in production
	if strings.ToLower(c.AppEnv) != "production" {
		return
	}
	// Required secrets
	required := map[string]string{
		"DB_PASSWORD": c.DBPassword,
		"JWT_SECRET":  c.JWTSecret,
	}
	for k, v := range required {
		if strings.TrimSpace(v) == "" {
			log.Fatalf("Missing required secret %s in production (SSM=%v)", k, usedSSM)
		}
	}
	if len(c.JWTSecret) < 16 {
		log.Fatal("JWT_SECRET too short (min 16 chars)")
	}
}
