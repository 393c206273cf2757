package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	Port       string
	AppEnv     string

	AppAuthKey string
	AppEncKey  string
	CSRFKey    string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	StoreName    string

	AdminUsername string
	AdminPassword string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	env := ENV{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		Port:       os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),

		AppAuthKey: os.Getenv("APP_AUTH_KEY"),
		AppEncKey:  os.Getenv("APP_ENC_KEY"),
		CSRFKey:    os.Getenv("CSRF_KEY"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUsername: os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASS"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
		StoreName:    os.Getenv("STORE_NAME"),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if env.SMTPFrom == "" {
		env.SMTPFrom = env.SMTPUsername
	}
	if env.StoreName == "" {
		env.StoreName = "Our Store"
	}
	if env.Port == "" {
		env.Port = ":8080"
	}

	return env
}

var LoadENV = LoadEnv()
