package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"salonbook-backend/scheduling"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds all configuration values.
type Settings struct {
	Port           string `mapstructure:"PORT"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	Env            string `mapstructure:"ENV"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	JWTSecret      string `mapstructure:"JWT_SECRET"`
	JWTExpiryHours int    `mapstructure:"JWT_EXPIRY_HOURS"`
	AdminEmail     string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword  string `mapstructure:"ADMIN_PASSWORD"`

	MaxBookingsPerMin int `mapstructure:"MAX_BOOKINGS_PER_MIN"`

	// Redis backs the notification queue. Empty disables it.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	TwilioAccountSID     string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken      string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber    string `mapstructure:"TWILIO_PHONE_NUMBER"`
	TwilioWhatsAppNumber string `mapstructure:"TWILIO_WHATSAPP_NUMBER"`
	ReminderCron         string `mapstructure:"REMINDER_CRON"`

	SalonName    string `mapstructure:"SALON_NAME"`
	SalonPhone   string `mapstructure:"SALON_PHONE"`
	SalonEmail   string `mapstructure:"SALON_EMAIL"`
	SalonAddress string `mapstructure:"SALON_ADDRESS"`

	OpenTime            string `mapstructure:"BUSINESS_OPEN_TIME"`
	CloseTime           string `mapstructure:"BUSINESS_CLOSE_TIME"`
	SlotMinutes         int    `mapstructure:"SLOT_MINUTES"`
	ClosedDays          string `mapstructure:"CLOSED_DAYS"`
	MinBookingDays      int    `mapstructure:"MIN_BOOKING_DAYS"`
	MaxBookingDaysAhead int    `mapstructure:"MAX_BOOKING_DAYS_AHEAD"`
	Timezone            string `mapstructure:"SALON_TIMEZONE"`
}

var defaults = map[string]interface{}{
	"PORT":                   "8080",
	"DATABASE_URL":           "",
	"ENV":                    "development",
	"ALLOWED_ORIGINS":        "http://localhost:5173",
	"JWT_SECRET":             "",
	"JWT_EXPIRY_HOURS":       72,
	"ADMIN_EMAIL":            "",
	"ADMIN_PASSWORD":         "",
	"MAX_BOOKINGS_PER_MIN":   10,
	"REDIS_ADDR":             "",
	"REDIS_PASSWORD":         "",
	"REDIS_QUEUE_DB":         0,
	"TWILIO_ACCOUNT_SID":     "",
	"TWILIO_AUTH_TOKEN":      "",
	"TWILIO_PHONE_NUMBER":    "",
	"TWILIO_WHATSAPP_NUMBER": "",
	"REMINDER_CRON":          "0 9 * * *",
	"SALON_NAME":             "Adrienn Kozmetika",
	"SALON_PHONE":            "+36 30 716 0818",
	"SALON_EMAIL":            "",
	"SALON_ADDRESS":          "Fő út 70., Csongrád, 6640",
	"BUSINESS_OPEN_TIME":     "08:00",
	"BUSINESS_CLOSE_TIME":    "17:00",
	"SLOT_MINUTES":           scheduling.DefaultSlotMinutes,
	"CLOSED_DAYS":            "0",
	"MIN_BOOKING_DAYS":       2,
	"MAX_BOOKING_DAYS_AHEAD": 90,
	"SALON_TIMEZONE":         "Europe/Budapest",
}

// LoadSettings reads .env, then config.yaml, then the environment, which
// wins over both.
func LoadSettings() (Settings, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

func (s Settings) IsProduction() bool {
	return s.Env == "production"
}

// Origins splits ALLOWED_ORIGINS on commas.
func (s Settings) Origins() []string {
	var out []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Rules builds the validated business rules.
func (s Settings) Rules() (scheduling.Rules, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return scheduling.Rules{}, fmt.Errorf("invalid SALON_TIMEZONE %q: %w", s.Timezone, err)
	}
	closed, err := parseWeekdays(s.ClosedDays)
	if err != nil {
		return scheduling.Rules{}, err
	}

	r := scheduling.Rules{
		OpenTime:            s.OpenTime,
		CloseTime:           s.CloseTime,
		SlotMinutes:         s.SlotMinutes,
		ClosedDays:          closed,
		MinBookingDays:      s.MinBookingDays,
		MaxBookingDaysAhead: s.MaxBookingDaysAhead,
		Location:            loc,
	}
	if err := r.Validate(); err != nil {
		return scheduling.Rules{}, fmt.Errorf("invalid business rules: %w", err)
	}
	return r, nil
}

// parseWeekdays reads "0,6" style lists where 0 is Sunday.
func parseWeekdays(raw string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid CLOSED_DAYS entry %q: use 0 (Sunday) to 6 (Saturday)", part)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}
