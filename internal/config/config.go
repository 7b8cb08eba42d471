package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. It is loaded once at
// startup and passed down explicitly; nothing below main reads the
// environment on its own.
type Config struct {
	Port   string
	Org    OrgConfig
	Sheets SheetsConfig
	Drive  DriveConfig
	AI     AIConfig
	Auth   AuthConfig
	Print  PrintConfig

	// Cron spec for the background snapshot refresh.
	RefreshSchedule string
}

// OrgConfig is the letterhead printed on vouchers.
type OrgConfig struct {
	Name       string
	Department string
}

// SheetsConfig identifies the backing spreadsheet and its ranges.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	DataSheet       string // transaction log tab, append target
	DataRange       string
	CatalogRange    string // device catalog (DANHMUC)
	MasterRange     string // departments/brands/countries/suppliers (DMDC)
}

// DriveConfig identifies the scanned-voucher folder.
type DriveConfig struct {
	FolderID string
}

// AIConfig holds Gemini settings.
type AIConfig struct {
	APIKey string
	Model  string
}

// AuthConfig holds the shared staff PIN and the session token secret.
type AuthConfig struct {
	PIN       string
	JWTSecret string
}

// PrintConfig holds PDF rendering options.
type PrintConfig struct {
	// Path to a TTF with Vietnamese glyphs. Without it gofpdf falls back
	// to a core font and diacritics degrade.
	FontPath string
}

// Load loads configuration from environment variables, reading .env
// first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "3210"),
		Org: OrgConfig{
			Name:       getEnv("ORG_NAME", "BỆNH VIỆN ĐA KHOA BUÔN HỒ"),
			Department: getEnv("ORG_DEPARTMENT", "KHOA DƯỢC - KHO LINH KIỆN, THIẾT BỊ"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("SHEET_ID"),
			DataSheet:       getEnv("DATA_SHEET", "DULIEU"),
			DataRange:       getEnv("DATA_RANGE", "DULIEU!A3:U"),
			CatalogRange:    getEnv("CATALOG_RANGE", "DANHMUC!C4:I"),
			MasterRange:     getEnv("MASTER_RANGE", "DMDC!A4:E"),
		},
		Drive: DriveConfig{
			FolderID: os.Getenv("DRIVE_FOLDER_ID"),
		},
		AI: AIConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Auth: AuthConfig{
			PIN:       os.Getenv("APP_PIN"),
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Print: PrintConfig{
			FontPath: os.Getenv("PDF_FONT_PATH"),
		},
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", "*/5 * * * *"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the fields without workable defaults are present.
func (c *Config) Validate() error {
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("SHEET_ID is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.PIN == "" {
		return fmt.Errorf("APP_PIN is required")
	}
	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
