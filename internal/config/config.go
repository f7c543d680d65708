package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/garyjia/rental-invoice/internal/domain/document"
	"github.com/garyjia/rental-invoice/internal/domain/entity"
	"github.com/garyjia/rental-invoice/internal/infrastructure/render"
)

// EnvPrefix prefixes every environment override, e.g. INVOICE_SERVER_PORT
const EnvPrefix = "INVOICE"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Invoice InvoiceConfig `mapstructure:"invoice"`
	Logo    LogoConfig    `mapstructure:"logo"`
	Export  ExportConfig  `mapstructure:"export"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	Mode         string        `mapstructure:"mode" validate:"oneof=debug release test"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format" validate:"oneof=json console"`
}

// InvoiceConfig holds the settings of the document a session starts with
type InvoiceConfig struct {
	CurrencySymbol  string        `mapstructure:"currency_symbol" validate:"required"`
	CurrencyCode    string        `mapstructure:"currency_code" validate:"required,len=3"`
	Number          string        `mapstructure:"number"`
	TaxRate         float64       `mapstructure:"tax_rate" validate:"gte=0"`
	DueInDays       int           `mapstructure:"due_in_days" validate:"gte=0"`
	Notes           string        `mapstructure:"notes"`
	ItemPlaceholder string        `mapstructure:"item_placeholder"`
	SeedDescription string        `mapstructure:"seed_description"`
	SeedQuantity    float64       `mapstructure:"seed_quantity" validate:"gte=0"`
	SeedRate        float64       `mapstructure:"seed_rate" validate:"gte=0"`
	Company         CompanyConfig `mapstructure:"company"`
}

// CompanyConfig prefills the issuing party
type CompanyConfig struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	Phone   string `mapstructure:"phone"`
	Email   string `mapstructure:"email" validate:"omitempty,email"`
	Website string `mapstructure:"website"`
}

// LogoConfig limits logo uploads
type LogoConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes" validate:"gt=0"`
}

// ExportConfig holds export output configuration
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}

// Load loads configuration from an optional YAML file, a .env file in the
// working directory and environment variables. A missing config file is not
// an error; defaults apply.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	if err := bindEnvVars(v); err != nil {
		return nil, fmt.Errorf("failed to bind env vars: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := document.DefaultDefaults()

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")

	// Invoice defaults
	v.SetDefault("invoice.currency_symbol", render.DefaultCurrency.Symbol)
	v.SetDefault("invoice.currency_code", render.DefaultCurrency.Code)
	v.SetDefault("invoice.number", d.InvoiceNumber)
	v.SetDefault("invoice.tax_rate", d.TaxRate)
	v.SetDefault("invoice.due_in_days", d.DueInDays)
	v.SetDefault("invoice.notes", "")
	v.SetDefault("invoice.item_placeholder", document.DefaultItemPlaceholder)
	v.SetDefault("invoice.seed_description", d.SeedDescription)
	v.SetDefault("invoice.seed_quantity", d.SeedQuantity)
	v.SetDefault("invoice.seed_rate", d.SeedRate)
	v.SetDefault("invoice.company.name", "")
	v.SetDefault("invoice.company.address", "")
	v.SetDefault("invoice.company.phone", "")
	v.SetDefault("invoice.company.email", "")
	v.SetDefault("invoice.company.website", "")

	// Logo defaults
	v.SetDefault("logo.max_bytes", 5<<20)

	// Export defaults
	v.SetDefault("export.output_dir", "exports")
}

// bindEnvVars binds the short environment names used by deployments
func bindEnvVars(v *viper.Viper) error {
	bindings := map[string]string{
		"server.port":          "PORT",
		"invoice.company.name": "COMPANY_NAME",
		"logger.level":         "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("%s failed %q check (value %v)", e.Namespace(), e.Tag(), e.Value())
		}
		return err
	}
	return nil
}

// Defaults converts the invoice section into session-start defaults
func (c InvoiceConfig) Defaults() document.Defaults {
	return document.Defaults{
		InvoiceNumber: c.Number,
		Company: entity.Company{
			Name:    c.Company.Name,
			Address: c.Company.Address,
			Phone:   c.Company.Phone,
			Email:   c.Company.Email,
			Website: c.Company.Website,
		},
		TaxRate:         c.TaxRate,
		DueInDays:       c.DueInDays,
		Notes:           c.Notes,
		SeedDescription: c.SeedDescription,
		SeedQuantity:    c.SeedQuantity,
		SeedRate:        c.SeedRate,
	}
}

// Currency returns the single currency amounts are labelled with
func (c InvoiceConfig) Currency() render.Currency {
	return render.Currency{Symbol: c.CurrencySymbol, Code: c.CurrencyCode}
}
