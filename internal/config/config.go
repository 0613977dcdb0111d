package config

type Config struct {
	ServerConfig
	DBConfig
	BillingConfig
	AgentConfig
	GoogleSheetConfig
	TelegramConfig
}

type ServerConfig struct {
	Addr string `envconfig:"HTTP_ADDR" default:":8080"`
}

type DBConfig struct {
	User   string `envconfig:"DBUSER" required:"true" masked:"true"`
	Pass   string `envconfig:"DBPASS" required:"true" masked:"true"`
	Host   string `envconfig:"DBHOST" required:"true" masked:"true"`
	DBName string `envconfig:"DBNAME" required:"true" masked:"true"`

	Port    string `envconfig:"DBPORT" required:"true" masked:"true"`
	SSLMode string `envconfig:"DBSSLMODE" required:"true" masked:"true"`
}

// BillingConfig holds the payment provider credentials and the price ids
// the checkout endpoint can sell.
type BillingConfig struct {
	APIBase       string `envconfig:"BILLING_API_BASE" default:"https://api.pagamentos.dev"`
	SecretKey     string `envconfig:"BILLING_SECRET_KEY" required:"true" masked:"true"`
	WebhookSecret string `envconfig:"BILLING_WEBHOOK_SECRET" required:"true" masked:"true"`

	PriceMensal string `envconfig:"BILLING_PRICE_MENSAL" required:"true"`
	PriceAnual  string `envconfig:"BILLING_PRICE_ANUAL" required:"true"`
	PriceSetup  string `envconfig:"BILLING_PRICE_SETUP" required:"true"`
	TrialDays   int    `envconfig:"BILLING_TRIAL_DAYS" default:"7"`
	SuccessURL  string `envconfig:"BILLING_SUCCESS_URL" required:"true"`
	CancelURL   string `envconfig:"BILLING_CANCEL_URL" required:"true"`
}

// AgentConfig points at the external automation webhook that provisions
// WhatsApp agents.
type AgentConfig struct {
	WebhookURL string `envconfig:"AGENT_WEBHOOK_URL" required:"true" masked:"true"`
}

// GoogleSheetConfig configures the CRM lead export. When SheetID is empty
// the export is disabled.
type GoogleSheetConfig struct {
	SheetID           string `envconfig:"SHEET_ID" required:"false" masked:"true"`
	LeadListID        string `envconfig:"LEAD_LIST_ID" required:"false" masked:"true"`
	CredentialsBase64 string `envconfig:"CREDENTIALS_BASE64" required:"false" masked:"true"`
	ColumnOrder       string `envconfig:"SHEET_COLUMN_ORDER" required:"false"`
	PauseMs           int    `envconfig:"SHEET_PAUSE_MS" required:"false"`
}

// TelegramConfig configures new-lead alerts. When BotToken is empty alerts
// are disabled.
type TelegramConfig struct {
	BotToken string `envconfig:"BOT_TOKEN" required:"false" masked:"true"`
}
