package domain

// Environment is the snapshot of endpoints and secrets resolved at startup.
// Empty secret fields mean "not configured".
type Environment struct {
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	N8NWebhookBaseURL string
	OpenAIAPIKey      string
	TelegramBotToken  string
}

func (e Environment) HasDBPassword() bool { return e.DBPassword != "" }

func (e Environment) HasOpenAIKey() bool { return e.OpenAIAPIKey != "" }

func (e Environment) HasTelegramToken() bool { return e.TelegramBotToken != "" }

// Redacted returns a printable map with secrets masked.
func (e Environment) Redacted() map[string]string {
	return map[string]string{
		EnvDBHost:            e.DBHost,
		EnvDBPort:            e.DBPort,
		EnvDBName:            e.DBName,
		EnvDBUser:            e.DBUser,
		EnvDBPassword:        mask(e.DBPassword),
		EnvDBSSLMode:         e.DBSSLMode,
		EnvN8NWebhookBaseURL: e.N8NWebhookBaseURL,
		EnvOpenAIAPIKey:      mask(e.OpenAIAPIKey),
		EnvTelegramBotToken:  mask(e.TelegramBotToken),
	}
}

func mask(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	return "********"
}

// Capabilities records which optional collaborators the host provides.
type Capabilities struct {
	Docker    bool
	Resources bool
	DotEnv    bool
}
