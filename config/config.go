package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds every runtime setting. It is built once at startup and
// handed to the services that need it; nothing writes to it afterwards.
type Config struct {
	Port string

	// Hosted generation provider. An empty key disables generation
	// without failing startup.
	OpenAIKey   string
	OpenAIModel string

	// Local generation via Ollama, opt-in through OLLAMA_URL.
	OllamaURL   string
	OllamaModel string

	AllowOrigins []string

	// Behavior flags, overridable via env without changing code.
	AlwaysGenerate      bool // if true, call the generation providers
	IncludeContext      bool // if true, fold retrieved context into the prompt
	ExtractFallback     bool // if true, shape answers from retrieved docs when generation is empty
	ShowEmergencyNotice bool // if true, append the emergency notice when keywords match

	// Sampling parameters passed through to the providers.
	MaxTokens   int
	Temperature float32
	TopP        float32

	// Directory of documents indexed into the vector collection.
	DataPath string

	DiscordToken  string
	DiscordPrefix string
}

// defaultOrigins covers the local frontend dev servers.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:5500",
	"http://127.0.0.1:5500",
	"http://localhost:5501",
	"http://127.0.0.1:5501",
}

// Load reads the configuration from the environment. Call godotenv
// first if a .env file should be honored.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		OpenAIKey:   strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		OllamaURL:   strings.TrimSpace(os.Getenv("OLLAMA_URL")),
		OllamaModel: getEnv("OLLAMA_MODEL", "tinyllama:latest"),

		AllowOrigins: getOrigins("ALLOW_ORIGINS"),

		AlwaysGenerate:      getBool("ALWAYS_GENERATE", true),
		IncludeContext:      getBool("USE_CONTEXT", false),
		ExtractFallback:     getBool("EXTRACT_FALLBACK", false),
		ShowEmergencyNotice: getBool("SHOW_EMERGENCY_NOTICE", true),

		MaxTokens:   getInt("MAX_TOKENS", 2048),
		Temperature: getFloat("TEMPERATURE", 0.9),
		TopP:        getFloat("TOP_P", 0.95),

		DataPath: getEnv("DATA_PATH", "data"),

		DiscordToken:  strings.TrimSpace(os.Getenv("DISCORD_BOT_TOKEN")),
		DiscordPrefix: os.Getenv("DISCORD_COMMAND_PREFIX"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getBool treats "1" as true and any other non-empty value as false,
// matching the flag convention of the deployment environment.
func getBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v == "1"
}

func getInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float32) float32 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return fallback
	}
	return float32(f)
}

func getOrigins(key string) []string {
	var origins []string
	for _, o := range strings.Split(os.Getenv(key), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return defaultOrigins
	}
	return origins
}
