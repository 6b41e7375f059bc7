package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env          string        `mapstructure:"ENV"`
	Port         string        `mapstructure:"PORT"`
	CORSAllowed  string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel     string        `mapstructure:"LOG_LEVEL"`
	Services     string        `mapstructure:"SERVICES"`
	Counters     string        `mapstructure:"COUNTERS"`
	HistoryLimit int           `mapstructure:"HISTORY_LIMIT"`
	TTSURL       string        `mapstructure:"TTS_URL"`
	TTSLang      string        `mapstructure:"TTS_LANG"`
	TTSTimeout   time.Duration `mapstructure:"TTS_TIMEOUT"`
}

type ServiceDef struct {
	Key   string
	Label string
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVICES", "general=ช่องบริการทั่วไป,appointment=ช่องบริการนัดหมาย,emergency=ช่องบริการฉุกเฉิน,other=ช่องบริการอื่นๆ,contact_staff=ติดต่อเจ้าหน้าที่")
	v.SetDefault("COUNTERS", "1,2,3")
	v.SetDefault("HISTORY_LIMIT", 50)
	v.SetDefault("TTS_LANG", "th")
	v.SetDefault("TTS_TIMEOUT", "10s")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ServiceDefs parses SERVICES as a comma list of key=label pairs. A pair
// without a label uses the key as its label.
func (c Config) ServiceDefs() []ServiceDef {
	var out []ServiceDef
	for _, part := range strings.Split(c.Services, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, label, found := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		label = strings.TrimSpace(label)
		if !found || label == "" {
			label = key
		}
		out = append(out, ServiceDef{Key: key, Label: label})
	}
	return out
}

func (c Config) CounterList() []string {
	var out []string
	for _, part := range strings.Split(c.Counters, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
