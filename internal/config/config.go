// Package config loads generator settings from an optional YAML file and
// REPORTGEN_* environment variables.
package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
	"github.com/mroizo75/hmsnova-reportgen/internal/images"
	"github.com/mroizo75/hmsnova-reportgen/internal/logging"
	"github.com/mroizo75/hmsnova-reportgen/internal/res"
	"github.com/mroizo75/hmsnova-reportgen/internal/style"
	"github.com/mroizo75/hmsnova-reportgen/pkg/api"
)

// EnvPrefix is the prefix of environment overrides, e.g. REPORTGEN_PAGE_SIZE
const EnvPrefix = "REPORTGEN"

type Config struct {
	Language string         `mapstructure:"language"`
	Debug    bool           `mapstructure:"debug"`
	Page     PageConfig     `mapstructure:"page"`
	Document DocumentConfig `mapstructure:"document"`
	Images   ImageConfig    `mapstructure:"images"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Log      logging.Config `mapstructure:"log"`
}

type PageConfig struct {
	Size        string  `mapstructure:"size"`
	Orientation string  `mapstructure:"orientation"`
	MarginTop   float64 `mapstructure:"margin_top"`
	MarginRight float64 `mapstructure:"margin_right"`
	MarginBot   float64 `mapstructure:"margin_bottom"`
	MarginLeft  float64 `mapstructure:"margin_left"`
}

type DocumentConfig struct {
	Author   string `mapstructure:"author"`
	Creator  string `mapstructure:"creator"`
	Keywords string `mapstructure:"keywords"`
}

type ImageConfig struct {
	BaseURL     string            `mapstructure:"base_url"`
	SearchPaths []string          `mapstructure:"search_paths"`
	Headers     map[string]string `mapstructure:"headers"`
	Confined    bool              `mapstructure:"confined"`
	Timeout     time.Duration     `mapstructure:"timeout"`
	Concurrency int               `mapstructure:"concurrency"`
}

// ThemeConfig overrides theme colours; values are hex or rgb()
type ThemeConfig struct {
	Primary     string `mapstructure:"primary"`
	StatusOK    string `mapstructure:"status_ok"`
	StatusIssue string `mapstructure:"status_issue"`
	StatusWarn  string `mapstructure:"status_warn"`
}

func setDefaults(v *viper.Viper) {
	d := api.DefaultOptions()
	v.SetDefault("language", "en")
	v.SetDefault("debug", false)
	v.SetDefault("page.size", "a4")
	v.SetDefault("page.orientation", string(api.PageOrientationPortrait))
	v.SetDefault("page.margin_top", d.MarginTop)
	v.SetDefault("page.margin_right", d.MarginRight)
	v.SetDefault("page.margin_bottom", d.MarginBottom)
	v.SetDefault("page.margin_left", d.MarginLeft)
	v.SetDefault("document.author", "")
	v.SetDefault("document.creator", d.Creator)
	v.SetDefault("document.keywords", "")
	v.SetDefault("images.base_url", "")
	v.SetDefault("images.search_paths", []string{})
	v.SetDefault("images.headers", map[string]string{})
	v.SetDefault("images.confined", false)
	v.SetDefault("images.timeout", d.ImageTimeout)
	v.SetDefault("images.concurrency", d.ImageConcurrency)
	v.SetDefault("theme.primary", "")
	v.SetDefault("theme.status_ok", "")
	v.SetDefault("theme.status_issue", "")
	v.SetDefault("theme.status_warn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads path when it is not empty and applies environment overrides
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Options converts the configuration into generator options. Images are
// fetched with a resource loader rooted at Images.BaseURL, or at baseDir
// when no base URL is configured.
func (c *Config) Options(baseDir string) ([]api.Option, error) {
	var opts []api.Option

	switch strings.ToLower(c.Page.Size) {
	case "", "a4":
		opts = append(opts, api.WithPageSizeA4())
	case "letter":
		opts = append(opts, api.WithPageSizeLetter())
	default:
		return nil, fmt.Errorf("unknown page size %q", c.Page.Size)
	}

	switch api.PageOrientation(strings.ToLower(c.Page.Orientation)) {
	case "", api.PageOrientationPortrait:
	case api.PageOrientationLandscape:
		opts = append(opts, api.WithPageOrientation(api.PageOrientationLandscape))
	default:
		return nil, fmt.Errorf("unknown page orientation %q", c.Page.Orientation)
	}
	opts = append(opts, api.WithMargins(c.Page.MarginTop, c.Page.MarginRight, c.Page.MarginBot, c.Page.MarginLeft))

	switch strings.ToLower(c.Language) {
	case "", "en":
		opts = append(opts, api.WithLabels(api.DefaultLabels()))
	case "no", "nb", "nn":
		opts = append(opts, api.WithLabels(api.NorwegianLabels()))
	default:
		return nil, fmt.Errorf("unsupported language %q", c.Language)
	}

	theme, err := c.Theme.apply(style.DefaultTheme())
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		api.WithTheme(theme),
		api.WithDebug(c.Debug),
		api.WithAuthor(c.Document.Author),
		api.WithKeywords(c.Document.Keywords),
		api.WithImageTimeout(c.Images.Timeout),
		api.WithImageConcurrency(c.Images.Concurrency),
	)
	if c.Document.Creator != "" {
		opts = append(opts, api.WithCreator(c.Document.Creator))
	}

	base := c.Images.BaseURL
	if base == "" {
		base = baseDir
	}
	loader := res.NewLoader(base)
	loader.Confined = c.Images.Confined
	if c.Images.Timeout > 0 {
		loader.SetHTTPClient(&http.Client{Timeout: c.Images.Timeout})
	}
	for k, v := range c.Images.Headers {
		loader.Header.Set(k, v)
	}
	for _, p := range c.Images.SearchPaths {
		loader.AddSearchPath(p)
	}
	opts = append(opts, api.WithFetcher(images.Fetcher(loader)))

	return opts, nil
}

func (t ThemeConfig) apply(th style.Theme) (style.Theme, error) {
	overrides := []struct {
		name  string
		value string
		dst   *draw.Color
	}{
		{"primary", t.Primary, &th.Primary},
		{"status_ok", t.StatusOK, &th.StatusOK},
		{"status_issue", t.StatusIssue, &th.StatusIssue},
		{"status_warn", t.StatusWarn, &th.StatusWarn},
	}
	for _, o := range overrides {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		c, ok := style.ParseColor(o.value)
		if !ok {
			return th, fmt.Errorf("invalid theme colour %s: %q", o.name, o.value)
		}
		*o.dst = c
	}
	if t.Primary != "" {
		th.HeaderFill = th.Primary
	}
	return th, nil
}
