package config

import "github.com/ziadkadry99/folio/internal/logger"

// Config is the top-level folio configuration, corresponding to .folio.yml.
type Config struct {
	SiteDir    string        `yaml:"site_dir" koanf:"site_dir"`
	DataSource string        `yaml:"data_source" koanf:"data_source"`
	OutputDir  string        `yaml:"output_dir" koanf:"output_dir"`
	Static     []string      `yaml:"static" koanf:"static"`
	Exclude    []string      `yaml:"exclude" koanf:"exclude"`
	Markdown   bool          `yaml:"markdown" koanf:"markdown"`
	Reveal     RevealConfig  `yaml:"reveal" koanf:"reveal"`
	Pages      PagesConfig   `yaml:"pages" koanf:"pages"`
	Server     ServerConfig  `yaml:"server" koanf:"server"`
	Log        logger.Config `yaml:"log" koanf:"log"`
}

// RevealConfig controls the scroll reveal. Observer=false targets clients
// without IntersectionObserver: every element is revealed at build time.
type RevealConfig struct {
	Observer  bool    `yaml:"observer" koanf:"observer"`
	Threshold float64 `yaml:"threshold" koanf:"threshold"`
	Script    string  `yaml:"script" koanf:"script"`
}

// PagesConfig lists the shell file and data documents of each page.
type PagesConfig struct {
	Home     HomePage     `yaml:"home" koanf:"home"`
	Notes    DocumentPage `yaml:"notes" koanf:"notes"`
	Research DocumentPage `yaml:"research" koanf:"research"`
}

// HomePage is the home page: one shell, six documents.
type HomePage struct {
	Shell    string `yaml:"shell" koanf:"shell"`
	Hero     string `yaml:"hero" koanf:"hero"`
	About    string `yaml:"about" koanf:"about"`
	News     string `yaml:"news" koanf:"news"`
	Doing    string `yaml:"doing" koanf:"doing"`
	Research string `yaml:"research" koanf:"research"`
	Contact  string `yaml:"contact" koanf:"contact"`
}

// DocumentPage is a page backed by a single document.
type DocumentPage struct {
	Shell string `yaml:"shell" koanf:"shell"`
	Data  string `yaml:"data" koanf:"data"`
}

// ServerConfig holds `folio serve` settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Watch           bool `yaml:"watch" koanf:"watch"`
}
