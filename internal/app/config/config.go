package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oslobodiboze/RASPOREDnew/internal/app/schedule"
	"github.com/oslobodiboze/RASPOREDnew/internal/app/xmltv"
	"github.com/oslobodiboze/RASPOREDnew/internal/pkg/crypt"
	"github.com/oslobodiboze/RASPOREDnew/internal/pkg/ftpx"
	"github.com/oslobodiboze/RASPOREDnew/internal/pkg/logging"
)

type ChannelConfig struct {
	ID   string `json:"id" yaml:"id"`     // fixed channel id of the feed
	Name string `json:"name" yaml:"name"` // display name
	URL  string `json:"url" yaml:"url"`
}

type DTDConfig struct {
	URL  string `json:"url" yaml:"url"`   // where the grammar is fetched from on first use
	Path string `json:"path" yaml:"path"` // local cache location
}

type FTPConfig struct {
	Host              string `json:"host" yaml:"host"`
	Port              int    `json:"port" yaml:"port"`
	Username          string `json:"username" yaml:"username"`
	Password          string `json:"password" yaml:"password"`                   // 3DES-hex when passwordEncrypted is set
	PasswordEncrypted bool   `json:"passwordEncrypted" yaml:"passwordEncrypted"` // whether password is stored encrypted
	Key               string `json:"key" yaml:"key"`                             // secret used to encrypt the stored password
	RemoteDir         string `json:"remoteDir" yaml:"remoteDir"`
}

type Config struct {
	Timezone string `json:"timezone" yaml:"timezone"` // the single fixed zone all instants live in
	Language string `json:"language" yaml:"language"` // lang attribute of emitted text elements

	Channel        ChannelConfig `json:"channel" yaml:"channel"`
	GeneratorName  string        `json:"generatorName" yaml:"generatorName"`
	SourceInfoURL  string        `json:"sourceInfoURL" yaml:"sourceInfoURL"`
	SourceInfoName string        `json:"sourceInfoName" yaml:"sourceInfoName"`
	SourceDataURL  string        `json:"sourceDataURL" yaml:"sourceDataURL"`

	DTD DTDConfig  `json:"dtd" yaml:"dtd"`
	FTP *FTPConfig `json:"ftp,omitempty" yaml:"ftp,omitempty"`

	// ColumnWidths maps display captions to saved grid column widths.
	ColumnWidths map[string]float64 `json:"columnWidths,omitempty" yaml:"columnWidths,omitempty"`

	Log *logging.LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	Location *time.Location `json:"-" yaml:"-"` // filled by Validate()
}

func (c *Config) Validate() error {
	if c.Channel.ID == "" {
		return errors.New("invalid config: channel.id is required")
	}

	if c.Timezone == "" {
		c.Timezone = "Europe/Zagreb"
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid config: unknown timezone %q: %w", c.Timezone, err)
	}
	c.Location = loc

	if c.Language == "" {
		c.Language = "hr"
	}

	// Unknown caption keys in the saved column widths are advisory only.
	logger := zap.L()
	for caption := range c.ColumnWidths {
		known := false
		for _, want := range schedule.DisplayCaptions {
			if caption == want {
				known = true
				break
			}
		}
		if !known {
			logger.Warn("Unknown column caption in columnWidths. Skip it.", zap.String("caption", caption))
		}
	}

	return nil
}

// ChannelMeta assembles the feed metadata for the XMLTV converter.
func (c *Config) ChannelMeta() xmltv.ChannelMeta {
	return xmltv.ChannelMeta{
		ID:             c.Channel.ID,
		Name:           c.Channel.Name,
		URL:            c.Channel.URL,
		Language:       c.Language,
		GeneratorName:  c.GeneratorName,
		SourceInfoURL:  c.SourceInfoURL,
		SourceInfoName: c.SourceInfoName,
		SourceDataURL:  c.SourceDataURL,
	}
}

// FTPCredentials returns the configured endpoint with the password decrypted
// when it is stored encrypted.
func (c *Config) FTPCredentials() (ftpx.Credentials, error) {
	if c.FTP == nil || c.FTP.Host == "" {
		return ftpx.Credentials{}, errors.New("ftp endpoint is not configured")
	}

	password := c.FTP.Password
	if c.FTP.PasswordEncrypted {
		if c.FTP.Key == "" {
			return ftpx.Credentials{}, errors.New("ftp password is encrypted but no key is configured")
		}
		var err error
		password, err = crypt.NewTripleDESCrypto(c.FTP.Key).ECBDecrypt(password)
		if err != nil {
			return ftpx.Credentials{}, fmt.Errorf("decrypt ftp password: %w", err)
		}
	}

	port := c.FTP.Port
	if port == 0 {
		port = 21
	}

	return ftpx.Credentials{
		Host:      c.FTP.Host,
		Port:      port,
		Username:  c.FTP.Username,
		Password:  password,
		RemoteDir: c.FTP.RemoteDir,
	}, nil
}

func Load(fPath string) (*Config, error) {
	data, err := os.ReadFile(fPath)
	if err != nil {
		return nil, err
	}
	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func CreateDefaultCfg(fPath string) error {
	f, err := os.Create(fPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)

	defaultCfg := Config{
		Timezone: "Europe/Zagreb",
		Language: "hr",
		Channel: ChannelConfig{
			ID:   "diadora-tv",
			Name: "DiadoraTV",
			URL:  "https://www.diadora.tv/",
		},
		GeneratorName:  "DiadoraXMLTV/2.0.0.3",
		SourceInfoURL:  "https://www.diadora.tv/",
		SourceInfoName: "DiadoraTV XMLTV",
		SourceDataURL:  "https://diadora.tv/xmltv/diadora-pregled-programa-xmltv.xml",
		DTD: DTDConfig{
			URL:  "https://raw.githubusercontent.com/XMLTV/xmltv/master/xmltv.dtd",
			Path: "xmltv.dtd",
		},
		Log: &logging.LogConfig{
			Level:      zapcore.InfoLevel,
			FileName:   "raspored.log",
			MaxSize:    10,
			MaxAge:     30,
			MaxBackups: 5,
			IsStdout:   true,
		},
	}

	return encoder.Encode(&defaultCfg)
}
