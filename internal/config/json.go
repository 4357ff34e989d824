package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JSONSettings is the on-disk shape of the optional JSON configuration file.
type JSONSettings struct {
	SecretKey          string   `json:"secret_key"`
	Debug              bool     `json:"debug"`
	AllowedHosts       []string `json:"allowed_hosts"`
	CSRFTrustedOrigins []string `json:"csrf_trusted_origins"`
	TimeZone           string   `json:"time_zone"`
	Middleware         []string `json:"middleware,omitempty"`
	Admins             string   `json:"admins"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Database struct {
		Engine   string `json:"engine"`
		Name     string `json:"name"`
		User     string `json:"user"`
		Password string `json:"password"`
		Host     string `json:"host"`
		Port     string `json:"port"`
	} `json:"database,omitempty"`

	Email struct {
		Backend      string   `json:"backend"`
		Host         string   `json:"host"`
		Port         int      `json:"port"`
		HostUser     string   `json:"host_user"`
		HostPassword string   `json:"host_password"`
		UseTLS       bool     `json:"use_tls"`
		UseSSL       bool     `json:"use_ssl"`
		Timeout      Duration `json:"timeout"`
		DefaultFrom  string   `json:"default_from"`
		ServerEmail  string   `json:"server_email"`
		FilePath     string   `json:"file_path"`
	} `json:"email,omitempty"`

	Logging struct {
		Level string `json:"level"`
	} `json:"logging,omitempty"`
}

func parseJSON(jsonFilePath string) (*Settings, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg JSONSettings
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Settings{
		SecretKey:          jsonCfg.SecretKey,
		Debug:              jsonCfg.Debug,
		AllowedHosts:       jsonCfg.AllowedHosts,
		CSRFTrustedOrigins: jsonCfg.CSRFTrustedOrigins,
		Middleware:         jsonCfg.Middleware,
		AdminsRaw:          jsonCfg.Admins,
		I18N: I18N{
			TimeZone: jsonCfg.TimeZone,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Database: Database{
			Engine:   jsonCfg.Database.Engine,
			Name:     jsonCfg.Database.Name,
			User:     jsonCfg.Database.User,
			Password: jsonCfg.Database.Password,
			Host:     jsonCfg.Database.Host,
			Port:     jsonCfg.Database.Port,
		},
		Email: Email{
			Backend:      jsonCfg.Email.Backend,
			Host:         jsonCfg.Email.Host,
			Port:         jsonCfg.Email.Port,
			HostUser:     jsonCfg.Email.HostUser,
			HostPassword: jsonCfg.Email.HostPassword,
			UseTLS:       jsonCfg.Email.UseTLS,
			UseSSL:       jsonCfg.Email.UseSSL,
			Timeout:      time.Duration(jsonCfg.Email.Timeout),
			DefaultFrom:  jsonCfg.Email.DefaultFrom,
			ServerEmail:  jsonCfg.Email.ServerEmail,
			FilePath:     jsonCfg.Email.FilePath,
		},
		Logging: Logging{
			Level: jsonCfg.Logging.Level,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
