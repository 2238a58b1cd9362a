package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and a
// string-friendly Duration type, so an operator-written config file can use
// values like "30s" for timeouts.
type StructuredJSONConfig struct {
	App struct {
		MetaValidation   string `json:"meta_validation"`
		CipherName       string `json:"cipher_name"`
		KDFName          string `json:"kdf_name"`
		MinKDFIterations int    `json:"min_kdf_iterations"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN   string `json:"dsn"`
			Table string `json:"table"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			MetaValidation:   jsonCfg.App.MetaValidation,
			CipherName:       jsonCfg.App.CipherName,
			KDFName:          jsonCfg.App.KDFName,
			MinKDFIterations: jsonCfg.App.MinKDFIterations,
		},
		Storage: Storage{
			DB: DB{
				DSN:   jsonCfg.Storage.DB.DSN,
				Table: jsonCfg.Storage.DB.Table,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return errors.New("invalid duration")
	}
}
