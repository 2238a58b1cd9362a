package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN (postgres://..., a sqlite file path, or "memory")
//	-t dataset table name
//	-meta-validation meta validation mode ("opaque" or "strict")
//	-cipher-name cipher name required by strict meta validation
//	-kdf-name KDF name required by strict meta validation
//	-min-kdf-iterations minimum KDF iteration count for strict meta validation
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var tableName string
	var metaValidation string
	var cipherName string
	var kdfName string
	var minKDFIterations int
	var requestTimeout time.Duration
	var jsonConfigPath string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&tableName, "t", "", "Dataset table name")
	flag.StringVar(&metaValidation, "meta-validation", "", "Meta validation mode (opaque|strict)")
	flag.StringVar(&cipherName, "cipher-name", "", "Cipher name required in strict mode")
	flag.StringVar(&kdfName, "kdf-name", "", "KDF name required in strict mode")
	flag.IntVar(&minKDFIterations, "min-kdf-iterations", 0, "Minimum KDF iterations in strict mode")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			MetaValidation:   metaValidation,
			CipherName:       cipherName,
			KDFName:          kdfName,
			MinKDFIterations: minKDFIterations,
		},
		Storage: Storage{
			DB: DB{
				DSN:   databaseDSN,
				Table: tableName,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string so the merge
// step can fall back to other sources.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
