package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"github.com/MKhiriev/go-dataset-keeper/internal/client"
	"github.com/MKhiriev/go-dataset-keeper/internal/crypto"
	"github.com/MKhiriev/go-dataset-keeper/internal/logger"
	"github.com/MKhiriev/go-dataset-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	var (
		serverAddress  string
		operation      string
		keyID          string
		plaintext      string
		masterPassword string
		iterations     int
		requestTimeout time.Duration
	)

	flag.StringVar(&serverAddress, "s", "http://localhost:8080", "dataset keeper server address")
	flag.StringVar(&operation, "op", "", "operation to perform: create | read | update | delete")
	flag.StringVar(&keyID, "key", "", "dataset key (required for read, update, delete)")
	flag.StringVar(&plaintext, "payload", "", "plaintext payload to seal and store (create, update)")
	flag.StringVar(&masterPassword, "password", "", "master password used to seal and open payloads")
	flag.IntVar(&iterations, "iterations", 100000, "PBKDF2 iteration count")
	flag.DurationVar(&requestTimeout, "request-timeout", 15*time.Second, "request timeout")
	flag.Parse()

	log := logger.NewClientLogger("dataset-keeper-client")

	datasets, err := client.NewHTTPDatasetClient(client.Config{
		BaseURL:        serverAddress,
		RequestTimeout: requestTimeout,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create dataset client")
	}

	keychain := crypto.NewKeyChainService(iterations)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch operation {
	case "create":
		err = runCreate(ctx, datasets, keychain, plaintext, masterPassword)
	case "read":
		err = runRead(ctx, datasets, keychain, keyID, masterPassword)
	case "update":
		err = runUpdate(ctx, datasets, keychain, keyID, plaintext, masterPassword)
	case "delete":
		err = runDelete(ctx, datasets, keyID)
	case "":
		err = fmt.Errorf("missing -op flag: expected create, read, update, or delete")
	default:
		err = fmt.Errorf("unknown operation %q: expected create, read, update, or delete", operation)
	}

	if err != nil {
		log.Fatal().Err(err).Str("operation", operation).Msg("operation failed")
	}
}

func runCreate(ctx context.Context, datasets client.DatasetClient, keychain crypto.KeyChainService, plaintext, password string) error {
	input, err := sealedInput(keychain, plaintext, password)
	if err != nil {
		return err
	}

	created, err := datasets.Create(ctx, input)
	if err != nil {
		return err
	}

	fmt.Printf("Created dataset %s (version %d, updated %s)\n",
		created.KeyID, created.Version, created.UpdatedAt.Format(time.RFC3339))
	return nil
}

func runRead(ctx context.Context, datasets client.DatasetClient, keychain crypto.KeyChainService, keyID, password string) error {
	if keyID == "" {
		return fmt.Errorf("missing -key flag")
	}

	dataset, err := datasets.Read(ctx, keyID)
	if err != nil {
		return err
	}

	fmt.Printf("Dataset %s (version %d, updated %s)\n",
		dataset.KeyID, dataset.Version, dataset.UpdatedAt.Format(time.RFC3339))

	// without a password (or meta) the payload stays opaque
	if password == "" || len(dataset.Meta) == 0 {
		fmt.Printf("Payload (sealed): %s\n", dataset.Payload)
		return nil
	}

	var params models.CryptoParams
	if err := json.Unmarshal(dataset.Meta, &params); err != nil {
		return fmt.Errorf("decode meta: %w", err)
	}

	opened, err := keychain.Open(dataset.Payload, password, params)
	if err != nil {
		return fmt.Errorf("open payload: %w", err)
	}

	fmt.Printf("Payload: %s\n", opened)
	return nil
}

func runUpdate(ctx context.Context, datasets client.DatasetClient, keychain crypto.KeyChainService, keyID, plaintext, password string) error {
	if keyID == "" {
		return fmt.Errorf("missing -key flag")
	}

	input, err := sealedInput(keychain, plaintext, password)
	if err != nil {
		return err
	}

	updated, err := datasets.Update(ctx, keyID, input)
	if err != nil {
		return err
	}

	fmt.Printf("Updated dataset %s (version %d, updated %s)\n",
		updated.KeyID, updated.Version, updated.UpdatedAt.Format(time.RFC3339))
	return nil
}

func runDelete(ctx context.Context, datasets client.DatasetClient, keyID string) error {
	if keyID == "" {
		return fmt.Errorf("missing -key flag")
	}

	deleted, err := datasets.Delete(ctx, keyID)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", deleted.Message, deleted.KeyID)
	return nil
}

// sealedInput seals plaintext under password and packs the ciphertext and
// derivation params into a write request. With an empty password the payload
// is sent as-is with no meta: the server treats it as opaque either way.
func sealedInput(keychain crypto.KeyChainService, plaintext, password string) (models.DatasetInput, error) {
	if password == "" {
		return models.DatasetInput{Payload: &plaintext}, nil
	}

	ciphertext, params, err := keychain.Seal([]byte(plaintext), password)
	if err != nil {
		return models.DatasetInput{}, fmt.Errorf("seal payload: %w", err)
	}

	meta, err := json.Marshal(params)
	if err != nil {
		return models.DatasetInput{}, fmt.Errorf("encode meta: %w", err)
	}

	return models.DatasetInput{Payload: &ciphertext, Meta: meta}, nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
