// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"regexp"
)

// Defaults applied by validate when a field is left empty by every source.
const (
	defaultTable            = "datasets"
	defaultMetaValidation   = MetaOpaque
	defaultCipherName       = "AES-GCM"
	defaultKDFName          = "PBKDF2"
	defaultMinKDFIterations = 100000
)

// tableNameRe constrains the configurable table name to a plain SQL
// identifier, since the name is interpolated into query text.
var tableNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validate normalizes and checks the final merged [StructuredConfig] before
// it is used at startup. Empty fields receive their documented defaults;
// fields that are present but invalid produce a descriptive error.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.Table == "" {
		cfg.Storage.DB.Table = defaultTable
	}
	if !tableNameRe.MatchString(cfg.Storage.DB.Table) {
		return fmt.Errorf("%w: table name %q is not a valid identifier", ErrInvalidStorageConfigs, cfg.Storage.DB.Table)
	}

	if cfg.App.MetaValidation == "" {
		cfg.App.MetaValidation = defaultMetaValidation
	}
	if cfg.App.MetaValidation != MetaOpaque && cfg.App.MetaValidation != MetaStrict {
		return fmt.Errorf("%w: unknown meta validation mode %q", ErrInvalidAppConfigs, cfg.App.MetaValidation)
	}

	if cfg.App.CipherName == "" {
		cfg.App.CipherName = defaultCipherName
	}
	if cfg.App.KDFName == "" {
		cfg.App.KDFName = defaultKDFName
	}
	if cfg.App.MinKDFIterations <= 0 {
		cfg.App.MinKDFIterations = defaultMinKDFIterations
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: no HTTP address provided", ErrInvalidServerConfigs)
	}

	return nil
}
