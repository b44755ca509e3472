// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"

	"github.com/abctools/abcc/cerrs"
)

// Config is the compiler-wide configuration, loaded from an abcc.json file
// alongside command-line flags.
type Config struct {
	MaxErrors  int          `json:"MaxErrors,omitempty"`
	Directives Directives_t `json:"Directives"`
	Lexer      Lexer_t      `json:"Lexer"`
	Cache      Cache_t      `json:"Cache"`
}

type Directives_t struct {
	UnknownKeyPolicy string `json:"UnknownKeyPolicy,omitempty"` // error | warn | ignore
}

type Lexer_t struct {
	CheckRoundTrip bool `json:"CheckRoundTrip,omitempty"`
}

type Cache_t struct {
	Enabled       bool   `json:"Enabled,omitempty"`
	Path          string `json:"Path,omitempty"`
	MaxEntries    int    `json:"MaxEntries,omitempty"`
	MaxSizeBytes  int64  `json:"MaxSizeBytes,omitempty"`
}

const (
	ErrIsDirectory = cerrs.Error("is directory")
	ErrIsNotAFile  = cerrs.Error("is not a file")
)

// Default returns the configuration used when no abcc.json is present.
func Default() *Config {
	return &Config{
		MaxErrors: 200,
		Directives: Directives_t{
			UnknownKeyPolicy: "error",
		},
		Lexer: Lexer_t{
			CheckRoundTrip: true,
		},
		Cache: Cache_t{
			Enabled:      true,
			Path:         "abcc-cache.db",
			MaxEntries:   4096,
			MaxSizeBytes: 64 << 20,
		},
	}
}

// Load reads name as JSON and overlays any non-zero fields onto the default
// configuration. A missing, empty, or unparseable file is not an error; it
// simply yields the default configuration.
func Load(name string, debug bool) (*Config, error) {
	if debug {
		log.Printf("[config] %q: loading configuration...\n", name)
	}
	cfg := Default()
	if sb, err := os.Stat(name); errors.Is(err, os.ErrNotExist) || os.IsNotExist(err) {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if sb.Mode().IsDir() {
		return cfg, ErrIsDirectory
	} else if !sb.Mode().IsRegular() {
		return cfg, ErrIsNotAFile
	}

	var tmp Config
	if data, err := os.ReadFile(name); err != nil {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if err = json.Unmarshal(data, &tmp); err != nil {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if debug {
		if nice, err := json.MarshalIndent(tmp, "", "  "); err == nil {
			log.Printf("[config] %s\n", nice)
		} else {
			log.Printf("[config] %q: loaded %s\n", name, string(data))
		}
	}

	switch tmp.Directives.UnknownKeyPolicy {
	case "", "error", "warn", "ignore":
		// valid
	default:
		return nil, fmt.Errorf("directives: invalid unknown key policy %q", tmp.Directives.UnknownKeyPolicy)
	}

	copyNonZeroFields(&tmp, cfg)

	return cfg, nil
}

// copyNonZeroFields recursively copies non-zero fields from src to dst using reflection
func copyNonZeroFields(src, dst interface{}) {
	srcVal := reflect.ValueOf(src)
	dstVal := reflect.ValueOf(dst)

	// Dereference pointers
	if srcVal.Kind() == reflect.Ptr {
		srcVal = srcVal.Elem()
	}
	if dstVal.Kind() == reflect.Ptr {
		dstVal = dstVal.Elem()
	}

	// Only work with structs
	if srcVal.Kind() != reflect.Struct || dstVal.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < srcVal.NumField(); i++ {
		srcField := srcVal.Field(i)
		dstField := dstVal.Field(i)

		// Skip unexported fields
		if !srcField.CanInterface() || !dstField.CanSet() {
			continue
		}

		// Check if source field is zero value
		if srcField.IsZero() {
			continue
		}

		// Handle different field types
		switch srcField.Kind() {
		case reflect.Struct:
			// Recursively copy struct fields
			copyNonZeroFields(srcField.Interface(), dstField.Addr().Interface())
		default:
			// Copy primitive types and other values
			dstField.Set(srcField)
		}
	}
}
