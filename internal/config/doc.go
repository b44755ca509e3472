// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package config manages JSON configuration loading for the compiler. It
// holds a max-error cutoff, an unknown-key policy, a lexer round-trip flag,
// and compile-result cache settings; of these, only the cache settings are
// read outside this package (by cmd/abcc).
// Configuration is loaded from an abcc.json file with sensible defaults.
package config
