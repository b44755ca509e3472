// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package cerrs defines constant error types using a custom Error string type.
// It holds the cache store's sentinel errors (a cache path that is a
// directory, a failed schema creation); other packages, such as
// internal/config, declare their own sentinels with the same Error type.
// The Error type supports comparison via errors.Is().
package cerrs
