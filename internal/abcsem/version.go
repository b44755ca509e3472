// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package abcsem

import (
	"strconv"
	"strings"

	"github.com/maloquacious/semver"
)

// parseAbcVersion turns an "abc-version" annotation value (e.g. "2.1",
// "2.1.2") into a semver.Version. Non-numeric or partial strings fall back
// to whatever components could be parsed, leaving the rest zero — the
// compiler records what it was told rather than validating the ABC
// standard's own version numbering.
func parseAbcVersion(raw string) semver.Version {
	raw = strings.TrimSpace(raw)
	parts := strings.SplitN(raw, ".", 3)
	v := semver.Version{}
	if len(parts) > 0 {
		if n, err := strconv.Atoi(parts[0]); err == nil {
			v.Major = n
		}
	}
	if len(parts) > 1 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			v.Minor = n
		}
	}
	if len(parts) > 2 {
		if n, err := strconv.Atoi(parts[2]); err == nil {
			v.Patch = n
		}
	}
	return v
}
