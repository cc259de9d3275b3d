package sdk

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// BundleExt is the directory suffix shared by all SDK bundles.
const BundleExt = ".sdk"

// trailingVersion matches a trailing <major> or <major>.<minor> at the very
// end of the name, e.g. "iPhoneOS16.2" → 16.2, "MacOSX14" → 14.0.
var trailingVersion = regexp.MustCompile(`(\d+)(?:\.(\d+))?$`)

// Version is a comparable version key extracted from an SDK bundle name.
// The zero value is the sentinel: it sorts below every parsed version, so a
// corrupt or oddly named bundle still lands deterministically at the bottom
// of the ranking instead of aborting the run. A real "Foo0" bundle therefore
// still outranks an unparsable name.
type Version struct {
	Major int
	Minor int
	known bool
}

// Known reports whether the version was actually parsed from the name.
func (v Version) Known() bool { return v.known }

// String renders the version for display and audit entries.
func (v Version) String() string {
	if !v.known {
		return "unknown"
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns -1, 0, or 1 ordering v against o. The sentinel compares
// below every known version; known versions compare component-wise.
func (v Version) Compare(o Version) int {
	if v.known != o.known {
		if v.known {
			return 1
		}
		return -1
	}
	if v.Major != o.Major {
		if v.Major > o.Major {
			return 1
		}
		return -1
	}
	if v.Minor != o.Minor {
		if v.Minor > o.Minor {
			return 1
		}
		return -1
	}
	return 0
}

// ParseVersion extracts the trailing version from an SDK bundle name.
// The bundle extension is stripped first if present. Unparsable names yield
// the sentinel, never an error.
func ParseVersion(rawName string) Version {
	name := strings.TrimSuffix(rawName, BundleExt)

	m := trailingVersion.FindStringSubmatch(name)
	if m == nil {
		return Version{}
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		// Digit run too long for an int — treat as unparsable.
		return Version{}
	}
	minor := 0
	if m[2] != "" {
		minor, err = strconv.Atoi(m[2])
		if err != nil {
			return Version{}
		}
	}

	return Version{Major: major, Minor: minor, known: true}
}
