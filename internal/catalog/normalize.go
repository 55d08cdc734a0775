package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// versionShape accepts a numeric core with optional shorthand (X or X.Y) and
// an optional prerelease/build suffix.
var versionShape = regexp.MustCompile(`^(\d+)(?:\.(\d+))?(?:\.(\d+))?([-+][0-9A-Za-z.+-]+)?$`)

// Normalize cleans a raw version-like string into canonical X.Y.Z[-pre] form:
// surrounding whitespace and leading range/"v" markers are stripped, and
// shorthand X or X.Y is expanded with zero components. Returns false when the
// input cannot be interpreted as a version at all.
func Normalize(raw string) (string, bool) {
	t := trimPrefixSet(strings.TrimSpace(raw), "^~=vV")
	m := versionShape.FindStringSubmatch(t)
	if m == nil {
		return "", false
	}
	minor, patch := m[2], m[3]
	if minor == "" {
		minor = "0"
	}
	if patch == "" {
		patch = "0"
	}
	return m[1] + "." + minor + "." + patch + m[4], true
}

// trimPrefixSet removes any leading run of characters drawn from set.
func trimPrefixSet(s, set string) string {
	for len(s) > 0 && strings.IndexByte(set, s[0]) >= 0 {
		s = s[1:]
	}
	return s
}

// Compare orders two version tags by their dot-separated numeric segments.
// A tag with a prerelease suffix sorts before the bare release with the same
// core; two prereleases on the same core compare lexically. This is a shape
// comparison, not full semver precedence.
func Compare(a, b string) int {
	aCore, aPre := splitPrerelease(a)
	bCore, bPre := splitPrerelease(b)

	as := strings.Split(aCore, ".")
	bs := strings.Split(bCore, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		av, bv := 0, 0
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}

	switch {
	case aPre == bPre:
		return 0
	case aPre == "":
		return 1
	case bPre == "":
		return -1
	case aPre < bPre:
		return -1
	default:
		return 1
	}
}

func splitPrerelease(v string) (core, pre string) {
	if i := strings.IndexByte(v, '-'); i >= 0 {
		return v[:i], v[i+1:]
	}
	return v, ""
}

// SortDescending orders records newest-first so the first entry is the most
// recent release. The sort is stable to keep equal tags in input order.
func SortDescending(records []VersionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return Compare(records[i].Version, records[j].Version) > 0
	})
}
