package catalog

import "strings"

// Channel is the stability classification derived from markers in the
// version tag.
type Channel string

const (
	ChannelStable      Channel = "stable"
	ChannelBeta        Channel = "beta"
	ChannelNightly     Channel = "nightly"
	ChannelUnsupported Channel = "unsupported"
)

// Classify maps a record to its release channel by substring probes on the
// version tag. The probe order is fixed: beta, then nightly, then
// unsupported; first match wins. Any tag without a marker is assumed stable.
func Classify(rec VersionRecord) Channel {
	switch v := rec.Version; {
	case strings.Contains(v, "beta"):
		return ChannelBeta
	case strings.Contains(v, "nightly"):
		return ChannelNightly
	case strings.Contains(v, "unsupported"):
		return ChannelUnsupported
	default:
		return ChannelStable
	}
}
