package service

import (
	"fmt"
	"strings"

	"github.com/aussiebroadwan/verify/internal/verify/domain"
)

// reportTimeLayout renders completion times in the operator report.
const reportTimeLayout = "2006-01-02 15:04:05 MST"

// FormatNotification renders a completed verification into the operator
// report. Pure and deterministic: identical payloads produce byte-identical
// text, and absent fields render as the unknown sentinel rather than
// failing.
func FormatNotification(p domain.NotificationPayload) string {
	var b strings.Builder

	b.WriteString("NEW VERIFICATION COMPLETED\n")

	b.WriteString("\nUser:\n")
	writeBranch(&b, "ID", orUnknown(p.Principal.PlatformID))
	writeBranch(&b, "Handle", formatHandle(p.Principal.Handle))
	writeBranch(&b, "Name", orUnknown(p.Principal.DisplayName))
	writeLeaf(&b, "Verified", p.CompletedAt.UTC().Format(reportTimeLayout))

	b.WriteString("\nNetwork:\n")
	writeBranch(&b, "IP", orUnknown(p.Bundle.IP))
	writeBranch(&b, "Country", orUnknown(p.Bundle.Country))
	writeBranch(&b, "City", orUnknown(p.Bundle.City))
	writeBranch(&b, "Region", orUnknown(p.Bundle.Region))
	writeLeaf(&b, "Timezone", orUnknown(p.Bundle.GeoTimezone))

	b.WriteString("\nDevice:\n")
	writeBranch(&b, "Browser", formatBrowser(p.Bundle.BrowserName, p.Bundle.BrowserVersion))
	writeBranch(&b, "OS", orUnknown(p.Bundle.OS))
	writeBranch(&b, "Platform", orUnknown(p.Bundle.Platform))
	writeBranch(&b, "Mobile", orUnknown(p.Bundle.IsMobile))
	writeLeaf(&b, "Screen", formatScreen(p.Bundle.ScreenWidth, p.Bundle.ScreenHeight))

	if len(p.Bundle.Extras) > 0 {
		b.WriteString("\nAdditional:\n")
		for i, extra := range p.Bundle.Extras {
			if i == len(p.Bundle.Extras)-1 {
				writeLeaf(&b, extra.Key, extra.Value)
			} else {
				writeBranch(&b, extra.Key, extra.Value)
			}
		}
	}

	return b.String()
}

func writeBranch(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "|- %s: %s\n", label, value)
}

func writeLeaf(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "`- %s: %s\n", label, value)
}

func orUnknown(s string) string {
	if s == "" {
		return domain.Unknown
	}
	return s
}

func formatHandle(handle string) string {
	if handle == "" {
		return domain.Unknown
	}
	return "@" + strings.TrimPrefix(handle, "@")
}

func formatBrowser(name, version string) string {
	if name == "" || name == domain.Unknown {
		return domain.Unknown
	}
	if version == "" || version == domain.Unknown {
		return name
	}
	return name + " " + version
}

func formatScreen(width, height string) string {
	if width == "" || width == domain.Unknown || height == "" || height == domain.Unknown {
		return domain.Unknown
	}
	return width + "x" + height
}
