package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/verify/internal/verify/domain"
	"github.com/aussiebroadwan/verify/internal/verify/service"
)

func fullPayload() domain.NotificationPayload {
	return domain.NotificationPayload{
		Principal: domain.Principal{
			PlatformID:  "555001",
			DisplayName: "Ana",
			Handle:      "ana",
		},
		Bundle: domain.AttributeBundle{
			IP:             "203.0.113.9",
			Country:        "Australia",
			City:           "Brisbane",
			Region:         "QLD",
			GeoTimezone:    "Australia/Brisbane",
			UserAgent:      "Mozilla/5.0",
			BrowserName:    "Firefox",
			BrowserVersion: "140.0",
			OS:             "Linux",
			Platform:       "x86_64",
			IsMobile:       "false",
			ScreenWidth:    "1920",
			ScreenHeight:   "1080",
			Language:       "en-AU",
			TimezoneOffset: "-600",
			Extras: []domain.ExtraAttribute{
				{Key: "connection_type", Value: "wifi"},
				{Key: "geo.ll", Value: "[-27.47,153.03]"},
			},
		},
		CompletedAt: time.Date(2026, 3, 14, 12, 30, 45, 0, time.UTC),
	}
}

func TestFormatNotificationIsDeterministic(t *testing.T) {
	payload := fullPayload()

	first := service.FormatNotification(payload)
	second := service.FormatNotification(payload)
	require.Equal(t, first, second, "identical payloads must render byte-identically")
}

func TestFormatNotificationFullPayload(t *testing.T) {
	report := service.FormatNotification(fullPayload())

	require.True(t, strings.HasPrefix(report, "NEW VERIFICATION COMPLETED\n"))
	require.Contains(t, report, "|- ID: 555001\n")
	require.Contains(t, report, "|- Handle: @ana\n")
	require.Contains(t, report, "|- Name: Ana\n")
	require.Contains(t, report, "`- Verified: 2026-03-14 12:30:45 UTC\n")
	require.Contains(t, report, "|- IP: 203.0.113.9\n")
	require.Contains(t, report, "`- Timezone: Australia/Brisbane\n")
	require.Contains(t, report, "|- Browser: Firefox 140.0\n")
	require.Contains(t, report, "`- Screen: 1920x1080\n")
	require.Contains(t, report, "\nAdditional:\n")
	require.Contains(t, report, "|- connection_type: wifi\n")
	require.Contains(t, report, "`- geo.ll: [-27.47,153.03]\n")
}

func TestFormatNotificationEmptyBundle(t *testing.T) {
	payload := domain.NotificationPayload{
		Principal:   domain.Principal{PlatformID: "555002", DisplayName: "Ana"},
		CompletedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}

	report := service.FormatNotification(payload)

	require.Contains(t, report, "|- Handle: unknown\n")
	require.Contains(t, report, "|- IP: unknown\n")
	require.Contains(t, report, "|- Browser: unknown\n")
	require.Contains(t, report, "`- Screen: unknown\n")
	require.NotContains(t, report, "Additional:", "empty extras must omit the section")
}

func TestFormatNotificationPartialDevice(t *testing.T) {
	payload := fullPayload()
	payload.Bundle.BrowserVersion = domain.Unknown
	payload.Bundle.ScreenHeight = ""

	report := service.FormatNotification(payload)

	require.Contains(t, report, "|- Browser: Firefox\n")
	require.Contains(t, report, "`- Screen: unknown\n")
}
