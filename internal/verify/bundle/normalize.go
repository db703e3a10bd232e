// Package bundle normalizes raw collected-attribute payloads from the
// external verification page into canonical attribute bundles. The page is
// untrusted, so parsing is lenient: missing fields fall back to the unknown
// sentinel and unrecognised keys are carried through as extras.
package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/aussiebroadwan/verify/internal/verify/domain"
)

// ErrMalformedBundle reports that the payload was not a mapping at all.
// Missing or unexpected fields never trigger it.
var ErrMalformedBundle = errors.New("bundle: payload is not a mapping")

// Known section keys holding nested mappings.
const (
	sectionGeo     = "geo"
	sectionBrowser = "browser"
	sectionDevice  = "device"
)

// Normalize shapes a raw collected-attribute mapping into an AttributeBundle.
// Every known field is either the collected value or domain.Unknown; keys
// outside the known set are preserved in Extras, ordered lexicographically
// so downstream formatting is deterministic.
func Normalize(raw map[string]any) (domain.AttributeBundle, error) {
	if raw == nil {
		return domain.AttributeBundle{}, ErrMalformedBundle
	}

	consumed := make(map[string]bool, len(raw))
	b := domain.AttributeBundle{
		IP:             takeScalar(raw, consumed, "ip"),
		UserAgent:      takeScalar(raw, consumed, "user_agent"),
		Language:       takeScalar(raw, consumed, "language"),
		TimezoneOffset: takeScalar(raw, consumed, "timezone_offset"),
	}

	geo, geoExtras := section(raw, consumed, sectionGeo, []string{"country", "city", "region", "timezone"})
	b.Country = geo["country"]
	b.City = geo["city"]
	b.Region = geo["region"]
	b.GeoTimezone = geo["timezone"]

	browser, browserExtras := section(raw, consumed, sectionBrowser, []string{"name", "version"})
	b.BrowserName = browser["name"]
	b.BrowserVersion = browser["version"]

	device, deviceExtras := section(raw, consumed, sectionDevice, []string{
		"os", "platform", "is_mobile", "screen_width", "screen_height",
	})
	b.OS = device["os"]
	b.Platform = device["platform"]
	b.IsMobile = device["is_mobile"]
	b.ScreenWidth = device["screen_width"]
	b.ScreenHeight = device["screen_height"]

	b.Extras = collectExtras(raw, consumed, geoExtras, browserExtras, deviceExtras)

	return b, nil
}

// takeScalar consumes a top-level scalar field, defaulting to the unknown
// sentinel when absent or empty.
func takeScalar(raw map[string]any, consumed map[string]bool, key string) string {
	v, ok := raw[key]
	if !ok {
		return domain.Unknown
	}

	s, scalar := renderScalar(v)
	if !scalar {
		// Non-scalar under a scalar key: leave it for the extras pass.
		return domain.Unknown
	}

	consumed[key] = true
	if s == "" {
		return domain.Unknown
	}
	return s
}

// section consumes a nested mapping, returning known subfields (defaulted to
// unknown) plus any unrecognised subkeys for the extras pass.
func section(
	raw map[string]any,
	consumed map[string]bool,
	name string,
	known []string,
) (map[string]string, []domain.ExtraAttribute) {
	out := make(map[string]string, len(known))
	for _, k := range known {
		out[k] = domain.Unknown
	}

	v, ok := raw[name]
	if !ok {
		return out, nil
	}

	nested, ok := v.(map[string]any)
	if !ok {
		// A scalar where a mapping was expected is still preserved, just
		// as an extra rather than an error.
		return out, nil
	}
	consumed[name] = true

	knownSet := make(map[string]bool, len(known))
	for _, k := range known {
		knownSet[k] = true
	}

	var extras []domain.ExtraAttribute
	for _, k := range sortedKeys(nested) {
		if knownSet[k] {
			if s, scalar := renderScalar(nested[k]); scalar && s != "" {
				out[k] = s
			}
			continue
		}
		extras = append(extras, domain.ExtraAttribute{
			Key:   name + "." + k,
			Value: renderValue(nested[k]),
		})
	}

	return out, extras
}

// collectExtras gathers every unconsumed top-level key plus unrecognised
// section subkeys, sorted by key.
func collectExtras(
	raw map[string]any,
	consumed map[string]bool,
	nested ...[]domain.ExtraAttribute,
) []domain.ExtraAttribute {
	var extras []domain.ExtraAttribute
	for _, k := range sortedKeys(raw) {
		if consumed[k] {
			continue
		}
		extras = append(extras, domain.ExtraAttribute{Key: k, Value: renderValue(raw[k])})
	}

	for _, group := range nested {
		extras = append(extras, group...)
	}

	sort.Slice(extras, func(i, j int) bool { return extras[i].Key < extras[j].Key })
	return extras
}

// renderScalar renders a scalar value as a string. The second return is
// false for composites (maps, slices) and nil.
func renderScalar(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case float64:
		// JSON numbers decode as float64; render integers without a
		// trailing fraction.
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10), true
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case json.Number:
		return val.String(), true
	case nil:
		return "", false
	default:
		return "", false
	}
}

// renderValue renders any value as text for the extras map. Composites are
// JSON-encoded, which is deterministic for maps (sorted keys).
func renderValue(v any) string {
	if s, ok := renderScalar(v); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
