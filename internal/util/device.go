package util

import (
	"fmt"
	"regexp"
	"strings"
)

const unknownDevice = "Unknown"

type uaPattern struct {
	name  string
	regex *regexp.Regexp
}

var osPatterns = []uaPattern{
	{name: "Windows", regex: regexp.MustCompile(`windows nt (\d+\.\d+)`)},
	{name: "MacOS", regex: regexp.MustCompile(`mac os x (\d+[_\d]+)`)},
	{name: "iOS", regex: regexp.MustCompile(`(?:iphone|ipad)(?:.*?) os (\d+[_\d]+)`)},
	{name: "Android", regex: regexp.MustCompile(`android (\d+(?:\.\d+)?)`)},
	{name: "Linux", regex: regexp.MustCompile(`linux`)},
	{name: "ChromeOS", regex: regexp.MustCompile(`cros`)},
}

var browserPatterns = []uaPattern{
	{name: "Edge", regex: regexp.MustCompile(`edg(?:e)?/(\d+)`)},
	{name: "Chrome", regex: regexp.MustCompile(`chrome/(\d+)`)},
	{name: "Firefox", regex: regexp.MustCompile(`firefox/(\d+)`)},
	{name: "Safari", regex: regexp.MustCompile(`version/(\d+).*safari`)},
}

var androidManufacturers = []string{"xiaomi", "samsung", "huawei", "sony", "motorola", "oneplus"}

// DeviceInfo summarises a User-Agent as "device - os version - browser" for
// the session list.
func DeviceInfo(userAgent string) string {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return unknownDevice + " - " + unknownDevice
	}

	osName, osVersion := unknownDevice, unknownDevice
	for _, p := range osPatterns {
		m := p.regex.FindStringSubmatch(ua)
		if m == nil {
			continue
		}
		osName = p.name
		if len(m) > 1 && m[1] != "" {
			osVersion = strings.ReplaceAll(m[1], "_", ".")
		}
		break
	}

	device := "PC"
	switch osName {
	case "iOS":
		device = "iPad"
		if strings.Contains(ua, "iphone") {
			device = "iPhone"
		}
	case "Android":
		manufacturer := unknownDevice
		for _, name := range androidManufacturers {
			if strings.Contains(ua, name) {
				manufacturer = strings.ToUpper(name[:1]) + name[1:]
				break
			}
		}
		kind := "Tablet"
		if strings.Contains(ua, "mobile") {
			kind = "Mobile"
		}
		device = manufacturer + " " + kind
	}

	browser := unknownDevice
	for _, p := range browserPatterns {
		if m := p.regex.FindStringSubmatch(ua); m != nil {
			browser = fmt.Sprintf("%s %s", p.name, m[1])
			break
		}
	}

	return fmt.Sprintf("%s - %s %s - %s", device, osName, osVersion, browser)
}
