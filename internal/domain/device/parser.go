package device

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const devicesHeader = "List of devices"

// listingTimeLayout формат даты/времени в длинном листинге toybox ls
const listingTimeLayout = "2006-01-02 15:04"

var devicePropPattern = regexp.MustCompile(`\b(model|product|device|transport_id):(\S+)`)

// ParseDevices разбирает вывод команды перечисления устройств.
// Строки, которые не делятся минимум на два токена, пропускаются.
func ParseDevices(output string) []Device {
	lines := splitLines(output)

	// Отбрасываем служебные строки демона и заголовок
	start := -1
	for i, line := range lines {
		if strings.Contains(line, devicesHeader) {
			start = i + 1
			break
		}
	}
	if start == -1 {
		start = 1
	}

	devices := make([]Device, 0, len(lines))
	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}

		dev, ok := parseDeviceLine(line)
		if !ok {
			continue
		}
		devices = append(devices, dev)
	}

	return devices
}

func parseDeviceLine(line string) (Device, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return Device{}, false
	}

	status := Status(tokens[1])
	if tokens[1] == "no" && len(tokens) > 2 && strings.HasPrefix(tokens[2], "permissions") {
		status = StatusNoPermission
	}

	dev := Device{
		ID:           tokens[0],
		SerialNumber: tokens[0],
		Model:        Unknown,
		Product:      Unknown,
		DeviceCode:   Unknown,
		TransportID:  Unknown,
		Status:       status,
		IsAuthorized: tokens[1] == string(StatusConnected),
	}

	rest := strings.Join(tokens[2:], " ")
	for _, m := range devicePropPattern.FindAllStringSubmatch(rest, -1) {
		switch m[1] {
		case "model":
			dev.Model = m[2]
		case "product":
			dev.Product = m[2]
		case "device":
			dev.DeviceCode = m[2]
		case "transport_id":
			dev.TransportID = m[2]
		}
	}

	return dev, true
}

// ParseListing разбирает длинный листинг директории (ls -la).
// Строки короче 8 токенов, а также записи "." и ".." пропускаются.
func ParseListing(dir, output string) []RemoteFile {
	files := make([]RemoteFile, 0)

	for _, line := range splitLines(output) {
		tokens := strings.Fields(line)
		if len(tokens) < 8 {
			continue
		}

		perms := tokens[0]
		name := strings.Join(tokens[7:], " ")
		if strings.HasPrefix(perms, "l") {
			// Для симлинков отрезаем " -> target"
			if idx := strings.Index(name, " -> "); idx >= 0 {
				name = name[:idx]
			}
		}
		if name == "." || name == ".." {
			continue
		}

		size, err := strconv.ParseInt(tokens[4], 10, 64)
		if err != nil {
			size = 0
		}

		modified, err := time.ParseInLocation(listingTimeLayout, tokens[5]+" "+tokens[6], time.Local)
		if err != nil {
			modified = time.Time{}
		}

		files = append(files, RemoteFile{
			Name:        name,
			Path:        path.Join(dir, name),
			Size:        size,
			IsDirectory: strings.HasPrefix(perms, "d"),
			Permissions: perms,
			ModifiedAt:  modified,
		})
	}

	return files
}

func splitLines(output string) []string {
	output = strings.ReplaceAll(output, "\r\n", "\n")
	return strings.Split(output, "\n")
}
