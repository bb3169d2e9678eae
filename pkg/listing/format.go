package listing

import "fmt"

const sizeStep = 1024.0

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count using binary (1024-based) units with one
// decimal place. Zero is the single special case and renders as "0 B";
// every other value keeps its decimal, so 1023 renders as "1023.0 B".
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	value := float64(bytes)
	unit := 0
	for value >= sizeStep && unit < len(sizeUnits)-1 {
		value /= sizeStep
		unit++
	}
	return fmt.Sprintf("%.1f %s", value, sizeUnits[unit])
}
