package media

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders n bytes as a human readable string with one decimal
// place, e.g. "1.5 KB". Zero renders as "0B". Values stay in a unit while
// below 1024 and never go past GB.
func FormatSize(n uint64) string {
	if n == 0 {
		return "0B"
	}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", v, sizeUnits[i])
}
