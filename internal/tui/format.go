package tui

import (
	"fmt"
	"strings"
	"time"
)

// Comma formats an integer with comma separators.
func Comma[T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64](v T) string {
	// Convert to uint64 for processing
	val := uint64(v)
	if val == 0 {
		return "0"
	}

	// Calculate the number of digits and commas needed.
	var count byte
	for n := val; n != 0; n = n / 10 {
		count++
	}
	count += (count - 1) / 3

	// Create an output slice to hold the formatted number.
	output := make([]byte, count)
	j := len(output) - 1

	// Populate the output slice with digits and commas.
	var counter byte
	for val > 9 {
		output[j] = byte(val%10) + '0'
		val = val / 10
		j--
		if counter == 2 {
			counter = 0
			output[j] = ','
			j--
		} else {
			counter++
		}
	}
	output[j] = byte(val) + '0'

	return string(output)
}

// Energy formats an energy value for display. Whole numbers drop the
// fraction entirely.
func Energy(e float64) string {
	if e == float64(int64(e)) {
		return fmt.Sprintf("%d", int64(e))
	}
	return fmt.Sprintf("%.4f", e)
}

// Elapsed formats a duration at millisecond precision.
func Elapsed(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

// maxBitsShown caps how much of an assignment is printed before it is
// elided; full assignments belong in a saved result file, not a table.
const maxBitsShown = 64

// Bits renders a binary assignment as digit groups of eight, eliding
// everything past maxBitsShown.
func Bits(x []uint8) string {
	var sb strings.Builder
	shown := len(x)
	if shown > maxBitsShown {
		shown = maxBitsShown
	}
	for i := 0; i < shown; i++ {
		if i > 0 && i%8 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('0' + x[i])
	}
	if len(x) > shown {
		sb.WriteString(fmt.Sprintf(" … (%s bits)", Comma(len(x))))
	}
	return sb.String()
}
