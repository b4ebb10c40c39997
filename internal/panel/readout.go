package panel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iburimskiy/surround-panner/internal/gain"
	"github.com/iburimskiy/surround-panner/internal/listener"
)

// Line is one key: value row of the result list.
type Line struct {
	Key   string
	Value float64
	Text  string
}

// Readout is the result list split into the query echo and the channel gains.
type Readout struct {
	Query  []Line
	Result []Line
	Status string
	Failed bool
}

// FormatGain rounds a gain to two decimals for display.
func FormatGain(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// Source is what the readout is built from.
type Source interface {
	Latest() (gain.Response, bool)
	Request() gain.Request
	Err() error
}

// Build projects the current lock state and latest response into display rows.
// When the service does not echo the query, the sent coordinate is shown.
func Build(state listener.State, src Source) Readout {
	r := Readout{}

	resp, ok := src.Latest()
	if ok {
		q := src.Request()
		x, y := q.X, q.Y
		if resp.Echo != nil {
			x, y = resp.Echo.X, resp.Echo.Y
		}
		r.Query = []Line{
			{Key: "x", Value: x, Text: "x: " + formatCoord(x)},
			{Key: "y", Value: y, Text: "y: " + formatCoord(y)},
		}
		for _, g := range resp.Gains() {
			r.Result = append(r.Result, Line{Key: g.Channel, Value: g.Gain, Text: g.Channel + ": " + FormatGain(g.Gain)})
		}
	}

	parts := []string{state.String()}
	if err := src.Err(); err != nil {
		r.Failed = true
		parts = append(parts, "stale: "+shorten(err.Error(), 48))
	} else if !ok {
		parts = append(parts, "waiting for gains")
	}
	r.Status = strings.Join(parts, " | ")
	return r
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// PositionText describes the marker for the status bar.
func PositionText(x, y float64) string {
	return fmt.Sprintf("pos %.0f,%.0f", x, y)
}
