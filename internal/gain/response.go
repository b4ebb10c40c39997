package gain

import (
	"encoding/json"
	"fmt"
)

// Channel labels in display order.
var Channels = []string{"l", "r", "c", "ls", "rs"}

// Echo is the query coordinate a service may repeat back in its response.
type Echo struct {
	X float64
	Y float64
}

// Response is one set of per-channel gains. Values are stored unrounded.
type Response struct {
	L  float64
	R  float64
	C  float64
	LS float64
	RS float64

	// Echo is nil when the service did not repeat the query.
	Echo *Echo
}

// ChannelGain pairs a channel label with its gain.
type ChannelGain struct {
	Channel string
	Gain    float64
}

// Gains returns the channel gains in display order.
func (r Response) Gains() []ChannelGain {
	return []ChannelGain{
		{"l", r.L},
		{"r", r.R},
		{"c", r.C},
		{"ls", r.LS},
		{"rs", r.RS},
	}
}

type wireResponse struct {
	L  *float64 `json:"l"`
	R  *float64 `json:"r"`
	C  *float64 `json:"c"`
	LS *float64 `json:"ls"`
	RS *float64 `json:"rs"`
	X  *float64 `json:"x,omitempty"`
	Y  *float64 `json:"y,omitempty"`
}

// DecodeResponse parses a service body. Every channel key must be present and
// numeric; the echo is optional but must be complete when given.
func DecodeResponse(body []byte) (Response, error) {
	var w wireResponse
	if err := json.Unmarshal(body, &w); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	fields := []struct {
		name string
		v    *float64
	}{{"l", w.L}, {"r", w.R}, {"c", w.C}, {"ls", w.LS}, {"rs", w.RS}}
	for _, f := range fields {
		if f.v == nil {
			return Response{}, fmt.Errorf("%w: missing channel %q", ErrMalformedResponse, f.name)
		}
	}

	resp := Response{L: *w.L, R: *w.R, C: *w.C, LS: *w.LS, RS: *w.RS}
	switch {
	case w.X != nil && w.Y != nil:
		resp.Echo = &Echo{X: *w.X, Y: *w.Y}
	case w.X != nil || w.Y != nil:
		return Response{}, fmt.Errorf("%w: partial query echo", ErrMalformedResponse)
	}
	return resp, nil
}

// MarshalJSON writes the wire shape, including the echo when present.
func (r Response) MarshalJSON() ([]byte, error) {
	w := wireResponse{L: &r.L, R: &r.R, C: &r.C, LS: &r.LS, RS: &r.RS}
	if r.Echo != nil {
		w.X, w.Y = &r.Echo.X, &r.Echo.Y
	}
	return json.Marshal(w)
}
