package api

import "github.com/matt-g-everett/keyframer/anim"

// ApiResponse is the envelope of every response.
type ApiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// PlayRequest starts a track.
type PlayRequest struct {
	Track string        `json:"track" binding:"required"`
	Mode  anim.PlayMode `json:"mode"`
}

// CrossfadeRequest blends into a track.
type CrossfadeRequest struct {
	Track   string        `json:"track" binding:"required"`
	Mode    anim.PlayMode `json:"mode"`
	BlendMs int64         `json:"blendMs" binding:"gte=0"`
}

// SpeedRequest changes the playback speed.
type SpeedRequest struct {
	Speed *float64 `json:"speed" binding:"required"`
}

// HealthResponse reports that the server is up.
type HealthResponse struct {
	Uptime  string   `json:"uptime"`
	Outputs []string `json:"outputs"`
}
