package handlers

import (
	"time"

	"github.com/san-kum/bodelab/internal/bode"
	"github.com/san-kum/bodelab/internal/config"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// ShapeInfo describes one transfer-function family and its sliders
type ShapeInfo struct {
	Name     string           `json:"name" doc:"Shape identifier"`
	Formula  string           `json:"formula" doc:"Transfer function"`
	Controls []config.Control `json:"controls" doc:"Slider declarations"`
	Presets  []string         `json:"presets" doc:"Named parameter presets"`
}

type ShapesResponse struct {
	Body struct {
		Shapes []ShapeInfo `json:"shapes"`
	}
}

// ParamsInput holds the slider values of one evaluation. Every field has a
// default so a bare request evaluates the default shape parameters.
type ParamsInput struct {
	Shape  string  `path:"shape" doc:"real_pole, second_order or dead_time"`
	K      float64 `query:"k" default:"1" doc:"Gain"`
	Tau    float64 `query:"tau" default:"1" exclusiveMinimum:"0" doc:"Time constant"`
	N      int     `query:"n" default:"1" minimum:"-10" maximum:"10" doc:"Real-pole order, negative for zeros"`
	Zeta   float64 `query:"zeta" default:"0.5" minimum:"0" doc:"Damping ratio"`
	Delay  float64 `query:"delay" default:"1" minimum:"0" doc:"Dead time"`
	Lower  float64 `query:"lower" default:"-2" doc:"Lowest frequency decade"`
	Upper  float64 `query:"upper" default:"2" doc:"Highest frequency decade"`
	Points int     `query:"points" default:"1000" minimum:"2" maximum:"20000" doc:"Grid size"`
}

// BodeRequest represents a request for a numeric frequency response
type BodeRequest struct {
	ParamsInput
}

// Pole is one root of the characteristic polynomial
type Pole struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// BodeResponseBody is the body of the frequency response
type BodeResponseBody struct {
	ID         string           `json:"id" doc:"Evaluation identifier, also logged"`
	Shape      string           `json:"shape"`
	K          float64          `json:"k"`
	Tau        float64          `json:"tau"`
	N          int              `json:"n"`
	Zeta       float64          `json:"zeta"`
	Delay      float64          `json:"delay"`
	Omega      []float64        `json:"omega" doc:"Frequencies in rad/s"`
	Magnitude  []float64        `json:"magnitude" doc:"|G(jω)|"`
	Phase      []float64        `json:"phase" doc:"Unwrapped phase in radians"`
	Asymptotes *bode.Asymptotes `json:"asymptotes,omitempty"`
	Poles      []Pole           `json:"poles,omitempty"`
	Damping    string           `json:"damping,omitempty"`
}

type BodeResponse struct {
	Body BodeResponseBody
}

// FigureRequest represents a request for a rendered Bode figure
type FigureRequest struct {
	ParamsInput
	Format string  `query:"format" default:"png" enum:"png,svg,pdf" doc:"Image format"`
	Width  float64 `query:"width" default:"6" minimum:"1" maximum:"24" doc:"Figure width in inches"`
	Height float64 `query:"height" default:"8" minimum:"1" maximum:"24" doc:"Figure height in inches"`
}

type FigureResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
