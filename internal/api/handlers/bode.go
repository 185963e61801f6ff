package handlers

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/bodelab/internal/bode"
	"github.com/san-kum/bodelab/internal/config"
	"github.com/san-kum/bodelab/internal/freq"
	"github.com/san-kum/bodelab/internal/render"
	"github.com/san-kum/bodelab/internal/tf"
	"gonum.org/v1/plot/vg"
)

var formulas = map[tf.Kind]string{
	tf.KindRealPole:    "K/(τs+1)^n",
	tf.KindSecondOrder: "K/(τ²s²+2τζs+1)",
	tf.KindDeadTime:    "exp(-Ds)",
}

// BodeHandler handles evaluation and rendering requests
type BodeHandler struct {
	cfg     *config.Config
	version string
}

// NewBodeHandler creates a new handler. cfg supplies the axis limits and
// slider declarations; the grid comes from each request.
func NewBodeHandler(cfg *config.Config, version string) *BodeHandler {
	return &BodeHandler{cfg: cfg, version: version}
}

func (h *BodeHandler) Health(ctx context.Context, _ *struct{}) (*HealthResponse, error) {
	resp := &HealthResponse{}
	resp.Body.Status = "healthy"
	resp.Body.Version = h.version
	resp.Body.Time = time.Now()
	return resp, nil
}

// ListShapes returns every shape with its sliders and presets
func (h *BodeHandler) ListShapes(ctx context.Context, _ *struct{}) (*ShapesResponse, error) {
	resp := &ShapesResponse{}
	for _, k := range tf.Kinds() {
		resp.Body.Shapes = append(resp.Body.Shapes, ShapeInfo{
			Name:     k.String(),
			Formula:  formulas[k],
			Controls: h.cfg.ControlsFor(k),
			Presets:  config.ListPresets(k.String()),
		})
	}
	return resp, nil
}

// Evaluate returns the numeric frequency response
func (h *BodeHandler) Evaluate(ctx context.Context, req *BodeRequest) (*BodeResponse, error) {
	res, err := h.evaluate(req.ParamsInput)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log.Info().Str("id", id).Str("shape", req.Shape).Int("points", len(res.Omega)).Msg("Evaluated frequency response")

	body := BodeResponseBody{
		ID:         id,
		Shape:      res.Params.Kind.String(),
		K:          res.Params.K,
		Tau:        res.Params.Tau,
		N:          res.Params.N,
		Zeta:       res.Params.Zeta,
		Delay:      res.Params.Delay,
		Omega:      res.Omega,
		Magnitude:  res.Magnitude,
		Phase:      res.Phase,
		Asymptotes: res.Asymptotes,
	}
	if res.Params.Kind == tf.KindSecondOrder {
		for _, p := range res.Poles {
			body.Poles = append(body.Poles, Pole{Re: real(p), Im: imag(p)})
		}
		body.Damping = bode.Damping(res.Poles)
	}
	return &BodeResponse{Body: body}, nil
}

// Figure renders the Bode figure as an image
func (h *BodeHandler) Figure(ctx context.Context, req *FigureRequest) (*FigureResponse, error) {
	res, err := h.evaluate(req.ParamsInput)
	if err != nil {
		return nil, err
	}
	ct, err := render.ContentType(req.Format)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("Unsupported figure format", err)
	}

	var buf bytes.Buffer
	opts := render.Options{
		Format: req.Format,
		Width:  vg.Length(req.Width) * vg.Inch,
		Height: vg.Length(req.Height) * vg.Inch,
	}
	if err := render.Figure(&buf, res, h.cfg.Limits, opts); err != nil {
		return nil, huma.Error500InternalServerError("Failed to render figure", err)
	}

	log.Info().Str("shape", req.Shape).Str("format", req.Format).Int("bytes", buf.Len()).Msg("Rendered figure")
	return &FigureResponse{ContentType: ct, Body: buf.Bytes()}, nil
}

func (h *BodeHandler) evaluate(in ParamsInput) (*bode.Result, error) {
	kind, err := tf.ParseKind(in.Shape)
	if err != nil {
		return nil, huma.Error404NotFound("Unknown shape", err)
	}
	grid := freq.Grid{LowerExp: in.Lower, UpperExp: in.Upper, Points: in.Points}
	if err := grid.Validate(); err != nil {
		return nil, huma.Error422UnprocessableEntity("Invalid frequency grid", err)
	}

	params := tf.Params{Kind: kind, K: in.K, Tau: in.Tau, N: in.N, Zeta: in.Zeta, Delay: in.Delay}
	res, err := bode.Evaluate(params, grid)
	if err != nil {
		if errors.Is(err, bode.ErrNoConvergence) {
			return nil, huma.Error422UnprocessableEntity("Pole computation failed", err)
		}
		return nil, huma.Error500InternalServerError("Evaluation failed", err)
	}
	if err := bode.CheckFinite(res); err != nil {
		log.Warn().Err(err).Str("shape", in.Shape).Msg("Rejected non-finite response")
		return nil, huma.Error422UnprocessableEntity("Response is not finite for these parameters", err)
	}
	return res, nil
}
