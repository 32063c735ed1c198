// Package engine wires the receipt pipeline: payload validation, layout,
// protocol encoding and serial delivery. One call, one payload, one byte
// stream, one serial session; no state survives between calls.
package engine

import (
	"go.uber.org/zap"
	"golang.org/x/image/font"

	"github.com/souqtech/receipt-printer/internal/config"
	"github.com/souqtech/receipt-printer/internal/escpos"
	"github.com/souqtech/receipt-printer/internal/layout"
	"github.com/souqtech/receipt-printer/internal/raster"
	"github.com/souqtech/receipt-printer/internal/transport"
	"github.com/souqtech/receipt-printer/pkg/payload"
)

// Dot heights of the two face sizes. The printer prints 203 DPI; 24 dots
// is the conventional text row, the title doubles it.
const (
	textHeightPx  = 24
	titleHeightPx = 48
)

// Engine is the receipt compiler plus its transport.
type Engine struct {
	cfg    *config.Config
	layout *layout.Engine
	serial *transport.Serial
	log    *zap.Logger
}

// New builds an engine, resolving and loading the raster font from the
// configuration.
func New(cfg *config.Config, log *zap.Logger) (*Engine, error) {
	fontPath, err := raster.FindFontPath(cfg.FontPath)
	if err != nil {
		return nil, err
	}

	textFace, err := raster.LoadFace(fontPath, textHeightPx)
	if err != nil {
		return nil, err
	}
	titleFace, err := raster.LoadFace(fontPath, titleHeightPx)
	if err != nil {
		return nil, err
	}

	return NewWithFaces(cfg, textFace, titleFace, log), nil
}

// NewWithFaces builds an engine around caller-supplied font faces. Hosts
// and tests that embed or otherwise own their fonts use this constructor.
func NewWithFaces(cfg *config.Config, text, title font.Face, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		cfg: cfg,
		layout: layout.NewEngine(
			raster.NewRenderer(text),
			raster.NewRenderer(title),
			log,
		),
		serial: transport.NewSerial(cfg.WriteTimeout, log),
		log:    log,
	}
}

// Compile validates the payload and returns the encoded printer byte
// stream without sending it.
func (e *Engine) Compile(p *payload.Receipt) ([]byte, error) {
	if err := payload.Validate(p); err != nil {
		return nil, err
	}

	doc, err := e.layout.Build(p)
	if err != nil {
		return nil, err
	}

	return escpos.Encode(doc)
}

// Print compiles the payload and delivers it over the resolved serial
// port. On success it returns a human-readable acknowledgment naming the
// port; on failure the typed error is surfaced for the caller to decide
// on retry policy.
func (e *Engine) Print(p *payload.Receipt) (string, error) {
	data, err := e.Compile(p)
	if err != nil {
		return "", err
	}

	port := e.cfg.ResolvePort(p.Port)
	baud := e.cfg.ResolveBaud(p.Baud)

	e.log.Info("printing receipt",
		zap.String("number", p.Number),
		zap.String("port", port),
		zap.Int("baud", baud),
		zap.Int("bytes", len(data)),
	)

	return e.serial.Send(data, port, baud)
}
