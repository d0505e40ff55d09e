package checkerboard

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"

	"go.uber.org/zap"
)

// ErrNotApplicable is returned for inputs that are not 4-channel RGBA
// rasters, including unreadable ones.
var ErrNotApplicable = errors.New("not an RGBA image")

// Stats summarises one cleaning run.
type Stats struct {
	Width      int
	Height     int
	Candidates int // pixels matching a background colour rule
	Seeds      int // pixels that were already fully transparent
	Cleared    int // pixels made transparent by propagation
}

// Engine classifies background pixels and propagates transparency into them.
type Engine struct {
	opts   Options
	logger *zap.Logger
}

// NewEngine constructs an Engine. A nil logger disables logging.
func NewEngine(opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{opts: opts, logger: logger}
}

var defaultEngine struct {
	once sync.Once
	eng  *Engine
}

func getDefaultEngine() *Engine {
	defaultEngine.once.Do(func() {
		defaultEngine.eng = NewEngine(DefaultOptions(), nil)
	})
	return defaultEngine.eng
}

// Clean applies an engine with DefaultOptions to img.
func Clean(img draw.Image) (Stats, error) {
	return getDefaultEngine().Clean(img)
}

// Clean clears the alpha of every candidate-background pixel that is
// 4-connected to an already transparent pixel. img is modified in place and
// only its alpha channel changes. Only *image.NRGBA and *image.NRGBA64 are
// accepted; other types return ErrNotApplicable.
//
// 16-bit rasters are classified on the high byte of each channel, so the
// 8-bit thresholds apply to their visible colour rather than to the raw
// 16-bit values.
func (e *Engine) Clean(img draw.Image) (Stats, error) {
	px, err := rasterOf(img)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Width: px.w, Height: px.h}
	if px.w <= 0 || px.h <= 0 {
		return stats, fmt.Errorf("invalid image dimensions %dx%d", px.w, px.h)
	}

	bg := e.classify(px)
	for _, b := range bg {
		if b {
			stats.Candidates++
		}
	}

	stats.Seeds, stats.Cleared = propagate(px, bg)

	e.logger.Debug("propagated transparency",
		zap.Int("width", stats.Width),
		zap.Int("height", stats.Height),
		zap.Int("candidates", stats.Candidates),
		zap.Int("seeds", stats.Seeds),
		zap.Int("cleared", stats.Cleared),
	)

	return stats, nil
}

// classify builds the candidate-background mask in row-major order.
func (e *Engine) classify(px raster) []bool {
	bg := make([]bool, px.w*px.h)
	for y := 0; y < px.h; y++ {
		for x := 0; x < px.w; x++ {
			r, g, b := px.rgb(x, y)
			bg[y*px.w+x] = e.opts.IsBackground(r, g, b)
		}
	}
	return bg
}

// propagate runs a breadth-first fill from every fully transparent pixel
// through 4-connected pixels set in bg, clearing alpha as it goes. The
// result equals the fixed point of repeatedly dilating the transparent mask
// with a von Neumann kernel and intersecting with bg.
func propagate(px raster, bg []bool) (seeds, cleared int) {
	w, h := px.w, px.h
	marked := make([]bool, w*h)
	queue := make([]int, 0, w+h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if px.transparent(x, y) {
				i := y*w + x
				marked[i] = true
				queue = append(queue, i)
			}
		}
	}
	seeds = len(queue)

	visit := func(x, y int) {
		i := y*w + x
		if marked[i] || !bg[i] {
			return
		}
		marked[i] = true
		px.clearAlpha(x, y)
		queue = append(queue, i)
		cleared++
	}

	for head := 0; head < len(queue); head++ {
		x, y := queue[head]%w, queue[head]/w
		if x > 0 {
			visit(x-1, y)
		}
		if x < w-1 {
			visit(x+1, y)
		}
		if y > 0 {
			visit(x, y-1)
		}
		if y < h-1 {
			visit(x, y+1)
		}
	}

	return seeds, cleared
}

// raster gives uniform access to 8- and 16-bit non-premultiplied RGBA
// pixel buffers. Coordinates are relative to the image origin.
type raster struct {
	pix    []uint8
	stride int
	depth  int // bytes per channel, 1 or 2 (big-endian)
	w, h   int
}

func rasterOf(img draw.Image) (raster, error) {
	switch m := img.(type) {
	case *image.NRGBA:
		if m == nil {
			return raster{}, fmt.Errorf("nil image provided: %w", ErrNotApplicable)
		}
		return raster{pix: m.Pix, stride: m.Stride, depth: 1, w: m.Rect.Dx(), h: m.Rect.Dy()}, nil
	case *image.NRGBA64:
		if m == nil {
			return raster{}, fmt.Errorf("nil image provided: %w", ErrNotApplicable)
		}
		return raster{pix: m.Pix, stride: m.Stride, depth: 2, w: m.Rect.Dx(), h: m.Rect.Dy()}, nil
	case nil:
		return raster{}, fmt.Errorf("nil image provided: %w", ErrNotApplicable)
	default:
		return raster{}, fmt.Errorf("unsupported raster %T: %w", img, ErrNotApplicable)
	}
}

func (p raster) offset(x, y int) int {
	return y*p.stride + x*4*p.depth
}

// rgb returns the most significant byte of each colour channel.
func (p raster) rgb(x, y int) (r, g, b uint8) {
	o := p.offset(x, y)
	return p.pix[o], p.pix[o+p.depth], p.pix[o+2*p.depth]
}

func (p raster) transparent(x, y int) bool {
	o := p.offset(x, y) + 3*p.depth
	for k := 0; k < p.depth; k++ {
		if p.pix[o+k] != 0 {
			return false
		}
	}
	return true
}

func (p raster) clearAlpha(x, y int) {
	o := p.offset(x, y) + 3*p.depth
	for k := 0; k < p.depth; k++ {
		p.pix[o+k] = 0
	}
}
