// Package plotexport renders the averaged B-H loop to an image file.
package plotexport

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/ports"
)

type Renderer struct{}

func New() *Renderer {
	return &Renderer{}
}

var _ ports.LoopPlotter = (*Renderer)(nil)

// Render draws the closed loop with labeled H and B axes. The output
// format follows the file extension (.png, .svg, .pdf).
func (r *Renderer) Render(loop domain.AveragedLoop, path string) error {
	if len(loop.Points) < 2 {
		return &domain.OpError{
			Op:   "plotexport.render",
			Kind: domain.KindInvalidParameter,
			Err:  fmt.Errorf("loop has %d points: %w", len(loop.Points), domain.ErrInvalidParameter),
		}
	}

	p := plot.New()
	p.Title.Text = "Averaged B-H loop"
	p.X.Label.Text = "H, A/m"
	p.Y.Label.Text = "B, T"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(loop.Points))
	for i, pt := range loop.Points {
		xys[i].X = pt.H
		xys[i].Y = pt.B
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return &domain.OpError{
			Op:   "plotexport.render",
			Kind: domain.KindWrite,
			Path: path,
			Err:  err,
		}
	}
	p.Add(line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return &domain.OpError{
			Op:   "plotexport.save",
			Kind: domain.KindWrite,
			Path: path,
			Err:  fmt.Errorf("%v: %w", err, domain.ErrWrite),
		}
	}
	return nil
}
