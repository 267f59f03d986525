package detection

import (
	"fmt"
	"image"
	"log/slog"
	"sort"

	"github.com/teslashibe/go-smile/internal/log"
	"github.com/teslashibe/go-smile/pkg/inference"
)

// Detection output columns: [image_id, label, conf, xmin, ymin, xmax, ymax].
const (
	ssdColumns = 7
	colImageID = 0
	colConf    = 2
	colXmin    = 3
	colYmin    = 4
	colXmax    = 5
	colYmax    = 6
)

// Detector finds faces with an SSD-style model whose output is [1,1,N,7].
type Detector struct {
	session inference.Session
	config  Config
	logger  *slog.Logger
}

// New creates a detector running on an already loaded session.
func New(session inference.Session, cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Detector{
		session: session,
		config:  cfg,
		logger:  log.Or(cfg.Logger).With("component", "detector"),
	}, nil
}

// Load loads cfg.ModelPath with rt and creates a detector on it.
func Load(rt inference.Runtime, cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	session, err := rt.Load(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load face detector: %w", err)
	}
	return New(session, cfg)
}

// Detect returns the faces in frame, largest first.
func (d *Detector) Detect(frame image.Image) ([]Region, error) {
	b := frame.Bounds()
	if b.Empty() {
		return nil, ErrEmptyFrame
	}

	input := inference.FromImage(frame, d.config.InputWidth, d.config.InputHeight, inference.BGR)
	out, err := d.session.Infer(input)
	if err != nil {
		return nil, fmt.Errorf("face detection: %w", err)
	}

	regions, err := Parse(out, b.Dx(), b.Dy(), d.config.ConfidenceThresh)
	if err != nil {
		return nil, err
	}

	// Crops index the frame, so translate when its origin is not (0,0).
	if b.Min != (image.Point{}) {
		for i := range regions {
			regions[i].Xmin += b.Min.X
			regions[i].Xmax += b.Min.X
			regions[i].Ymin += b.Min.Y
			regions[i].Ymax += b.Min.Y
		}
	}

	d.logger.Debug("faces detected", "count", len(regions), "frame", b.Size())
	return regions, nil
}

// Close releases the model session.
func (d *Detector) Close() error {
	return d.session.Close()
}

// Parse converts raw detections into regions for a width x height frame.
// Rows at or below thresh are dropped. Coordinates are denormalized, clamped
// to the frame and the result is stable-sorted by descending area.
func Parse(out inference.Tensor, width, height int, thresh float32) ([]Region, error) {
	rows, err := out.Rows(ssdColumns)
	if err != nil {
		return nil, fmt.Errorf("face detection output: %w", err)
	}

	var regions []Region
	for _, row := range rows {
		// A negative image id marks the end of valid detections.
		if row[colImageID] < 0 {
			break
		}
		if row[colConf] <= thresh {
			continue
		}
		regions = append(regions, toRegion(row, width, height))
	}

	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Area > regions[j].Area
	})
	return regions, nil
}

func toRegion(row []float32, width, height int) Region {
	xmin := max(0, int(row[colXmin]*float32(width)))
	ymin := max(0, int(row[colYmin]*float32(height)))
	xmax := min(int(row[colXmax]*float32(width)), width)
	ymax := min(int(row[colYmax]*float32(height)), height)

	// Boxes entirely outside the frame collapse to an empty region on the edge.
	xmin = min(xmin, width)
	ymin = min(ymin, height)
	xmax = max(xmax, xmin)
	ymax = max(ymax, ymin)

	return Region{
		Xmin:       xmin,
		Ymin:       ymin,
		Xmax:       xmax,
		Ymax:       ymax,
		Area:       (xmax - xmin) * (ymax - ymin),
		Confidence: row[colConf],
	}
}

// Crop returns the part of frame covered by r.
// Frames that support SubImage share pixels with the result.
func Crop(frame image.Image, r Region) image.Image {
	rect := r.Rect().Intersect(frame.Bounds())

	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if s, ok := frame.(subImager); ok {
		return s.SubImage(rect)
	}

	dst := image.NewRGBA(rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.Set(x, y, frame.At(x, y))
		}
	}
	return dst
}
