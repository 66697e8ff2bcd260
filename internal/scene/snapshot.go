package scene

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// snapshotVersion is written into every snapshot document.
const snapshotVersion = 1

// Snapshot is an immutable serialized Scene.
type Snapshot struct {
	data []byte
}

// Bytes returns a copy of the encoded document.
func (s Snapshot) Bytes() []byte { return append([]byte(nil), s.data...) }

// Len returns the encoded size in bytes.
func (s Snapshot) Len() int { return len(s.data) }

// IsZero reports whether s holds no document.
func (s Snapshot) IsZero() bool { return len(s.data) == 0 }

// Equal reports whether two snapshots are byte-for-byte identical.
func (s Snapshot) Equal(o Snapshot) bool { return bytes.Equal(s.data, o.data) }

// document is the top-level snapshot layout.
type document struct {
	Version    int               `json:"version"`
	Background string            `json:"background"`
	Objects    []json.RawMessage `json:"objects"`
}

// record is the flat encoding shared by every object kind. Fields that do not
// apply to a kind are omitted.
type record struct {
	Type   Kind    `json:"type"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`

	// image
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Src    string `json:"src,omitempty"`

	// stroke
	Path        []edimg.Point `json:"path,omitempty"`
	Stroke      string        `json:"stroke,omitempty"`
	StrokeWidth float64       `json:"strokeWidth,omitempty"`

	// text
	Text       *string `json:"text,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	Fill       string  `json:"fill,omitempty"`
}

// Serializer converts scenes to and from snapshots.
type Serializer struct {
	logger *log.Logger

	// Workers bounds how many objects are encoded or decoded at once.
	Workers int
}

// NewSerializer returns a serializer reporting dropped objects to logger. A nil
// logger discards the reports.
func NewSerializer(logger *log.Logger) *Serializer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Serializer{logger: logger, Workers: runtime.NumCPU()}
}

// Encode serializes every object of sc except the crop overlay. Objects that fail
// to encode are dropped and logged; the rest of the snapshot is still produced.
func (s *Serializer) Encode(sc *Scene) (Snapshot, error) {
	objects := sc.Objects()
	encoded := make([]json.RawMessage, len(objects))

	var g errgroup.Group
	g.SetLimit(s.workers())
	for n, obj := range objects {
		if obj.Kind() == KindCropRect {
			continue
		}
		g.Go(func() error {
			raw, err := encodeObject(obj)
			if err != nil {
				s.logger.Printf("scene: dropping %s object %d from snapshot: %v", obj.Kind(), n, err)
				return nil
			}
			encoded[n] = raw
			return nil
		})
	}
	_ = g.Wait()

	doc := document{
		Version:    snapshotVersion,
		Background: sc.Background,
		Objects:    make([]json.RawMessage, 0, len(encoded)),
	}
	for _, raw := range encoded {
		if raw != nil {
			doc.Objects = append(doc.Objects, raw)
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return Snapshot{data: data}, nil
}

// Decode rebuilds a scene from snap. All objects are reconstructed concurrently
// and Decode returns only once every one has finished, so the caller never sees a
// partially loaded scene. Invalid records are skipped.
//
// # Errors
//
//   - Returns error if the snapshot is not a valid document
//   - Returns ctx.Err() if ctx is cancelled before reconstruction completes
func (s *Serializer) Decode(ctx context.Context, snap Snapshot) (*Scene, error) {
	var doc document
	if err := json.Unmarshal(snap.data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	objects := make([]Object, len(doc.Objects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for n, raw := range doc.Objects {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			obj, err := decodeObject(raw)
			if err != nil {
				s.logger.Printf("scene: skipping object %d of snapshot: %v", n, err)
				return nil
			}
			objects[n] = obj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sc := New(doc.Background)
	for _, obj := range objects {
		if obj != nil {
			sc.Add(obj)
		}
	}
	return sc, nil
}

func (s *Serializer) workers() int {
	if s.Workers < 1 {
		return 1
	}
	return s.Workers
}

func encodeObject(obj Object) (json.RawMessage, error) {
	p := obj.Common()
	rec := record{
		Type:   obj.Kind(),
		Left:   p.Left,
		Top:    p.Top,
		ScaleX: p.ScaleX,
		ScaleY: p.ScaleY,
	}

	switch o := obj.(type) {
	case *Image:
		if o.Raster == nil {
			return nil, fmt.Errorf("image has no raster")
		}
		src, err := edimg.EncodeDataURL(o.Raster)
		if err != nil {
			return nil, err
		}
		rec.Width, rec.Height, rec.Src = o.Width(), o.Height(), src
	case *Stroke:
		rec.Path = o.Points
		rec.Stroke = o.Color
		rec.StrokeWidth = o.Width
	case *Text:
		content := o.Content
		rec.Text = &content
		rec.FontFamily = o.FontFamily
		rec.FontSize = o.FontSize
		rec.Fill = o.Fill
	default:
		return nil, fmt.Errorf("unsupported object kind: %s", obj.Kind())
	}

	return json.Marshal(rec)
}

func decodeObject(raw json.RawMessage) (Object, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}

	place := defaultPlacement(rec.Left, rec.Top)
	place.ScaleX, place.ScaleY = rec.ScaleX, rec.ScaleY

	switch rec.Type {
	case KindImage:
		raster, err := edimg.DecodeDataURL(rec.Src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		return &Image{Placement: place, Raster: raster}, nil
	case KindStroke:
		if len(rec.Path) == 0 {
			return nil, fmt.Errorf("stroke has no points")
		}
		return &Stroke{Placement: place, Points: rec.Path, Color: rec.Stroke, Width: rec.StrokeWidth}, nil
	case KindText:
		if rec.Text == nil {
			return nil, fmt.Errorf("text has no content")
		}
		return &Text{
			Placement:  place,
			Content:    *rec.Text,
			FontFamily: rec.FontFamily,
			FontSize:   rec.FontSize,
			Fill:       rec.Fill,
		}, nil
	case "":
		return nil, fmt.Errorf("empty record")
	default:
		return nil, fmt.Errorf("unknown object type: %s", rec.Type)
	}
}
