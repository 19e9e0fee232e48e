package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type document struct {
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Shapes []*Shape `json:"shapes"`
}

type shape struct {
	Type   Type   `json:"type"`
	Fill   string `json:"fill,omitempty"`
	Stroke string `json:"stroke,omitempty"`

	ParentTransforms []Transform `json:"parentTransforms,omitempty"`
	Transform        *Transform  `json:"transform,omitempty"`

	Opacity     *float64 `json:"opacity,omitempty"`
	FillOpacity *float64 `json:"fillOpacity,omitempty"`

	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	D *string `json:"d,omitempty"`

	CX *float64 `json:"cx,omitempty"`
	CY *float64 `json:"cy,omitempty"`
	R  *float64 `json:"r,omitempty"`

	Decorations        []Decoration `json:"decorations,omitempty"`
	IsControlledStripe bool         `json:"isControlledStripe,omitempty"`
}

// UnmarshalJSON decodes a shape. A missing numeric field required by the
// shape's type leaves the shape without bounds instead of failing the
// whole document.
func (s *Shape) UnmarshalJSON(data []byte) error {
	var w shape
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Shape{
		Type:               w.Type,
		Fill:               w.Fill,
		Stroke:             w.Stroke,
		ParentTransforms:   w.ParentTransforms,
		Transform:          w.Transform,
		Opacity:            w.Opacity,
		FillOpacity:        w.FillOpacity,
		Decorations:        w.Decorations,
		IsControlledStripe: w.IsControlledStripe,
	}

	switch w.Type {
	case TypeRect:
		s.X, s.Y = deref(w.X), deref(w.Y)
		s.Width, s.Height = deref(w.Width), deref(w.Height)
		s.missing = missingIf(w.X, fieldX) | missingIf(w.Y, fieldY) |
			missingIf(w.Width, fieldWidth) | missingIf(w.Height, fieldHeight)
	case TypePath:
		if w.D != nil {
			s.D = *w.D
		}
		s.missing = missingIf(w.D, fieldD)
	case TypeCircle:
		s.CX, s.CY, s.R = deref(w.CX), deref(w.CY), deref(w.R)
		s.missing = missingIf(w.CX, fieldCX) | missingIf(w.CY, fieldCY) | missingIf(w.R, fieldR)
	}
	return nil
}

// MarshalJSON encodes only the fields that belong to the shape's type.
// Geometry fields absent on decode stay absent.
func (s *Shape) MarshalJSON() ([]byte, error) {
	w := shape{
		Type:               s.Type,
		Fill:               s.Fill,
		Stroke:             s.Stroke,
		ParentTransforms:   s.ParentTransforms,
		Transform:          s.Transform,
		Opacity:            s.Opacity,
		FillOpacity:        s.FillOpacity,
		IsControlledStripe: s.IsControlledStripe,
	}
	switch s.Type {
	case TypeRect:
		w.X, w.Y = s.present(&s.X, fieldX), s.present(&s.Y, fieldY)
		w.Width, w.Height = s.present(&s.Width, fieldWidth), s.present(&s.Height, fieldHeight)
		w.Decorations = s.Decorations
	case TypePath:
		if !s.missing.has(fieldD) {
			w.D = &s.D
		}
	case TypeCircle:
		w.CX, w.CY, w.R = s.present(&s.CX, fieldCX), s.present(&s.CY, fieldCY), s.present(&s.R, fieldR)
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts either "rotate(45)" or {"raw": "rotate(45)"}.
func (t *Transform) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &t.Raw)
	}
	var obj struct {
		Raw string `json:"raw"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	t.Raw = obj.Raw
	return nil
}

// MarshalJSON encodes the transform as {"raw": ...}.
func (t Transform) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Raw string `json:"raw"`
	}{t.Raw})
}

// present returns v unless the field f was absent on decode.
func (s *Shape) present(v *float64, f fields) *float64 {
	if s.missing.has(f) {
		return nil
	}
	return v
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// ReadJSON decodes a scene document from r.
//
// The input must be a JSON object; "width", "height" and "shapes" are read,
// other keys are ignored. A null shape entry is dropped. ReadJSON returns an
// error only for malformed JSON; bad geometry on individual shapes is
// tolerated and surfaces later as missing bounds.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	doc := &Document{Width: data.Width, Height: data.Height}
	if data.Shapes != nil {
		doc.Shapes = make([]*Shape, 0, len(data.Shapes))
		for _, s := range data.Shapes {
			if s != nil {
				doc.Shapes = append(doc.Shapes, s)
			}
		}
	}
	return doc, nil
}

// ReadFile reads and decodes the scene document at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Unmarshal decodes a scene document from data.
func Unmarshal(data []byte) (*Document, error) {
	return ReadJSON(bytes.NewReader(data))
}

// Marshal encodes d compactly. The encoding is deterministic, so it doubles
// as the content key for caching.
func Marshal(d *Document) ([]byte, error) {
	return json.Marshal(toWire(d))
}

// WriteJSON encodes d as indented JSON to w.
func WriteJSON(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile encodes d as indented JSON into the file at path.
func WriteFile(path string, d *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func toWire(d *Document) document {
	return document{Width: d.Width, Height: d.Height, Shapes: d.Shapes}
}
