// Package model contains the data model for layers and shared drawings
package model

// ImageLayer is one raster image placed on the canvas
type ImageLayer struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Src      string  `json:"src" yaml:"src"` // data URI, opaque to the editor core
	Opacity  float64 `json:"opacity" yaml:"opacity"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Rotation float64 `json:"rotation" yaml:"rotation"` // degrees
	Scale    float64 `json:"scale" yaml:"scale"`
	ZIndex   int     `json:"zIndex" yaml:"zIndex"`
}

// LayerPatch is a partial update for an ImageLayer. Nil fields are left alone.
// ID and ZIndex are not part of a patch: ids never change and z-order is
// owned by the ordering operations.
type LayerPatch struct {
	Name     *string  `json:"name,omitempty" yaml:"name,omitempty"`
	Src      *string  `json:"src,omitempty" yaml:"src,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	X        *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y        *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Width    *float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height   *float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Scale    *float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// Apply merges the set fields of the patch into l
func (p LayerPatch) Apply(l *ImageLayer) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Src != nil {
		l.Src = *p.Src
	}
	if p.Opacity != nil {
		l.Opacity = *p.Opacity
	}
	if p.X != nil {
		l.X = *p.X
	}
	if p.Y != nil {
		l.Y = *p.Y
	}
	if p.Width != nil {
		l.Width = *p.Width
	}
	if p.Height != nil {
		l.Height = *p.Height
	}
	if p.Rotation != nil {
		l.Rotation = *p.Rotation
	}
	if p.Scale != nil {
		l.Scale = *p.Scale
	}
}

// IsEmpty reports whether the patch changes nothing
func (p LayerPatch) IsEmpty() bool {
	return p == LayerPatch{}
}

// Ptr returns a pointer to v. Handy for building patches and optional options.
func Ptr[T any](v T) *T {
	return &v
}
