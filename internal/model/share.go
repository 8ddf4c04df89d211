package model

import "github.com/pstuifzand/sketchboard/internal/geom"

// ShareOptions is everything besides the lines needed to replay a drawing
type ShareOptions struct {
	Width         float64       `json:"width" yaml:"width"`
	Height        float64       `json:"height" yaml:"height"`
	DrawOptions   DrawOptions   `json:"drawOptions" yaml:"drawOptions"`
	ReplayOptions ReplayOptions `json:"replayOptions" yaml:"replayOptions"`
	BrushOptions  BrushOptions  `json:"brushOptions" yaml:"brushOptions"`
}

// SharedInfo is the unit carried by a share link
type SharedInfo struct {
	Lines   []geom.Line  `json:"lines" yaml:"lines"`
	Options ShareOptions `json:"options" yaml:"options"`
}

// PointCount returns the number of points over all lines
func (s SharedInfo) PointCount() int {
	n := 0
	for _, line := range s.Lines {
		n += len(line)
	}
	return n
}
