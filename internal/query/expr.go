package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/sketchboard/internal/model"
)

// FilterExpr represents a filter expression that can match layers
type FilterExpr interface {
	Matches(layer *model.ImageLayer) bool
	String() string // For debug output
}

// TextExpr matches layers whose name contains the search term (case-insensitive)
type TextExpr struct {
	term string
}

func NewTextExpr(term string) *TextExpr {
	return &TextExpr{term: strings.ToLower(term)}
}

func (e *TextExpr) Matches(layer *model.ImageLayer) bool {
	return strings.Contains(strings.ToLower(layer.Name), e.term)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%q)", e.term)
}

// FuzzyExpr matches layers whose name fuzzy-matches the search term
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: term}
}

func (e *FuzzyExpr) Matches(layer *model.ImageLayer) bool {
	return fuzzy.MatchFold(e.term, layer.Name)
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// RegexExpr matches layers whose name matches a regular expression
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(layer *model.ImageLayer) bool {
	return e.re.MatchString(layer.Name)
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("regex(/%s/)", e.pattern)
}

// AlwaysMatchExpr matches every layer (for empty queries)
type AlwaysMatchExpr struct{}

func NewAlwaysMatchExpr() *AlwaysMatchExpr {
	return &AlwaysMatchExpr{}
}

func (e *AlwaysMatchExpr) Matches(layer *model.ImageLayer) bool {
	return true
}

func (e *AlwaysMatchExpr) String() string {
	return "always-match"
}

// AndExpr matches if both left and right match
type AndExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewAndExpr(left, right FilterExpr) *AndExpr {
	return &AndExpr{left: left, right: right}
}

func (e *AndExpr) Matches(layer *model.ImageLayer) bool {
	return e.left.Matches(layer) && e.right.Matches(layer)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("(and %s %s)", e.left.String(), e.right.String())
}

// OrExpr matches if either left or right matches
type OrExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewOrExpr(left, right FilterExpr) *OrExpr {
	return &OrExpr{left: left, right: right}
}

func (e *OrExpr) Matches(layer *model.ImageLayer) bool {
	return e.left.Matches(layer) || e.right.Matches(layer)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("(or %s %s)", e.left.String(), e.right.String())
}

// NotExpr matches if the wrapped expression does not match
type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(layer *model.ImageLayer) bool {
	return !e.expr.Matches(layer)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("(not %s)", e.expr.String())
}

// Field names a numeric layer attribute
type Field string

const (
	FieldOpacity  Field = "opacity"
	FieldX        Field = "x"
	FieldY        Field = "y"
	FieldWidth    Field = "w"
	FieldHeight   Field = "h"
	FieldZ        Field = "z"
	FieldRotation Field = "rot"
	FieldScale    Field = "scale"
)

var fieldAliases = map[string]Field{
	"opacity":  FieldOpacity,
	"o":        FieldOpacity,
	"x":        FieldX,
	"y":        FieldY,
	"w":        FieldWidth,
	"width":    FieldWidth,
	"h":        FieldHeight,
	"height":   FieldHeight,
	"z":        FieldZ,
	"zindex":   FieldZ,
	"rot":      FieldRotation,
	"rotation": FieldRotation,
	"scale":    FieldScale,
}

func (f Field) value(layer *model.ImageLayer) float64 {
	switch f {
	case FieldOpacity:
		return layer.Opacity
	case FieldX:
		return layer.X
	case FieldY:
		return layer.Y
	case FieldWidth:
		return layer.Width
	case FieldHeight:
		return layer.Height
	case FieldZ:
		return float64(layer.ZIndex)
	case FieldRotation:
		return layer.Rotation
	case FieldScale:
		return layer.Scale
	default:
		return 0
	}
}

// NumberFilter compares a numeric layer attribute against a value
type NumberFilter struct {
	field Field
	op    ComparisonOp
	value float64
}

func NewNumberFilter(field Field, op ComparisonOp, value string) (*NumberFilter, error) {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %s", field, value)
	}
	return &NumberFilter{field: field, op: op, value: n}, nil
}

func (e *NumberFilter) Matches(layer *model.ImageLayer) bool {
	return compare(e.field.value(layer), e.op, e.value)
}

func (e *NumberFilter) String() string {
	return fmt.Sprintf("%s(%s%g)", e.field, e.op, e.value)
}

// IDExpr matches a layer by exact id
type IDExpr struct {
	id string
}

func NewIDExpr(id string) *IDExpr {
	return &IDExpr{id: id}
}

func (e *IDExpr) Matches(layer *model.ImageLayer) bool {
	return layer.ID == e.id
}

func (e *IDExpr) String() string {
	return fmt.Sprintf("id(%s)", e.id)
}

func compare(a float64, op ComparisonOp, b float64) bool {
	switch op {
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	default:
		return false
	}
}
