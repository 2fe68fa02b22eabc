package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"stadium-designer/internal/models"
)

const (
	// SeatsLabel - подпись в сводке для количества мест.
	SeatsLabel = "Number of seats"

	// StrutRadius - радиус балки, соединяющей две вершины треугольника.
	StrutRadius = 0.5

	headerLines = 3
)

// Result - то, что отдается во view: сцена, сводка и размеры поля.
type Result struct {
	Geometry    Group     `json:"geometry" yaml:"geometry"`
	Data        DataGroup `json:"data" yaml:"data"`
	FieldWidth  float64   `json:"fieldWidth" yaml:"fieldWidth"`
	FieldLength float64   `json:"fieldLength" yaml:"fieldLength"`
}

// DecodeOutput проверяет, что output.txt - корректный UTF-8, и режет его на строки.
func DecodeOutput(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: output is not valid UTF-8", models.ErrMalformedResult)
	}
	return SplitLines(string(data)), nil
}

// SplitLines режет текст output.txt на строки по тем же разделителям, что и
// воркер: "\r\n", "\n", одиночный "\r", а также \v, \f, \x1c-\x1e, U+0085,
// U+2028 и U+2029. Завершающий разделитель не порождает пустую строку.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// Interpret строит сцену по строкам output.txt.
//
// Строка 0 - количество мест (передается как есть), строки 1 и 2 - половины ширины
// и длины поля, остальные строки - треугольники. На каждый треугольник добавляются
// три балки (A-B, A-C, B-C), после всех треугольников - пять фигур разметки поля.
// При любой ошибке разбора результат не возвращается.
func Interpret(lines []string) (*Result, error) {
	if len(lines) < headerLines {
		return nil, &ParseError{Err: fmt.Errorf("expected at least %d lines, got %d", headerLines, len(lines))}
	}

	seats := lines[0]
	halfWidth, err := parseDimension(lines[1], 2)
	if err != nil {
		return nil, err
	}
	halfLength, err := parseDimension(lines[2], 3)
	if err != nil {
		return nil, err
	}
	fieldWidth := halfWidth * 2
	fieldLength := halfLength * 2

	triangles := lines[headerLines:]
	geometry := Group{Shapes: make([]Shape, 0, len(triangles)*3+5)}

	for i, line := range triangles {
		pts, err := ParseTriangle(line)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = headerLines + i + 1
			}
			return nil, err
		}
		a, b, c := pts[0], pts[1], pts[2]
		geometry.Add(
			CircularExtrusion(StrutRadius, Line{Start: a, End: b}),
			CircularExtrusion(StrutRadius, Line{Start: a, End: c}),
			CircularExtrusion(StrutRadius, Line{Start: b, End: c}),
		)
	}

	geometry.Add(FieldMarkings(fieldWidth, fieldLength)...)

	return &Result{
		Geometry:    geometry,
		Data:        DataGroup{{Label: SeatsLabel, Value: seats}},
		FieldWidth:  fieldWidth,
		FieldLength: fieldLength,
	}, nil
}

// FieldMarkings возвращает пять декоративных фигур поля в фиксированном порядке:
// газон, средняя линия, внешний и внутренний круг, центральная точка.
// Высоты подобраны так, чтобы слои не перекрывали друг друга.
func FieldMarkings(fieldWidth, fieldLength float64) []Shape {
	origin := Point{}
	up := func(z float64) Line { return Line{Start: origin, End: Point{Z: z}} }

	grass := func(o *float64) Material { return Material{Name: "grass", Color: Green(), Opacity: o} }
	marking := func(o *float64) Material { return Material{Name: "line", Color: White(), Opacity: o} }

	return []Shape{
		RectangularExtrusion(fieldWidth, fieldLength, up(0.1)).WithMaterial(grass(nil)),
		RectangularExtrusion(1, fieldLength, up(0.4)).WithMaterial(marking(nil)),
		CircularExtrusion(14, up(0.2)).WithMaterial(marking(opacity(0.9))),
		CircularExtrusion(12, up(0.3)).WithMaterial(grass(opacity(1))),
		CircularExtrusion(1.5, up(0.4)).WithMaterial(marking(opacity(0.9))),
	}
}

func parseDimension(s string, line int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ParseError{Line: line, Err: fmt.Errorf("field dimension: %w", err)}
	}
	return v, nil
}
