package scene

import "fmt"

// Point - точка в пространстве модели.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Line - осевая линия экструзии.
type Line struct {
	Start Point `json:"start" yaml:"start"`
	End   Point `json:"end" yaml:"end"`
}

// Color - RGB цвет.
type Color struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// Green возвращает зеленый цвет газона.
func Green() Color { return Color{R: 0, G: 255, B: 0} }

// White возвращает белый цвет разметки.
func White() Color { return Color{R: 255, G: 255, B: 255} }

// Material - внешний вид фигуры. Opacity == nil означает непрозрачность по умолчанию.
type Material struct {
	Name    string   `json:"name" yaml:"name"`
	Color   Color    `json:"color" yaml:"color"`
	Opacity *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
}

// ShapeKind - тип сечения экструзии.
type ShapeKind string

const (
	KindCircularExtrusion    ShapeKind = "circular_extrusion"
	KindRectangularExtrusion ShapeKind = "rectangular_extrusion"
)

// Shape - одно твердое тело сцены.
// Для круглого сечения задан Radius, для прямоугольного - Width и Length.
type Shape struct {
	Kind     ShapeKind `json:"kind" yaml:"kind"`
	Line     Line      `json:"line" yaml:"line"`
	Radius   float64   `json:"radius,omitempty" yaml:"radius,omitempty"`
	Width    float64   `json:"width,omitempty" yaml:"width,omitempty"`
	Length   float64   `json:"length,omitempty" yaml:"length,omitempty"`
	Material *Material `json:"material,omitempty" yaml:"material,omitempty"`
}

// CircularExtrusion создает цилиндр радиуса radius вдоль line.
func CircularExtrusion(radius float64, line Line) Shape {
	return Shape{Kind: KindCircularExtrusion, Line: line, Radius: radius}
}

// RectangularExtrusion создает брус сечением width x length вдоль line.
func RectangularExtrusion(width, length float64, line Line) Shape {
	return Shape{Kind: KindRectangularExtrusion, Line: line, Width: width, Length: length}
}

// WithMaterial возвращает копию фигуры с заданным материалом.
func (s Shape) WithMaterial(m Material) Shape {
	s.Material = &m
	return s
}

// Group - упорядоченный набор фигур, отдаваемый во view.
type Group struct {
	Shapes []Shape `json:"shapes" yaml:"shapes"`
}

// Add добавляет фигуры в конец группы.
func (g *Group) Add(shapes ...Shape) {
	g.Shapes = append(g.Shapes, shapes...)
}

// DataItem - пара "подпись - значение" для сводки.
type DataItem struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// DataGroup - упорядоченная сводка.
type DataGroup []DataItem

// Get возвращает значение по подписи.
func (d DataGroup) Get(label string) (string, bool) {
	for _, item := range d {
		if item.Label == label {
			return item.Value, true
		}
	}
	return "", false
}

func opacity(v float64) *float64 { return &v }
