package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"stadium-designer/internal/models"
)

// ParseError описывает, где именно output.txt не соответствует формату.
// Line - номер строки документа (с 1), Group - номер группы точки (с 1), 0 если не применимо.
type ParseError struct {
	Line  int
	Group int
	Err   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(models.ErrMalformedResult.Error())
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Group > 0 {
		fmt.Fprintf(&b, ": point group %d", e.Group)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

// Unwrap позволяет errors.Is находить как ErrMalformedResult, так и исходную причину.
func (e *ParseError) Unwrap() []error {
	return []error{models.ErrMalformedResult, e.Err}
}

// ParsePoint разбирает строку вида "x,y,z" (пробелы вокруг чисел допускаются).
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Point{}, fmt.Errorf("expected 3 coordinates, got %d in %q", len(parts), s)
	}
	var coords [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Point{}, fmt.Errorf("coordinate %d: %w", i+1, err)
		}
		coords[i] = v
	}
	return Point{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// ParseTriangle разбирает строку вида "{x,y,z},{x,y,z},{x,y,z}" в три вершины.
func ParseTriangle(s string) ([3]Point, error) {
	var pts [3]Point

	groups, err := splitGroups(strings.TrimSpace(s))
	if err != nil {
		return pts, &ParseError{Err: err}
	}
	if len(groups) != 3 {
		return pts, &ParseError{Err: fmt.Errorf("expected 3 point groups, got %d", len(groups))}
	}
	for i, g := range groups {
		p, err := ParsePoint(g)
		if err != nil {
			return pts, &ParseError{Group: i + 1, Err: err}
		}
		pts[i] = p
	}
	return pts, nil
}

// splitGroups режет строку на содержимое фигурных скобок: "{a},{b}" -> ["a", "b"].
// Между группами допускается только запятая (и пробелы вокруг нее).
func splitGroups(s string) ([]string, error) {
	if s == "" {
		return nil, errors.New("empty triangle descriptor")
	}

	var groups []string
	i := 0
	for {
		if s[i] != '{' {
			return nil, fmt.Errorf("expected '{' at offset %d, got %q", i, s[i])
		}
		end := strings.IndexByte(s[i+1:], '}')
		if end < 0 {
			return nil, fmt.Errorf("unterminated point group starting at offset %d", i)
		}
		groups = append(groups, s[i+1:i+1+end])
		i += end + 2

		i = skipSpaces(s, i)
		if i == len(s) {
			return groups, nil
		}
		if s[i] != ',' {
			return nil, fmt.Errorf("expected ',' at offset %d, got %q", i, s[i])
		}
		i = skipSpaces(s, i+1)
		if i == len(s) {
			return nil, errors.New("trailing ',' after last point group")
		}
	}
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}
