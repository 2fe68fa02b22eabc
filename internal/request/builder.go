package request

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"stadium-designer/internal/models"
)

// Имена файлов, которые ожидает Grasshopper-воркер.
const (
	InputFilename       = "input.txt"
	RhinoFilename       = "sample_app.3dm"
	GrasshopperFilename = "sample_app_gh.gh"
)

// File - именованный файл для отправки воркеру.
type File struct {
	Name    string
	Content []byte
}

// Bundle - упорядоченный набор файлов: input.txt, затем два файла модели.
type Bundle []File

// Names возвращает имена файлов в порядке отправки.
func (b Bundle) Names() []string {
	names := make([]string, len(b))
	for i, f := range b {
		names[i] = f.Name
	}
	return names
}

// InputLine сериализует параметры в одну строку через ", " в фиксированном порядке:
// ширина поля, отступ, форма, глубина, асимметрия по длине, асимметрия по ширине, высота.
// Экранирования нет: запятая внутри Shape сломает формат.
func InputLine(p models.DesignParameters) string {
	fields := []string{
		formatNumber(p.PitchWidth),
		formatNumber(p.Offset),
		p.Shape,
		formatNumber(p.Depth),
		formatNumber(p.AsymmetryLength),
		formatNumber(p.AsymmetryWidth),
		formatNumber(p.Height),
	}
	return strings.Join(fields, ", ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Builder собирает Bundle из параметров и файлов модели, лежащих в assetsDir.
type Builder struct {
	assetsDir string
	logger    *zap.Logger
}

// NewBuilder создает новый Builder.
func NewBuilder(assetsDir string, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		assetsDir: assetsDir,
		logger:    logger.Named("RequestBuilder"),
	}
}

// Build читает оба файла модели и возвращает Bundle.
// Ошибка чтения любого из файлов оборачивает models.ErrAssetUnavailable.
func (b *Builder) Build(p models.DesignParameters) (Bundle, error) {
	rhino, err := b.readAsset(RhinoFilename)
	if err != nil {
		return nil, err
	}
	grasshopper, err := b.readAsset(GrasshopperFilename)
	if err != nil {
		return nil, err
	}

	input := InputLine(p)
	b.logger.Debug("Submission bundle assembled",
		zap.String("input", input),
		zap.Int("rhino_bytes", len(rhino)),
		zap.Int("grasshopper_bytes", len(grasshopper)),
	)

	return Bundle{
		{Name: InputFilename, Content: []byte(input)},
		{Name: RhinoFilename, Content: rhino},
		{Name: GrasshopperFilename, Content: grasshopper},
	}, nil
}

func (b *Builder) readAsset(name string) ([]byte, error) {
	path := filepath.Join(b.assetsDir, name)

	f, err := os.Open(path)
	if err != nil {
		b.logger.Error("Failed to open asset", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", models.ErrAssetUnavailable, name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		b.logger.Error("Failed to read asset", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", models.ErrAssetUnavailable, name, err)
	}
	return data, nil
}
