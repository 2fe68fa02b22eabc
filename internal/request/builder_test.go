package request_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stadium-designer/internal/models"
	"stadium-designer/internal/request"
)

var testParams = models.DesignParameters{
	PitchWidth:      68,
	Offset:          2.5,
	Shape:           "Oval",
	Depth:           30,
	AsymmetryLength: 0.25,
	AsymmetryWidth:  0,
	Height:          12.75,
}

// writeAssets создает оба файла модели во временной директории.
func writeAssets(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, request.RhinoFilename), []byte{0x00, 0x01, 0x02}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, request.GrasshopperFilename), []byte("gh-definition"), 0644))
	return dir
}

func TestInputLine_FixedOrder(t *testing.T) {
	line := request.InputLine(testParams)

	assert.Equal(t, "68, 2.5, Oval, 30, 0.25, 0, 12.75", line)

	fields := strings.Split(line, ", ")
	require.Len(t, fields, 7)
	assert.Equal(t, "Oval", fields[2])
}

func TestInputLine_AlwaysSevenFields(t *testing.T) {
	for _, p := range []models.DesignParameters{
		{},
		{PitchWidth: -1.5, Shape: "Rectangle", Height: 1e-3},
		{PitchWidth: 100, Offset: 100, Shape: "Circle", Depth: 100, AsymmetryLength: 1, AsymmetryWidth: 1, Height: 100},
	} {
		assert.Len(t, strings.Split(request.InputLine(p), ","), 7, "params: %+v", p)
	}
}

func TestBuilder_Build(t *testing.T) {
	dir := writeAssets(t)

	bundle, err := request.NewBuilder(dir, nil).Build(testParams)
	require.NoError(t, err)

	assert.Equal(t, []string{"input.txt", "sample_app.3dm", "sample_app_gh.gh"}, bundle.Names())
	assert.Equal(t, "68, 2.5, Oval, 30, 0.25, 0, 12.75", string(bundle[0].Content))
	assert.Equal(t, []byte{0x00, 0x01, 0x02}, bundle[1].Content)
	assert.Equal(t, "gh-definition", string(bundle[2].Content))
}

func TestBuilder_Build_MissingAsset(t *testing.T) {
	dir := writeAssets(t)
	require.NoError(t, os.Remove(filepath.Join(dir, request.GrasshopperFilename)))

	bundle, err := request.NewBuilder(dir, nil).Build(testParams)

	assert.Nil(t, bundle)
	assert.ErrorIs(t, err, models.ErrAssetUnavailable)
	assert.ErrorContains(t, err, request.GrasshopperFilename)
}

func TestBuilder_Build_AssetIsDirectory(t *testing.T) {
	dir := writeAssets(t)
	rhinoPath := filepath.Join(dir, request.RhinoFilename)
	require.NoError(t, os.Remove(rhinoPath))
	require.NoError(t, os.Mkdir(rhinoPath, 0755))

	_, err := request.NewBuilder(dir, nil).Build(testParams)
	assert.ErrorIs(t, err, models.ErrAssetUnavailable)
}
