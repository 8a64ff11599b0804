package transcoder

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// svgDensity is the fixed rasterization density for vector sources, which
// have no intrinsic pixel size.
const svgDensity = "300"

// rasterizeSVG renders a vector source to PNG via ImageMagick at the fixed
// density. Conversion failure is fatal for the file.
func rasterizeSVG(data []byte) ([]byte, error) {
	key := uuid.NewString()
	inPath := filepath.Join(os.TempDir(), "content_pipeline."+key+".svg")
	outPath := filepath.Join(os.TempDir(), "content_pipeline."+key+".png")

	defer func() { _ = os.Remove(inPath) }()
	defer func() { _ = os.Remove(outPath) }()

	if err := os.WriteFile(inPath, data, 0o640); err != nil {
		return nil, fmt.Errorf("svg: error writing temp svg file: %w", err)
	}

	if err := exec.Command("convert", "-density", svgDensity, inPath, outPath).Run(); err != nil {
		return nil, fmt.Errorf("svg: error rasterizing svg file: %w", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("svg: error reading rasterized png: %w", err)
	}
	return out, nil
}
