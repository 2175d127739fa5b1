package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	serrors "github.com/matzehuels/sunburst/pkg/errors"
)

const rsvgConvert = "rsvg-convert"

const installHint = "install librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)"

// Available reports whether rsvg-convert is on PATH.
func Available() bool {
	_, err := exec.LookPath(rsvgConvert)
	return err == nil
}

// ToPDF converts a standalone SVG document to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf", 1)
}

// ToPNG converts a standalone SVG document to PNG. scale multiplies the
// SVG's width and height; values <= 0 mean 1.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return convert(ctx, svg, "png", scale)
}

// convert pipes svg through rsvg-convert. A missing binary is reported as
// UNSUPPORTED so the HTTP API answers 501 rather than 500.
func convert(ctx context.Context, svg []byte, format string, scale float64) ([]byte, error) {
	bin, err := exec.LookPath(rsvgConvert)
	if err != nil {
		return nil, serrors.New(serrors.ErrCodeUnsupported, "%s output needs %s: %s", format, rsvgConvert, installHint)
	}
	if scale <= 0 {
		scale = 1
	}

	cmd := exec.CommandContext(ctx, bin, "--format", format, "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s: %w: %s", rsvgConvert, err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%s: empty %s output", rsvgConvert, format)
	}
	return stdout.Bytes(), nil
}
