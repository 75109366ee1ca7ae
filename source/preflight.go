package source

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PreflightReport summarizes a structural check of a PDF file.
type PreflightReport struct {
	Path      string
	PageCount int
}

// Preflight reads and validates the whole PDF structure and counts its
// pages.
func Preflight(path string) (*PreflightReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read and validate PDF: %w", err)
	}
	if ctx.PageCount == 0 {
		return nil, ErrNoPages
	}

	return &PreflightReport{
		Path:      path,
		PageCount: ctx.PageCount,
	}, nil
}
