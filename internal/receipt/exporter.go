package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
)

// DirExporter writes the receipt CSV of every completed order into Dir.
type DirExporter struct {
	Dir    string
	Logger *zap.Logger
}

// NewDirExporter creates dir if needed.
func NewDirExporter(dir string, logger *zap.Logger) (*DirExporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirExporter{Dir: dir, Logger: logger}, nil
}

func (e *DirExporter) ExportReceipt(_ context.Context, o models.Order) error {
	path := filepath.Join(e.Dir, Filename(o))
	if err := os.WriteFile(path, []byte(CSV(o)), 0o644); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}
	e.Logger.Info("receipt exported", zap.String("order_id", o.ID), zap.String("path", path))
	return nil
}

// LogExporter only records that a receipt was produced.
type LogExporter struct {
	Logger *zap.Logger
}

func (e LogExporter) ExportReceipt(_ context.Context, o models.Order) error {
	if e.Logger != nil {
		e.Logger.Info("receipt ready", zap.String("order_id", o.ID), zap.String("file", Filename(o)))
	}
	return nil
}
