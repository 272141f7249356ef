package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/nutrition"
	"go.uber.org/zap"
)

const exportURLTTL = 15 * time.Minute

// ExportResult is either a link to the stored file or the file itself.
type ExportResult struct {
	Key      string `json:"key,omitempty"`
	URL      string `json:"url,omitempty"`
	Filename string `json:"filename"`
	CSV      []byte `json:"-"`
}

// ExportService renders a day's log as CSV and stores it when an object
// store is configured.
type ExportService struct {
	logs  ILogService
	store ObjectStore
	log   *zap.Logger
}

var _ IExportService = (*ExportService)(nil)

// NewExportService creates the service. A nil store returns CSV bytes
// directly.
func NewExportService(logs ILogService, store ObjectStore, log *zap.Logger) *ExportService {
	return &ExportService{logs: logs, store: store, log: log}
}

func (s *ExportService) Export(ctx context.Context, userID uuid.UUID, date string) (*ExportResult, error) {
	l, err := s.logs.GetLog(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	data, err := RenderCSV(l)
	if err != nil {
		return nil, err
	}

	res := &ExportResult{Filename: fmt.Sprintf("calorix-%s.csv", date), CSV: data}
	if s.store == nil {
		return res, nil
	}

	key := fmt.Sprintf("exports/%s/%s.csv", userID, date)
	if err := s.store.Put(ctx, key, data, "text/csv"); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}
	url, err := s.store.GeneratePresignedURL(ctx, key, exportURLTTL)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}
	s.log.Info("day exported", zap.String("user_id", userID.String()), zap.String("key", key))
	res.Key = key
	res.URL = url
	res.CSV = nil
	return res, nil
}

var csvHeader = []string{"meal", "food", "serving", "calories", "protein_g", "carbs_g", "fat_g"}

// RenderCSV writes one row per item, then a water row and a totals row.
func RenderCSV(l model.DailyLog) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write export csv header: %w", err)
	}
	for _, m := range l.Meals {
		for _, f := range m.Items {
			row := []string{m.Name, f.Name, f.ServingSize, num(f.Calories), num(f.Protein), num(f.Carbs), num(f.Fat)}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("write export csv row: %w", err)
			}
		}
	}
	t := nutrition.DailyTotals(l)
	tail := [][]string{
		{"water_ml", "", "", num(l.WaterIntake), "", "", ""},
		{"total", "", "", num(t.Calories), num(t.Protein), num(t.Carbs), num(t.Fat)},
	}
	if err := w.WriteAll(tail); err != nil {
		return nil, fmt.Errorf("write export csv totals: %w", err)
	}
	return buf.Bytes(), nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
