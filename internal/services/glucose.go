package services

import (
	"context"
	"strings"

	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Glucose bounds and status thresholds, mmol/L
const (
	GlucoseMin       = 1.0
	GlucoseMax       = 30.0
	GlucoseLowBelow  = 4.0
	GlucoseHighAbove = 7.8
)

// GlucoseStatus classifies a reading. 4.0 and 7.8 themselves are Normal.
func GlucoseStatus(value float64) string {
	if value < GlucoseLowBelow {
		return models.GlucoseLow
	}
	if value > GlucoseHighAbove {
		return models.GlucoseHigh
	}
	return models.GlucoseNormal
}

// GlucoseInput is the create and update payload for a glucose reading
type GlucoseInput struct {
	Value *types.FlexFloat64 `json:"value"`
	Time  *types.FlexTime    `json:"time"`
	Notes *string            `json:"notes"`
}

func checkGlucoseValue(v *types.ValidationError, value float64) {
	if !(value >= GlucoseMin && value <= GlucoseMax) {
		v.Add("value", "Glucose value must be between 1 and 30 mmol/L")
	}
}

// GlucoseSchema is the resource schema for glucose readings
func GlucoseSchema() Schema[models.GlucoseRecord, GlucoseInput, GlucoseInput] {
	return Schema[models.GlucoseRecord, GlucoseInput, GlucoseInput]{
		Name:  "Glucose record",
		Order: "time desc, id desc",

		Build: func(in GlucoseInput) (models.GlucoseRecord, error) {
			v := &types.ValidationError{}
			if in.Value == nil {
				v.Missing("value")
			} else {
				checkGlucoseValue(v, in.Value.Float64())
			}
			if in.Time == nil || in.Time.Time().IsZero() {
				v.Missing("time")
			}
			if err := v.Err(); err != nil {
				return models.GlucoseRecord{}, err
			}

			rec := models.GlucoseRecord{
				Value: in.Value.Float64(),
				Time:  in.Time.Time(),
			}
			if in.Notes != nil {
				rec.Notes = strings.TrimSpace(*in.Notes)
			}
			rec.Status = GlucoseStatus(rec.Value)
			return rec, nil
		},

		Check: func(in GlucoseInput) error {
			v := &types.ValidationError{}
			if in.Value != nil {
				checkGlucoseValue(v, in.Value.Float64())
			}
			if in.Time != nil && in.Time.Time().IsZero() {
				v.Missing("time")
			}
			return v.Err()
		},

		Apply: func(rec *models.GlucoseRecord, in GlucoseInput) {
			if in.Value != nil {
				rec.Value = in.Value.Float64()
				rec.Status = GlucoseStatus(rec.Value)
			}
			if in.Time != nil {
				rec.Time = in.Time.Time()
			}
			if in.Notes != nil {
				rec.Notes = strings.TrimSpace(*in.Notes)
			}
		},
	}
}

// RestoreResult reports what RestoreGlucose did
type RestoreResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// RestoreGlucose re-imports backed up readings, skipping any whose value, time and notes
// already match a stored record. The import is all-or-nothing.
func RestoreGlucose(ctx context.Context, db *gorm.DB, items []GlucoseInput) (RestoreResult, error) {
	var result RestoreResult
	build := GlucoseSchema().Build

	records := make([]models.GlucoseRecord, 0, len(items))
	for _, item := range items {
		rec, err := build(item)
		if err != nil {
			return result, err
		}
		records = append(records, rec)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range records {
			rec := &records[i]
			var count int64
			err := tx.Model(&models.GlucoseRecord{}).
				Where("value = ? AND time = ? AND notes = ?", rec.Value, rec.Time, rec.Notes).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				result.Skipped++
				continue
			}
			if err := tx.Create(rec).Error; err != nil {
				return err
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		return RestoreResult{}, errors.Wrap(err, "failed to restore glucose records")
	}

	return result, nil
}
