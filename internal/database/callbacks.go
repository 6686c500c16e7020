package database

import (
	"time"

	"gorm.io/gorm"
)

const startTimeKey = "metrics:start_time"

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
}

// RegisterMetricsCallbacks registers GORM callbacks that time every query,
// insert, update and delete and hand the result to recorder.
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) error {
	cb := db.Callback()

	if err := cb.Query().Before("gorm:query").Register("metrics:query_before", markStart); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("metrics:query_after", recordWith(recorder, "select")); err != nil {
		return err
	}
	if err := cb.Create().Before("gorm:create").Register("metrics:create_before", markStart); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("metrics:create_after", recordWith(recorder, "insert")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("metrics:update_before", markStart); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("metrics:update_after", recordWith(recorder, "update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("metrics:delete_before", markStart); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("metrics:delete_after", recordWith(recorder, "delete"))
}

func markStart(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func recordWith(recorder MetricsRecorder, operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		startTime, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(startTime.(time.Time)), db.Error)
	}
}
