package metrics

import (
	"database/sql"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// RecordDBQuery records database query metrics
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = strings.ToLower(operation)
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}

// RegisterDBStats exposes connection pool statistics. Values are read from
// sqlDB on every scrape, so nothing runs between scrapes.
func (m *Metrics) RegisterDBStats(sqlDB *sql.DB, dbName string) {
	if m.registerer == nil || sqlDB == nil {
		return
	}
	if err := m.registerer.Register(collectors.NewDBStatsCollector(sqlDB, dbName)); err != nil {
		m.logger.Warn("Failed to register database stats collector", zap.Error(err))
	}
}
