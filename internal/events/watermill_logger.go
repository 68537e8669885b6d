package events

import (
	"github.com/ThreeDotsLabs/watermill"

	"github.com/leaseflow/leaseflow/internal/logger"
)

// watermillAdapter bridges watermill's logging interface onto our logger
type watermillAdapter struct {
	logger *logger.Logger
	fields watermill.LogFields
}

func newWatermillAdapter(log *logger.Logger) watermill.LoggerAdapter {
	return &watermillAdapter{logger: log}
}

func (a *watermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.logger.Errorw(msg, a.kv(fields.Add(watermill.LogFields{"error": err}))...)
}

func (a *watermillAdapter) Info(msg string, fields watermill.LogFields) {
	a.logger.Infow(msg, a.kv(fields)...)
}

func (a *watermillAdapter) Debug(msg string, fields watermill.LogFields) {
	a.logger.Debugw(msg, a.kv(fields)...)
}

func (a *watermillAdapter) Trace(msg string, fields watermill.LogFields) {
	a.logger.Debugw(msg, a.kv(fields)...)
}

func (a *watermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillAdapter{logger: a.logger, fields: a.fields.Add(fields)}
}

func (a *watermillAdapter) kv(fields watermill.LogFields) []interface{} {
	merged := a.fields.Add(fields)
	out := make([]interface{}, 0, len(merged)*2)
	for k, v := range merged {
		out = append(out, k, v)
	}
	return out
}
