package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

func (r *Registry) observeRegistration(operation string, changed bool, err error, fields map[string]any) {
	if r == nil {
		return
	}
	operation = normalizeOperation(operation)
	status := "unchanged"
	switch {
	case err != nil:
		status = "failure"
	case changed:
		status = "success"
	}

	contextFields := cloneFields(fields)
	contextFields["event_type"] = operation
	contextFields["status"] = status
	if err != nil {
		contextFields["error"] = err.Error()
	}

	ctx := context.Background()
	r.recordCounter(ctx, MetricRegistration, 1, map[string]string{
		"operation": operation,
		"status":    status,
	})

	if err != nil {
		r.logError(ctx, operation+" failed", contextFields)
		return
	}
	r.logDebug(ctx, operation+" applied", contextFields)
}

func (r *Registry) observeRebuild(snapshot BaseConfiguration, startedAt time.Time) {
	ctx := context.Background()
	r.recordCounter(ctx, MetricSnapshotRebuild, 1, nil)
	r.logDebug(ctx, "base configuration rebuilt", map[string]any{
		"event_type":  "snapshot_rebuild",
		"version":     snapshot.Version,
		"fingerprint": fmt.Sprintf("%016x", snapshot.Fingerprint),
		"duration_ms": time.Since(startedAt).Milliseconds(),
	})
}

func (r *Registry) observeConnectorBuild(startedAt time.Time, properties int, strategies int) {
	ctx := context.Background()
	tags := map[string]string{"operation": "build_connector_config"}
	r.recordCounter(ctx, MetricConnectorBuild, 1, tags)
	r.recordHistogram(ctx, MetricConnectorDuration, float64(time.Since(startedAt).Milliseconds()), tags)
	r.logDebug(ctx, "connector config built", map[string]any{
		"event_type": "build_connector_config",
		"properties": properties,
		"strategies": strategies,
	})
}

func (r *Registry) logDebug(ctx context.Context, message string, fields map[string]any) {
	r.logWithLevel(ctx, "debug", message, fields)
}

func (r *Registry) logInfo(ctx context.Context, message string, fields map[string]any) {
	r.logWithLevel(ctx, "info", message, fields)
}

func (r *Registry) logWarn(ctx context.Context, message string, fields map[string]any) {
	r.logWithLevel(ctx, "warn", message, fields)
}

func (r *Registry) logError(ctx context.Context, message string, fields map[string]any) {
	r.logWithLevel(ctx, "error", message, fields)
}

func (r *Registry) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if r == nil || r.logger == nil {
		return
	}
	logger := r.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		logger.Error(message, args...)
	case "warn":
		logger.Warn(message, args...)
	case "debug":
		logger.Debug(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (r *Registry) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if r == nil || r.metricsRecorder == nil {
		return
	}
	r.metricsRecorder.IncCounter(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func (r *Registry) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if r == nil || r.metricsRecorder == nil {
		return
	}
	r.metricsRecorder.ObserveHistogram(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}

func normalizeOperation(operation string) string {
	operation = strings.TrimSpace(strings.ToLower(operation))
	operation = strings.ReplaceAll(operation, " ", "_")
	operation = strings.ReplaceAll(operation, "-", "_")
	if operation == "" {
		return "unknown"
	}
	return operation
}
