// Package metrics содержит счётчики Prometheus для операций трекера.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// Результаты операций, используемые как значение метки result.
const (
	ResultOK           = "ok"
	ResultValidation   = "validation"
	ResultConflict     = "conflict"
	ResultUnauthorized = "unauthorized"
	ResultNotFound     = "not_found"
	ResultError        = "error"
)

// Metrics счётчик операций с метками operation и result.
type Metrics struct {
	operations *prometheus.CounterVec
}

// New создаёт счётчики и регистрирует их в reg. Для nil используется prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasktracker",
			Name:      "operations_total",
			Help:      "Number of tracker operations by result.",
		}, []string{"operation", "result"}),
	}
	reg.MustRegister(m.operations)
	return m
}

// Observe учитывает выполнение операции op с результатом err.
func (m *Metrics) Observe(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, Result(err)).Inc()
}

// Counter возвращает счётчик для пары operation/result. Используется в тестах.
func (m *Metrics) Counter(op, result string) prometheus.Counter {
	return m.operations.WithLabelValues(op, result)
}

// Result сводит ошибку к значению метки result.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, models.ErrValidation):
		return ResultValidation
	case errors.Is(err, models.ErrConflict):
		return ResultConflict
	case errors.Is(err, models.ErrInvalidCredentials):
		return ResultUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return ResultNotFound
	default:
		return ResultError
	}
}
