package schedule

import "errors"

var (
	// ErrClosedDayNotFound возвращается, когда закрытый день не найден
	ErrClosedDayNotFound = errors.New("schedule.repository: closed day not found")

	// ErrClosedDayExists возвращается при попытке повторно закрыть дату
	ErrClosedDayExists = errors.New("schedule.repository: closed day already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
