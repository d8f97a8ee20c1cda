package schedule

import "errors"

var (
	// ErrClosedDayNotFound возвращается, когда закрытая дата не найдена
	ErrClosedDayNotFound = errors.New("closed day not found")

	// ErrClosedDayExists возвращается при попытке повторно закрыть дату
	ErrClosedDayExists = errors.New("date is already closed")

	// ErrInvalidWeekday возвращается при дне недели вне диапазона 0..6
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Monday) and 6 (Sunday)")

	// ErrDuplicateWeekday возвращается, когда на день недели задано больше одного правила
	ErrDuplicateWeekday = errors.New("duplicate weekday in schedule")

	// ErrInvalidTimeRange возвращается, когда время открытия не раньше времени закрытия
	ErrInvalidTimeRange = errors.New("open time must be before close time")

	// ErrMissingTimes возвращается, когда у открытого дня не заданы часы работы
	ErrMissingTimes = errors.New("open and close times are required for a working day")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
