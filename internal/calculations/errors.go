package calculations

import "errors"

var (
	// ErrDivisionByZero возвращается, когда знаменатель (прибыль, дни, доход за период) равен нулю
	ErrDivisionByZero = errors.New("division by zero")
	// ErrIndexOutOfRange возвращается для счетчика разведений за пределами таблицы стоимости
	ErrIndexOutOfRange = errors.New("breed count out of range")
	// ErrInvalidArgument - отрицательные количества, цены, нулевой период и т.п.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidAmount - отрицательная сумма при конвертации
	ErrInvalidAmount = errors.New("invalid amount")
)
