package models

import "errors"

// Ошибки уровня приложения. Проверяются через errors.Is.
var (
	// ErrAssetUnavailable - не удалось прочитать один из файлов модели (3dm / gh).
	ErrAssetUnavailable = errors.New("bundled asset unavailable")
	// ErrAnalysisFailed - воркер вернул ошибку или недоступен.
	ErrAnalysisFailed = errors.New("analysis failed")
	// ErrAnalysisTimeout - воркер не ответил за отведенное время.
	ErrAnalysisTimeout = errors.New("analysis timed out")
	// ErrMalformedResult - output.txt не соответствует ожидаемому формату.
	ErrMalformedResult = errors.New("malformed analysis result")

	// General Request/Server Errors
	ErrInvalidInput   = errors.New("invalid input data")
	ErrInternalServer = errors.New("internal server error")
)
