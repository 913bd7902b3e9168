package errs

import "errors"

// Доменные ошибки ядра. Хэндлеры и gRPC-шлюзы сопоставляют их с кодами ответов
// через errors.Is, поэтому значения — сентинелы, а не типы.
var (
	// ErrRecordNotFound — целевая запись отсутствует в хранилище (исчезла между чтением и записью).
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidStatus — запрошенный статус не входит в workflow типа записи; запись в БД не выполняется.
	ErrInvalidStatus = errors.New("status not allowed for feedback type")

	// ErrUnknownWorkflow — тип фидбека вне закрытого множества; реестр падает громко, а не возвращает пустой список.
	ErrUnknownWorkflow = errors.New("unknown feedback type")

	// ErrStoreUnavailable — сбой сети/БД при чтении или записи; вызывающий сам решает, повторять ли.
	ErrStoreUnavailable = errors.New("record store unavailable")
)
