package notifier

import "errors"

var (
	// ErrEncode возвращается, если событие не удалось сериализовать
	ErrEncode = errors.New("notifier: failed to encode event")

	// ErrPublish возвращается, если событие не удалось отправить в Kafka
	ErrPublish = errors.New("notifier: failed to publish event")

	// ErrInternal возвращается при внутренних ошибках webhook клиента
	ErrInternal = errors.New("notifier webhook: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе нотификатора
	ErrInvalidResponse = errors.New("notifier webhook: invalid response")
)
