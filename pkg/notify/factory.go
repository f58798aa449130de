package notify

import (
	"fmt"
	"io"

	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the notifier selected by NOTIFY_DRIVER. The returned closer
// releases broker connections.
func New(config *utils.Config, log *zap.Logger) (Notifier, io.Closer, error) {
	switch config.Notify.Driver {
	case utils.NotifyDriverResend:
		return NewResendNotifier(config.Email.APIKey, config.Email.BaseURL, config.Email.From, log), nopCloser{}, nil
	case utils.NotifyDriverAMQP:
		n, err := NewAMQPNotifier(config.AMQP.URL, config.AMQP.Exchange, log)
		if err != nil {
			return nil, nil, err
		}
		return n, n, nil
	case utils.NotifyDriverKafka:
		n := NewKafkaNotifier(config.Kafka.Brokers, config.Kafka.Topic, log)
		return n, n, nil
	case utils.NotifyDriverLog, "":
		return NewLogNotifier(log), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown notify driver %q", config.Notify.Driver)
	}
}
