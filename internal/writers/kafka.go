// internal/writers/kafka.go
package writers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Shopify/sarama"

	"hibf-hashing/internal/output"
	"hibf-hashing/pkg/api"
)

func init() { RegisterHit(output.FormatKafka, StartKafkaWriter) }

// NewKafkaProducer connects a synchronous producer that waits for all
// in-sync replicas. brokers is a comma separated host:port list.
func NewKafkaProducer(brokers string) (sarama.SyncProducer, error) {
	conf := sarama.NewConfig()
	conf.Producer.Return.Successes = true
	conf.Producer.RequiredAcks = sarama.WaitForAll

	list := strings.Split(brokers, ",")
	for i := range list {
		list[i] = strings.TrimSpace(list[i])
	}
	p, err := sarama.NewSyncProducer(list, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	return p, nil
}

// StartKafkaWriter publishes one JSON message per hit, keyed by read id.
// out is unused; the producer is not closed by the writer.
func StartKafkaWriter(_ io.Writer, opt Options) (chan<- api.HitV1, <-chan error) {
	if opt.Producer == nil || opt.Topic == "" {
		return failing(errors.New("kafka output needs a producer and a topic"), opt.BufSize)
	}
	in := make(chan api.HitV1, bufSizeOr(opt.BufSize))
	done := make(chan error, 1)
	go func() {
		var err error
		for h := range in {
			if err != nil {
				continue
			}
			var b []byte
			if b, err = json.Marshal(h); err != nil {
				continue
			}
			_, _, err = opt.Producer.SendMessage(&sarama.ProducerMessage{
				Topic: opt.Topic,
				Key:   sarama.StringEncoder(h.ID),
				Value: sarama.ByteEncoder(b),
			})
			if err != nil {
				err = fmt.Errorf("kafka: publish %q: %w", h.ID, err)
			}
		}
		done <- err
	}()
	return in, done
}
