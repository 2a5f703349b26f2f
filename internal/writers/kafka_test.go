package writers

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"

	"hibf-hashing/pkg/api"
)

func TestKafkaWriterPublishesOnePerHit(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	for _, h := range sample {
		want := h.ID
		sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
			var got api.HitV1
			if err := json.Unmarshal(val, &got); err != nil {
				return err
			}
			if got.ID != want {
				return errors.New("unexpected id " + got.ID)
			}
			return nil
		})
	}

	in, done := StartHitWriter(nil, "kafka", Options{Producer: sp, Topic: "hits"})
	for _, h := range sample {
		in <- h
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("kafka writer: %v", err)
	}
	if err := sp.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestKafkaWriterReportsFailure(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	in, done := StartKafkaWriter(nil, Options{Producer: sp, Topic: "hits"})
	for _, h := range sample {
		in <- h // second message is drained, not sent
	}
	close(in)
	if err := <-done; !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("want ErrOutOfBrokers, got %v", err)
	}
	_ = sp.Close()
}

func TestKafkaWriterNeedsTopic(t *testing.T) {
	in, done := StartKafkaWriter(nil, Options{})
	close(in)
	if err := <-done; err == nil {
		t.Fatal("expected configuration error")
	}
}
