package kafka

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
	Topic string   `envconfig:"KAFKA_RENTAL_TOPIC" default:"rental-events"`
}

// RentalEvent is the record left on the event stream after each lifecycle
// operation commits. Notification dispatch is somebody else's job; we only
// publish the facts.
type RentalEvent struct {
	EventID         string    `json:"eventId"`
	Operation       string    `json:"operation"`
	RentalID        int64     `json:"rentalId"`
	VehicleID       int64     `json:"vehicleId"`
	RenterID        int64     `json:"renterId"`
	TotalHarga      int64     `json:"totalHarga"`
	Denda           int64     `json:"denda,omitempty"`
	LatenessMinutes int64     `json:"latenessMinutes,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

// Publisher pushes rental events to a single topic.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPublisher(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *Publisher) Publish(ev RentalEvent) error {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: p.topic, Value: sarama.StringEncoder(data)}
	if _, _, err = p.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}
