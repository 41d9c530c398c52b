package email

import (
	"context"
	"fmt"

	"github.com/ashutosh1890/Air-Cargo-booking/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.StatusEvent) error {
	fmt.Printf("notify shipment %s: %s (%s -> %s, status %s)\n",
		event.RefID, event.Type, event.Origin, event.Destination, event.Status)
	return nil
}
