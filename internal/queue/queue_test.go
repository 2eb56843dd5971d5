package queue

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/themepark/internal/model"
)

func TestTicketEventRoundTripsThroughHandleMessage(t *testing.T) {
	ticket := model.Ticket{
		ID:         "t1",
		UserID:     "u1",
		TicketDate: time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
		Type:       model.TicketFamily,
		Price:      model.FamilyTicketPrice,
		CreatedAt:  time.Date(2026, 6, 1, 12, 30, 0, 0, time.UTC),
	}
	ev := NewTicketPurchased(ticket)
	if ev.QueueName() != TicketPurchasedQueue {
		t.Errorf("QueueName = %q", ev.QueueName())
	}
	body, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	notice, err := HandleMessage(TicketPurchasedQueue, body)
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if notice.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", notice.UserID)
	}
	for _, want := range []string{"ticket_id=t1", "type=FAMILY", "date=2026-07-04", "price=120.00"} {
		if !strings.Contains(notice.Body, want) {
			t.Errorf("notice %q missing %q", notice.Body, want)
		}
	}
}

func TestBookingEventNotice(t *testing.T) {
	ev := NewBookingCreated(model.Booking{
		ID:          "b1",
		UserID:      "u1",
		BookingType: model.BookingPhotoSession,
		BookingDate: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Now(),
	})
	body, _ := json.Marshal(ev)
	notice, err := HandleMessage(BookingCreatedQueue, body)
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if notice.Subject != "booking confirmed" {
		t.Errorf("Subject = %q", notice.Subject)
	}
	if !strings.Contains(notice.Body, "activity=PHOTO_SESSION") || !strings.Contains(notice.Body, "date=2026-09-12") {
		t.Errorf("Body = %q", notice.Body)
	}
}

func TestHandleMessageRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		queue string
		body  string
	}{
		{"unknown queue", "orders.created", `{}`},
		{"bad json", TicketPurchasedQueue, `{`},
		{"missing ids", TicketPurchasedQueue, `{"type":"SINGLE"}`},
		{"booking missing ids", BookingCreatedQueue, `{"booking_type":"VIP_TOUR"}`},
	}
	for _, tc := range cases {
		if _, err := HandleMessage(tc.queue, []byte(tc.body)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestNopPublisher(t *testing.T) {
	if err := (NopPublisher{}).Publish(context.Background(), BookingCreatedEvent{}); err != nil {
		t.Errorf("Publish = %v", err)
	}
}

func TestSleepHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if sleep(ctx, time.Hour) {
		t.Error("sleep returned true on a cancelled context")
	}
	if !sleep(context.Background(), time.Millisecond) {
		t.Error("sleep returned false without cancellation")
	}
}

// silentBroker accepts connections and never answers the AMQP handshake.
func silentBroker(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		var conns []net.Conn
		defer func() {
			for _, c := range conns {
				_ = c.Close()
			}
		}()
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			conns = append(conns, c)
		}
	}()
	return "amqp://guest:guest@" + ln.Addr().String() + "/"
}

func TestPublishGivesUpOnSilentBroker(t *testing.T) {
	p := NewPublisher(silentBroker(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	p.timeout = 300 * time.Millisecond

	start := time.Now()
	err := p.Publish(context.Background(), BookingCreatedEvent{BookingID: "b1", UserID: "u1"})
	elapsed := time.Since(start)
	if err == nil {
		t.Fatal("Publish succeeded against a broker that never answered")
	}
	if elapsed > 5*time.Second {
		t.Errorf("Publish took %v, want it bounded by the publish timeout", elapsed)
	}
}

func TestPublishHonoursCallerDeadline(t *testing.T) {
	p := NewPublisher(silentBroker(t), slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	start := time.Now()
	if err := p.Publish(ctx, BookingCreatedEvent{BookingID: "b1", UserID: "u1"}); err == nil {
		t.Fatal("Publish succeeded against a broker that never answered")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Publish took %v, want it bounded by the caller's deadline", elapsed)
	}
}

func TestForwardStopsWhenLoopEnds(t *testing.T) {
	msgs := make(chan amqp.Delivery, 1)
	msgs <- amqp.Delivery{RoutingKey: TicketPurchasedQueue}
	merged := make(chan amqp.Delivery) // nobody reads
	done := make(chan struct{})

	finished := make(chan struct{})
	go func() {
		forward(msgs, merged, done)
		close(finished)
	}()
	close(done)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("forward still blocked after its loop ended")
	}
}
