package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type testSchedulerConfig struct {
	redisURL    string
	queue       string
	concurrency int
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return c.concurrency }

func TestNewClient_RequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected an error without a Redis URL")
	}
}

func TestNewClient_RejectsMalformedURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{redisURL: "not-a-url"}); err == nil {
		t.Fatal("expected an error for a malformed Redis URL")
	}
}

func TestClient_DispatchShoppingEnqueuesTask(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := testSchedulerConfig{redisURL: "redis://" + srv.Addr(), queue: "shopping"}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	requestID := uuid.New()
	if err := client.DispatchShopping(context.Background(), requestID); err != nil {
		t.Fatalf("DispatchShopping: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: srv.Addr()})
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks("shopping")
	if err != nil {
		t.Fatalf("ListPendingTasks: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(pending))
	}
	task := pending[0]
	if task.Type != TaskShopForContractors {
		t.Fatalf("unexpected task type %q", task.Type)
	}

	payload, err := ParseShopForContractorsPayload(asynq.NewTask(task.Type, task.Payload))
	if err != nil {
		t.Fatalf("ParseShopForContractorsPayload: %v", err)
	}
	if payload.MaintenanceRequestID != requestID.String() {
		t.Fatalf("expected request id %s, got %s", requestID, payload.MaintenanceRequestID)
	}
	if task.MaxRetry != 0 {
		t.Fatalf("shopping tasks must not retry, got max retry %d", task.MaxRetry)
	}
}

func TestShopForContractorsPayload_Roundtrip(t *testing.T) {
	task, err := NewShopForContractorsTask(ShopForContractorsPayload{MaintenanceRequestID: "abc"})
	if err != nil {
		t.Fatalf("NewShopForContractorsTask: %v", err)
	}
	if task.Type() != TaskShopForContractors {
		t.Fatalf("unexpected task type %q", task.Type())
	}

	payload, err := ParseShopForContractorsPayload(task)
	if err != nil {
		t.Fatalf("ParseShopForContractorsPayload: %v", err)
	}
	if payload.MaintenanceRequestID != "abc" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}
