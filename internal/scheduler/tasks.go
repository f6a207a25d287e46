package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskShopForContractors = "maintenance.agent.shop"

type ShopForContractorsPayload struct {
	MaintenanceRequestID string `json:"maintenanceRequestId"`
}

func NewShopForContractorsTask(payload ShopForContractorsPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskShopForContractors, data), nil
}

func ParseShopForContractorsPayload(task *asynq.Task) (ShopForContractorsPayload, error) {
	var payload ShopForContractorsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ShopForContractorsPayload{}, err
	}
	return payload, nil
}
