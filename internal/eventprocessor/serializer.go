// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package eventprocessor

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"

	"github.com/tomtom215/meridian/internal/recommend"
)

// Metadata keys set on task messages.
const (
	metadataUserID   = "user_id"
	metadataItemType = "item_type"
)

// NewTaskMessage encodes task as a Watermill message. The task correlation id
// becomes the message correlation id.
func NewTaskMessage(task *recommend.AnalysisTask) (*message.Message, error) {
	if task.UserID == "" || !task.ItemType.Valid() {
		return nil, fmt.Errorf("%w: user id and a known item type are required", ErrMalformedTask)
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis task: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(metadataUserID, task.UserID)
	msg.Metadata.Set(metadataItemType, string(task.ItemType))
	if task.CorrelationID != "" {
		middleware.SetCorrelationID(task.CorrelationID, msg)
	}
	return msg, nil
}

// DecodeTask reads a task from msg. A missing correlation id in the payload is
// taken from the message metadata.
func DecodeTask(msg *message.Message) (*recommend.AnalysisTask, error) {
	var task recommend.AnalysisTask
	if err := json.Unmarshal(msg.Payload, &task); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTask, err)
	}
	if task.UserID == "" || !task.ItemType.Valid() {
		return nil, fmt.Errorf("%w: user id and a known item type are required", ErrMalformedTask)
	}
	if task.CorrelationID == "" {
		task.CorrelationID = middleware.MessageCorrelationID(msg)
	}
	return &task, nil
}
