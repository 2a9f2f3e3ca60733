package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type RunID string

func NewRunID() RunID {
	return RunID(uuid.NewString())
}

func (x RunID) String() string {
	return string(x)
}

type RequestID string

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

type AWSSecretKey string

func (x AWSSecretKey) String() string {
	return "***********"
}

func (x AWSSecretKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}
