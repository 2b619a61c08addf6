package queries

import (
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

func toKernelUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toKernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := toKernelUUID(*id)
	if err != nil {
		return nil, err
	}
	return &k, nil
}
