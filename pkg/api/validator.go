package api

import "errors"

// Пределы команд игрока.
const (
	MaxNameLength = 32
	MaxStepDist   = 64
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p InitPayload) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("name too long")
	}
	return nil
}

func (p MovePayload) Validate() error {
	if p.Dist <= 0 {
		return errors.New("movement distance must be positive")
	}
	if p.Dist > MaxStepDist {
		return errors.New("movement step too large")
	}
	return nil
}

func (p AimPayload) Validate() error {
	if p.Pitch < -90 || p.Pitch > 90 {
		return errors.New("pitch out of range")
	}
	return nil
}

func (p NoisePayload) Validate() error {
	if p.Kind != "self" && p.Kind != "impact" {
		return errors.New("noise kind must be self or impact")
	}
	return nil
}

func (p SpawnPayload) Validate() error {
	if p.Species == "" {
		return errors.New("species is required")
	}
	if p.Dist < 0 {
		return errors.New("spawn distance must not be negative")
	}
	return nil
}

func (p KillPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	return nil
}
