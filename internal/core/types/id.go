package types

import (
	"fmt"
	"strconv"
)

// EntityID - 64-битный дескриптор слота в пуле сущностей.
//
// Ссылки между сущностями (враг, цель движения, опора под ногами) хранятся
// как EntityID, а не как указатели: слоты пула переиспользуются, и перед
// разыменованием пул сверяет поколение дескриптора с поколением слота.
//
// Формат битов (от старших к младшим):
//
//	[ Kind (8) | Generation (24) | Index (32) ]
//
// Где:
//   - Kind - вид сущности на момент выдачи (enums.EntityKind)
//   - Generation - версия слота; растёт при каждой новой выдаче
//   - Index - номер слота в пуле
//
// Живой дескриптор всегда имеет Generation >= 1, поэтому
// NilEntityID никогда не совпадает с настоящей сущностью (даже с миром в слоте 0).
type EntityID uint64

// NilEntityID - отсутствие ссылки.
const NilEntityID EntityID = 0

const (
	bitsIndex = 32
	bitsGen   = 24
	bitsKind  = 8

	shiftGen  = bitsIndex
	shiftKind = bitsIndex + bitsGen

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
	maskKind  = (1 << bitsKind) - 1
)

// MaxGeneration - после него поколение слота оборачивается в 1.
const MaxGeneration = maskGen

// PackEntityID собирает EntityID из составных частей.
// Значения вне диапазона обрезаются масками.
func PackEntityID(kind uint8, gen uint32, index uint32) EntityID {
	return EntityID(
		(uint64(kind)&maskKind)<<shiftKind |
			(uint64(gen)&maskGen)<<shiftGen |
			uint64(index),
	)
}

// Index возвращает номер слота.
func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation возвращает поколение слота, для которого выдан дескриптор.
func (id EntityID) Generation() uint32 {
	return uint32((id >> shiftGen) & maskGen)
}

// Kind возвращает вид сущности.
func (id EntityID) Kind() uint8 {
	return uint8((id >> shiftKind) & maskKind)
}

func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// NextGeneration возвращает поколение, которое получит слот при следующей выдаче.
func NextGeneration(gen uint32) uint32 {
	if gen >= MaxGeneration {
		return 1
	}
	return gen + 1
}

// String - для логов и отладки.
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("#%d.%d(k%d)", id.Index(), id.Generation(), id.Kind())
}

// MarshalJSON сериализует EntityID строкой: JavaScript не держит uint64 без потерь.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает и строку, и число.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*id = NilEntityID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*id = EntityID(v)
	return nil
}
