package utils

import (
	"hash/fnv"
	"math/rand"
)

// Rand - источник случайных чисел для симуляции.
// Float возвращает [0,1), Int - неотрицательное целое, CRandom - (-1,1).
type Rand interface {
	Float() float64
	Int() int
	CRandom() float64
}

// SeededRand - детерминированный генератор поверх math/rand.
// Один экземпляр на инстанс: симуляция однопоточная, блокировки не нужны.
type SeededRand struct {
	r *rand.Rand
}

func NewRand(seed int64) *SeededRand {
	return &SeededRand{r: rand.New(rand.NewSource(seed))}
}

func (s *SeededRand) Float() float64 {
	return s.r.Float64()
}

func (s *SeededRand) Int() int {
	return s.r.Int()
}

func (s *SeededRand) CRandom() float64 {
	return 2 * (s.r.Float64() - 0.5)
}

// Intn - удобная обёртка для генератора уровней.
func (s *SeededRand) Intn(n int) int {
	return s.r.Intn(n)
}

// StringToSeed превращает строку (имя игрока, имя карты) в сид.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}
