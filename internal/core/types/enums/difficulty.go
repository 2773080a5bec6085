package enums

import "strings"

// Difficulty - уровень сложности сервера.
type Difficulty uint8

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
	DifficultyHardPlus
)

var difficultyToString = map[Difficulty]string{
	DifficultyEasy:     "easy",
	DifficultyMedium:   "medium",
	DifficultyHard:     "hard",
	DifficultyHardPlus: "hardplus",
}

func (d Difficulty) String() string {
	if val, ok := difficultyToString[d]; ok {
		return val
	}
	return "unknown"
}

// ParseDifficulty принимает имя ("hard") или номер ("2").
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range difficultyToString {
		if name == s {
			return d, true
		}
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '3' {
		return Difficulty(s[0] - '0'), true
	}
	return DifficultyMedium, false
}

// UnmarshalText позволяет писать сложность строкой в TOML.
func (d *Difficulty) UnmarshalText(text []byte) error {
	v, ok := ParseDifficulty(string(text))
	if !ok {
		return &ParseError{Kind: "difficulty", Value: string(text)}
	}
	*d = v
	return nil
}

// ParseError - неизвестное значение перечисления в конфиге.
type ParseError struct {
	Kind  string
	Value string
}

func (e *ParseError) Error() string {
	return "unknown " + e.Kind + ": " + e.Value
}
