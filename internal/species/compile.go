package species

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/iiroka/netquake2-sub002/internal/domain"
)

var (
	ErrNoName        = errors.New("species has no name")
	ErrNoStand       = errors.New("species has no stand move")
	ErrBadBox        = errors.New("mins must be below maxs")
	ErrBadHealth     = errors.New("health must be positive")
	ErrUnknownMove   = errors.New("unknown move")
	ErrUnknownIntent = errors.New("unknown frame intent")
	ErrUnknownAction = errors.New("unknown frame action")
	ErrUnknownEnd    = errors.New("unknown move end")
	ErrUnknownSound  = errors.New("unknown sound slot")
	ErrBadLocomotion = errors.New("unknown locomotion")
	ErrEmptyMove     = errors.New("move has no frames")
	ErrDeathNeedsEnd = errors.New("death move must end with dead")
	ErrDuplicateName = errors.New("duplicate species")
)

// moveSlots - куда ложится таблица с данным именем.
var moveSlots = map[string]func(m *domain.SpeciesMoves) **domain.MoveTable{
	"stand":  func(m *domain.SpeciesMoves) **domain.MoveTable { return &m.Stand },
	"walk":   func(m *domain.SpeciesMoves) **domain.MoveTable { return &m.Walk },
	"run":    func(m *domain.SpeciesMoves) **domain.MoveTable { return &m.Run },
	"attack": func(m *domain.SpeciesMoves) **domain.MoveTable { return &m.Attack },
	"melee":  func(m *domain.SpeciesMoves) **domain.MoveTable { return &m.Melee },
	"pain":   func(m *domain.SpeciesMoves) **domain.MoveTable { return &m.Pain },
	"death":  func(m *domain.SpeciesMoves) **domain.MoveTable { return &m.Death },
}

var soundSlots = map[string]func(s *domain.SpeciesSounds) *domain.SoundIndex{
	"sight":  func(s *domain.SpeciesSounds) *domain.SoundIndex { return &s.Sight },
	"idle":   func(s *domain.SpeciesSounds) *domain.SoundIndex { return &s.Idle },
	"search": func(s *domain.SpeciesSounds) *domain.SoundIndex { return &s.Search },
	"pain":   func(s *domain.SpeciesSounds) *domain.SoundIndex { return &s.Pain },
	"death":  func(s *domain.SpeciesSounds) *domain.SoundIndex { return &s.Death },
	"gib":    func(s *domain.SpeciesSounds) *domain.SoundIndex { return &s.Gib },
	"melee":  func(s *domain.SpeciesSounds) *domain.SoundIndex { return &s.Melee },
	"fire":   func(s *domain.SpeciesSounds) *domain.SoundIndex { return &s.Fire },
	"step":   func(s *domain.SpeciesSounds) *domain.SoundIndex { return &s.Step },
}

var locomotions = map[string]domain.EntityFlags{
	"":     0,
	"walk": 0,
	"fly":  domain.FlagFly,
	"swim": domain.FlagSwim,
}

// compile превращает сырое описание в неизменяемый вид.
// Звуки интернируются в реестре.
func (r *Registry) compile(raw rawSpecies) (*domain.Species, error) {
	if raw.Name == "" {
		return nil, ErrNoName
	}
	wrap := func(err error) error {
		return fmt.Errorf("species %s: %w", raw.Name, err)
	}

	loco, ok := locomotions[strings.ToLower(raw.Locomotion)]
	if !ok {
		return nil, wrap(fmt.Errorf("%w %q", ErrBadLocomotion, raw.Locomotion))
	}
	if raw.Health <= 0 {
		return nil, wrap(ErrBadHealth)
	}
	mins, maxs := domain.Vec3(raw.Mins), domain.Vec3(raw.Maxs)
	for i := 0; i < 3; i++ {
		if mins[i] >= maxs[i] {
			return nil, wrap(ErrBadBox)
		}
	}

	sp := &domain.Species{
		Name:           raw.Name,
		Locomotion:     loco,
		Health:         raw.Health,
		GibHealth:      raw.GibHealth,
		Mass:           raw.Mass,
		Mins:           mins,
		Maxs:           maxs,
		YawSpeed:       raw.YawSpeed,
		ViewHeight:     raw.ViewHeight,
		Scale:          raw.Scale,
		MeleeDamage:    raw.MeleeDamage,
		MissileDamage:  raw.MissileDamage,
		MissileSpread:  raw.MissileSpread,
		Indiscriminate: raw.Indiscriminate,
	}
	if sp.Scale == 0 {
		sp.Scale = 1
	}

	// Порядок интернирования не должен зависеть от обхода map
	for _, slot := range slices.Sorted(maps.Keys(raw.Sounds)) {
		ref, ok := soundSlots[strings.ToLower(slot)]
		if !ok {
			return nil, wrap(fmt.Errorf("%w %q", ErrUnknownSound, slot))
		}
		*ref(&sp.Sounds) = r.internSound(raw.Sounds[slot])
	}

	for name, rm := range raw.Moves {
		ref, ok := moveSlots[strings.ToLower(name)]
		if !ok {
			return nil, wrap(fmt.Errorf("%w %q", ErrUnknownMove, name))
		}
		move, err := compileMove(strings.ToLower(name), rm)
		if err != nil {
			return nil, wrap(err)
		}
		*ref(&sp.Moves) = move
	}

	if sp.Moves.Stand == nil {
		return nil, wrap(ErrNoStand)
	}
	if d := sp.Moves.Death; d != nil && d.End != domain.EndDead {
		return nil, wrap(ErrDeathNeedsEnd)
	}
	return sp, nil
}

func compileMove(name string, rm rawMove) (*domain.MoveTable, error) {
	end, ok := domain.ParseEnd(rm.End)
	if !ok {
		return nil, fmt.Errorf("move %s: %w %q", name, ErrUnknownEnd, rm.End)
	}

	var frames []domain.Frame
	for i, rf := range rm.Frames {
		intent, ok := domain.ParseIntent(rf.AI)
		if !ok {
			return nil, fmt.Errorf("move %s frame %d: %w %q", name, i, ErrUnknownIntent, rf.AI)
		}
		action, ok := domain.ParseFrameAction(rf.Action)
		if !ok {
			return nil, fmt.Errorf("move %s frame %d: %w %q", name, i, ErrUnknownAction, rf.Action)
		}
		count := rf.Count
		if count <= 0 {
			count = 1
		}
		for n := 0; n < count; n++ {
			frames = append(frames, domain.Frame{Intent: intent, Dist: rf.Dist, Action: action})
		}
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("move %s: %w", name, ErrEmptyMove)
	}

	return &domain.MoveTable{
		Name:       name,
		FirstFrame: rm.First,
		LastFrame:  rm.First + len(frames) - 1,
		Frames:     frames,
		End:        end,
	}, nil
}
