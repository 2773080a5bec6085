// Package species загружает описания видов монстров из YAML и превращает их
// в неизменяемые domain.Species. Все особи вида делят одни и те же таблицы.
package species

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Registry - загруженные виды и таблица звуков.
// После загрузки только читается, поэтому безопасен для общего доступа.
type Registry struct {
	species  map[string]*domain.Species
	sounds   []string
	soundIdx map[string]domain.SoundIndex
}

// NewRegistry создаёт пустой реестр. Нулевой звук зарезервирован под "нет звука".
func NewRegistry() *Registry {
	return &Registry{
		species:  make(map[string]*domain.Species),
		sounds:   []string{""},
		soundIdx: map[string]domain.SoundIndex{"": 0},
	}
}

// LoadDir читает все *.yaml из каталога на диске.
func LoadDir(dir string) (*Registry, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS читает все *.yaml / *.yml из каталога dir файловой системы fsys.
func LoadFS(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read species dir: %w", err)
	}

	r := NewRegistry()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if err := r.Add(data); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	logger.Component("species").WithFields(logrus.Fields{
		"species": len(r.species),
		"sounds":  len(r.sounds) - 1,
	}).Info("Species loaded")
	return r, nil
}

// Add разбирает одно YAML-описание и регистрирует вид.
func (r *Registry) Add(data []byte) error {
	var raw rawSpecies
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse species: %w", err)
	}
	sp, err := r.compile(raw)
	if err != nil {
		return err
	}
	if _, dup := r.species[sp.Name]; dup {
		return fmt.Errorf("%w %q", ErrDuplicateName, sp.Name)
	}
	r.species[sp.Name] = sp
	return nil
}

// Get возвращает вид по имени.
func (r *Registry) Get(name string) (*domain.Species, bool) {
	sp, ok := r.species[name]
	return sp, ok
}

// Names - имена видов по алфавиту.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.species))
	for name := range r.species {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// SoundName - имя звука по индексу; "" для нуля и неизвестных индексов.
func (r *Registry) SoundName(idx domain.SoundIndex) string {
	if int(idx) >= len(r.sounds) {
		return ""
	}
	return r.sounds[idx]
}

// Sounds - таблица звуков, индекс в срезе равен domain.SoundIndex.
func (r *Registry) Sounds() []string {
	return slices.Clone(r.sounds)
}

func (r *Registry) internSound(name string) domain.SoundIndex {
	if idx, ok := r.soundIdx[name]; ok {
		return idx
	}
	idx := domain.SoundIndex(len(r.sounds))
	r.sounds = append(r.sounds, name)
	r.soundIdx[name] = idx
	return idx
}
