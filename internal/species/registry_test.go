package species

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/iiroka/netquake2-sub002/assets"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

const gruntYAML = `
name: grunt
health: 20
gib_health: -40
mins: [-16, -16, -24]
maxs: [16, 16, 32]
sounds:
  sight: grunt/sight.wav
  pain: grunt/pain.wav
  gib: misc/udeath.wav
moves:
  stand:
    first: 0
    frames:
      - {ai: stand, count: 3}
      - {ai: stand, action: idle}
  attack:
    first: 10
    end: run
    frames:
      - {ai: charge, count: 2}
      - {ai: charge, action: fire}
  death:
    first: 20
    end: dead
    frames:
      - {ai: move, dist: -5}
      - {ai: move}
`

const scoutYAML = `
name: scout
locomotion: fly
health: 10
mins: [-8, -8, -8]
maxs: [8, 8, 8]
sounds:
  gib: misc/udeath.wav
moves:
  stand:
    frames:
      - {ai: stand}
`

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"species/grunt.yaml": {Data: []byte(gruntYAML)},
		"species/scout.yml":  {Data: []byte(scoutYAML)},
		"species/README.md":  {Data: []byte("not a species")},
	}

	r, err := LoadFS(fsys, "species")
	require.NoError(t, err)
	assert.Equal(t, []string{"grunt", "scout"}, r.Names())

	grunt, ok := r.Get("grunt")
	require.True(t, ok)
	assert.Equal(t, 1.0, grunt.Scale)
	assert.True(t, grunt.HasMissile())
	assert.False(t, grunt.HasMelee())

	stand := grunt.Moves.Stand
	require.True(t, stand.Valid())
	assert.Equal(t, 0, stand.FirstFrame)
	assert.Equal(t, 3, stand.LastFrame)
	assert.Equal(t, domain.FrameActionIdleSound, stand.FrameAt(3).Action)
	assert.Equal(t, domain.EndNone, stand.End)

	attack := grunt.Moves.Attack
	assert.Equal(t, 12, attack.LastFrame)
	assert.Equal(t, domain.EndRun, attack.End)
	assert.Equal(t, domain.FrameActionFire, attack.FrameAt(12).Action)
	assert.Equal(t, -5.0, grunt.Moves.Death.FrameAt(20).Dist)

	scout, ok := r.Get("scout")
	require.True(t, ok)
	assert.Equal(t, domain.FlagFly, scout.Locomotion)

	// Общий звук интернирован один раз
	assert.Equal(t, grunt.Sounds.Gib, scout.Sounds.Gib)
	assert.Equal(t, "misc/udeath.wav", r.SoundName(grunt.Sounds.Gib))
	assert.Zero(t, grunt.Sounds.Idle)
	assert.Empty(t, r.SoundName(grunt.Sounds.Idle))
	assert.Len(t, r.Sounds(), 4)
}

func TestLoadFSDeterministicSounds(t *testing.T) {
	fsys := fstest.MapFS{"grunt.yaml": {Data: []byte(gruntYAML)}}
	first, err := LoadFS(fsys, ".")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := LoadFS(fsys, ".")
		require.NoError(t, err)
		assert.Equal(t, first.Sounds(), again.Sounds())
	}
}

func TestAddRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "no name",
			yaml: "health: 10\nmins: [-1,-1,-1]\nmaxs: [1,1,1]\n",
			want: ErrNoName,
		},
		{
			name: "no stand",
			yaml: "name: x\nhealth: 10\nmins: [-1,-1,-1]\nmaxs: [1,1,1]\n",
			want: ErrNoStand,
		},
		{
			name: "bad box",
			yaml: "name: x\nhealth: 10\nmins: [1,-1,-1]\nmaxs: [1,1,1]\n",
			want: ErrBadBox,
		},
		{
			name: "no health",
			yaml: "name: x\nmins: [-1,-1,-1]\nmaxs: [1,1,1]\n",
			want: ErrBadHealth,
		},
		{
			name: "unknown intent",
			yaml: "name: x\nhealth: 10\nmins: [-1,-1,-1]\nmaxs: [1,1,1]\nmoves:\n  stand:\n    frames:\n      - {ai: dance}\n",
			want: ErrUnknownIntent,
		},
		{
			name: "unknown action",
			yaml: "name: x\nhealth: 10\nmins: [-1,-1,-1]\nmaxs: [1,1,1]\nmoves:\n  stand:\n    frames:\n      - {ai: stand, action: sing}\n",
			want: ErrUnknownAction,
		},
		{
			name: "unknown end",
			yaml: "name: x\nhealth: 10\nmins: [-1,-1,-1]\nmaxs: [1,1,1]\nmoves:\n  stand:\n    end: explode\n    frames:\n      - {ai: stand}\n",
			want: ErrUnknownEnd,
		},
		{
			name: "unknown move",
			yaml: "name: x\nhealth: 10\nmins: [-1,-1,-1]\nmaxs: [1,1,1]\nmoves:\n  dance:\n    frames:\n      - {ai: stand}\n",
			want: ErrUnknownMove,
		},
		{
			name: "empty move",
			yaml: "name: x\nhealth: 10\nmins: [-1,-1,-1]\nmaxs: [1,1,1]\nmoves:\n  stand:\n    first: 3\n",
			want: ErrEmptyMove,
		},
		{
			name: "death without corpse",
			yaml: "name: x\nhealth: 10\nmins: [-1,-1,-1]\nmaxs: [1,1,1]\nmoves:\n  stand:\n    frames:\n      - {ai: stand}\n  death:\n    end: run\n    frames:\n      - {ai: move}\n",
			want: ErrDeathNeedsEnd,
		},
		{
			name: "unknown sound",
			yaml: "name: x\nhealth: 10\nmins: [-1,-1,-1]\nmaxs: [1,1,1]\nsounds:\n  burp: a.wav\n",
			want: ErrUnknownSound,
		},
		{
			name: "unknown locomotion",
			yaml: "name: x\nlocomotion: crawl\nhealth: 10\nmins: [-1,-1,-1]\nmaxs: [1,1,1]\n",
			want: ErrBadLocomotion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Add([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add([]byte(gruntYAML)))
	assert.ErrorIs(t, r.Add([]byte(gruntYAML)), ErrDuplicateName)
}

func TestAddRejectsMalformedYAML(t *testing.T) {
	err := NewRegistry().Add([]byte("name: [unclosed"))
	assert.Error(t, err)
}

func TestLoadFSMissingDir(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{}, "nowhere")
	assert.Error(t, err)
}

func TestBundledSpecies(t *testing.T) {
	r, err := LoadFS(assets.Species, "species")
	require.NoError(t, err)
	assert.Equal(t, []string{"brute", "flyer", "soldier"}, r.Names())

	for _, name := range r.Names() {
		sp, _ := r.Get(name)
		t.Run(name, func(t *testing.T) {
			moves := []*domain.MoveTable{
				sp.Moves.Stand, sp.Moves.Walk, sp.Moves.Run, sp.Moves.Attack,
				sp.Moves.Melee, sp.Moves.Pain, sp.Moves.Death,
			}
			for _, m := range moves {
				if m != nil {
					assert.True(t, m.Valid(), m.Name)
				}
			}
			assert.True(t, sp.HasMelee() || sp.HasMissile(), "every species can fight")
			assert.NotZero(t, sp.Sounds.Sight)
		})
	}

	brute, _ := r.Get("brute")
	assert.True(t, brute.HasMelee())
	assert.False(t, brute.HasMissile())
	flyer, _ := r.Get("flyer")
	assert.Equal(t, domain.FlagFly, flyer.Locomotion)
	assert.Nil(t, flyer.Moves.Death)
}
