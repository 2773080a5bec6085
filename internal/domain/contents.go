package domain

import "github.com/iiroka/netquake2-sub002/internal/core/types"

// Contents - битовая маска содержимого объёма.
type Contents uint32

const (
	ContentsSolid       Contents = 1
	ContentsWindow      Contents = 2
	ContentsLava        Contents = 8
	ContentsSlime       Contents = 16
	ContentsWater       Contents = 32
	ContentsPlayerClip  Contents = 0x10000
	ContentsMonsterClip Contents = 0x20000
	ContentsMonster     Contents = 0x2000000
	ContentsDeadMonster Contents = 0x4000000
)

// Маски для трассировок.
const (
	MaskAll          Contents = 0xffffffff
	MaskSolid                 = ContentsSolid | ContentsWindow
	MaskPlayerSolid           = ContentsSolid | ContentsPlayerClip | ContentsWindow | ContentsMonster
	MaskMonsterSolid          = ContentsSolid | ContentsMonsterClip | ContentsWindow | ContentsMonster
	MaskWater                 = ContentsWater | ContentsLava | ContentsSlime
	MaskOpaque                = ContentsSolid | ContentsSlime | ContentsLava
	MaskShot                  = ContentsSolid | ContentsMonster | ContentsWindow | ContentsDeadMonster
	// MaskClearShot - чем может быть перекрыт выстрел монстра.
	MaskClearShot = ContentsSolid | ContentsMonster | ContentsSlime | ContentsLava | ContentsWindow
)

// Solid - как сущность участвует в столкновениях.
type Solid uint8

const (
	SolidNot     Solid = iota // не сталкивается
	SolidTrigger              // только касания
	SolidBBox                 // коробка
)

// Trace - результат протяжки коробки через мир.
type Trace struct {
	AllSolid   bool // весь путь внутри твёрдого
	StartSolid bool // начало внутри твёрдого
	Fraction   float64
	EndPos     Vec3
	Normal     Vec3 // нормаль поверхности, в которую упёрлись
	// Ent - во что упёрлись: мир или сущность. NilEntityID при Fraction == 1.
	Ent      types.EntityID
	Contents Contents
}

// Blocked - трасса не дошла до конца.
func (t Trace) Blocked() bool {
	return t.Fraction < 1
}
