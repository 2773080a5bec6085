package domain

import "math"

// Индексы углов в Angles.
const (
	Pitch = 0
	Yaw   = 1
	Roll  = 2
)

// Vec3 - точка или направление в мировых единицах.
type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v[0] * f, v[1] * f, v[2] * f}
}

// MA возвращает v + dir*scale.
func (v Vec3) MA(scale float64, dir Vec3) Vec3 {
	return Vec3{v[0] + dir[0]*scale, v[1] + dir[1]*scale, v[2] + dir[2]*scale}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize возвращает единичный вектор и исходную длину.
// Нулевой вектор остаётся нулевым.
func (v Vec3) Normalize() (Vec3, float64) {
	l := v.Length()
	if l == 0 {
		return v, 0
	}
	return v.Scale(1 / l), l
}

// AngleMod приводит угол в градусах к [0, 360).
func AngleMod(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// VecToYaw - курс вектора в горизонтальной плоскости, [0, 360).
func VecToYaw(v Vec3) float64 {
	if v[0] == 0 && v[1] == 0 {
		return 0
	}
	if v[0] == 0 {
		if v[1] > 0 {
			return 90
		}
		return 270
	}
	return AngleMod(math.Atan2(v[1], v[0]) * 180 / math.Pi)
}

// AngleVectors возвращает базис направления взгляда.
func AngleVectors(angles Vec3) (forward, right, up Vec3) {
	ay := angles[Yaw] * math.Pi / 180
	sy, cy := math.Sin(ay), math.Cos(ay)
	ap := angles[Pitch] * math.Pi / 180
	sp, cp := math.Sin(ap), math.Cos(ap)
	ar := angles[Roll] * math.Pi / 180
	sr, cr := math.Sin(ar), math.Cos(ar)

	forward = Vec3{cp * cy, cp * sy, -sp}
	right = Vec3{-1*sr*sp*cy + -1*cr*-sy, -1*sr*sp*sy + -1*cr*cy, -1 * sr * cp}
	up = Vec3{cr*sp*cy + -sr*-sy, cr*sp*sy + -sr*cy, cr * cp}
	return forward, right, up
}

// YawVector - единичный горизонтальный вектор по курсу yaw.
func YawVector(yaw float64) Vec3 {
	r := yaw * math.Pi / 180
	return Vec3{math.Cos(r), math.Sin(r), 0}
}

// ProjectSource смещает точку вдоль базиса: offset = (вперёд, вправо, вверх).
func ProjectSource(point, offset, forward, right Vec3) Vec3 {
	return Vec3{
		point[0] + forward[0]*offset[0] + right[0]*offset[1],
		point[1] + forward[1]*offset[0] + right[1]*offset[1],
		point[2] + forward[2]*offset[0] + right[2]*offset[1] + offset[2],
	}
}

// ClipVelocity гасит составляющую скорости вдоль нормали.
// overbounce > 1 даёт отскок.
func ClipVelocity(in, normal Vec3, overbounce float64) Vec3 {
	const stopEpsilon = 0.1
	backoff := in.Dot(normal) * overbounce
	var out Vec3
	for i := 0; i < 3; i++ {
		out[i] = in[i] - normal[i]*backoff
		if out[i] > -stopEpsilon && out[i] < stopEpsilon {
			out[i] = 0
		}
	}
	return out
}
