package osim

// ValueType tags the runtime type of an output value. The tag is checked
// once when an output catalog is built; no dynamic casting happens per row.
type ValueType int

const (
	TypeDouble ValueType = iota
	TypeVec3
	TypeMat3
)

func (t ValueType) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeVec3:
		return "vec3"
	case TypeMat3:
		return "mat3"
	default:
		return "unknown"
	}
}

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

// Mat3 is a row-major 3x3 matrix, used for frame rotations.
type Mat3 [9]float64

// Identity3 is the identity rotation.
var Identity3 = Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}

func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Value is a tagged value wrapper. Exactly one of the payload fields is
// meaningful, selected by Type.
type Value struct {
	Type   ValueType
	Scalar float64
	Vector Vec3
	Matrix Mat3
}

func Double(f float64) Value {
	return Value{Type: TypeDouble, Scalar: f}
}

func Vector(v Vec3) Value {
	return Value{Type: TypeVec3, Vector: v}
}

func Matrix(m Mat3) Value {
	return Value{Type: TypeMat3, Matrix: m}
}
