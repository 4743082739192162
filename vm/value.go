package vm

// Value is a MyPL runtime value: nil (null), int64, float64, string,
// bool, or an oid (int) referring to a struct or array heap entry. The
// closed Go type keeps the interpreter's arithmetic/comparison dispatch
// a plain type switch instead of a tagged-union wrapper.
type Value = any

// oid identifies a struct or array heap entry. Object ids are allocated
// monotonically starting at 2024 (matching the reference interpreter)
// and are never reused.
type oid = int

const firstObjectID oid = 2024
