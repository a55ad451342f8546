package eval

// End-to-end tests for comprehension semantics: source is parsed, expanded
// into wrapper-chaining calls, and then evaluated. These exercise the full
// pipeline rather than the expansion output text.

import (
	"testing"

	"github.com/marmoset-lang/marmoset/object"
	"github.com/stretchr/testify/require"
)

func tuple(items ...object.Object) *object.Tuple {
	return object.NewTuple(items)
}

func TestOptionComprehension(t *testing.T) {
	result := mustRun(t, `
option {
	let x <- Some(2)
	let y = x * 3
	y
}`)
	assertEqualObjects(t, result, object.NewSome(object.NewInt(6)))
}

func TestOptionShortCircuit(t *testing.T) {
	// Sources after a None bind must never be evaluated.
	result := mustRun(t, `
let mut calls = 0
func get(v) { calls = calls + 1; v }
let r = option {
	let x <- get(Some(1))
	let y <- None
	let z <- get(Some(3))
	x + z
}
(r, calls)`)
	assertEqualObjects(t, result, tuple(object.None, object.NewInt(1)))
}

func TestResultComprehension(t *testing.T) {
	result := mustRun(t, `
result {
	let a <- Ok(1)
	let b <- Ok(2)
	a + b
}`)
	assertEqualObjects(t, result, object.NewOk(object.NewInt(3)))
}

func TestResultFirstErrorWins(t *testing.T) {
	// The first Err stops the chain and its payload is preserved.
	result := mustRun(t, `
let mut calls = 0
func get(v) { calls = calls + 1; v }
let r = result {
	let a <- get(Ok(1))
	let b <- get(Err("boom"))
	let c <- get(Ok(3))
	a + b + c
}
(r, calls)`)
	assertEqualObjects(t, result, tuple(
		object.NewErrResult(object.NewString("boom")),
		object.NewInt(2),
	))
}

func TestIterComprehensionCartesianOrder(t *testing.T) {
	result := mustRun(t, `
list(iter {
	let x <- [1, 2]
	let y <- ["a", "b"]
	(x, y)
})`)
	assertEqualObjects(t, result, object.NewList([]object.Object{
		tuple(object.NewInt(1), object.NewString("a")),
		tuple(object.NewInt(1), object.NewString("b")),
		tuple(object.NewInt(2), object.NewString("a")),
		tuple(object.NewInt(2), object.NewString("b")),
	}))
}

func TestIterGuard(t *testing.T) {
	result := mustRun(t, `
list(iter {
	let x <- 0..4
	let y <- x..4
	if x * 2 == y
	(x, y)
})`)
	assertEqualObjects(t, result, object.NewList([]object.Object{
		tuple(object.NewInt(0), object.NewInt(0)),
		tuple(object.NewInt(1), object.NewInt(2)),
	}))
}

func TestIterGuardSeesBoundNames(t *testing.T) {
	result := mustRun(t, `
list(iter {
	let x <- [1, 2, 3, 4]
	if x % 2 == 0
	x * 10
})`)
	assertEqualObjects(t, result, object.NewList([]object.Object{
		object.NewInt(20), object.NewInt(40),
	}))
}

func TestIterLaziness(t *testing.T) {
	// Pulling the first element evaluates exactly one tail.
	result := mustRun(t, `
let mut pulls = 0
func trace(v) { pulls = pulls + 1; v }
let s = iter {
	let x <- [1, 2, 3]
	trace(x)
}
let first = s.first()
(first, pulls)`)
	assertEqualObjects(t, result, tuple(
		object.NewSome(object.NewInt(1)),
		object.NewInt(1),
	))
}

func TestIterTailOptionFlavor(t *testing.T) {
	// A different-flavor tail is a value like any other and gets one
	// wrap from the outer comprehension.
	result := mustRun(t, `
list(iter {
	let x <- 0..2
	option {
		let y <- Some(x)
		y
	}
})`)
	assertEqualObjects(t, result, object.NewList([]object.Object{
		object.NewSome(object.NewInt(0)),
		object.NewSome(object.NewInt(1)),
	}))
}

func TestSameFlavorTailSplices(t *testing.T) {
	// A same-flavor comprehension in tail position is spliced verbatim,
	// so the result is not double-wrapped.
	result := mustRun(t, `
option {
	let x <- Some(1)
	option {
		let y <- Some(x + 1)
		y
	}
}`)
	assertEqualObjects(t, result, object.NewSome(object.NewInt(2)))
}

func TestComprehensionStructPattern(t *testing.T) {
	result := mustRun(t, `
struct Point{x, y}
option {
	let Point{x: a, y: _} <- Some(Point{x: 9, y: 1})
	a
}`)
	assertEqualObjects(t, result, object.NewSome(object.NewInt(9)))
}

func TestComprehensionTuplePattern(t *testing.T) {
	result := mustRun(t, `
list(iter {
	let (a, b) <- [(1, 2), (3, 4)]
	a + b
})`)
	assertEqualObjects(t, result, object.NewList([]object.Object{
		object.NewInt(3), object.NewInt(7),
	}))
}

func TestComprehensionMutBind(t *testing.T) {
	result := mustRun(t, `
option {
	let mut a <- Some(2)
	a = a + 10
	a
}`)
	assertEqualObjects(t, result, object.NewSome(object.NewInt(12)))
}

func TestEmptyComprehensions(t *testing.T) {
	unit := object.NewTuple(nil)
	assertEqualObjects(t, mustRun(t, "option {}"), object.NewSome(unit))
	assertEqualObjects(t, mustRun(t, "result {}"), object.NewOk(unit))
	assertEqualObjects(t, mustRun(t, "iter {}"), object.NewSome(unit))
}

func TestDiscardedTailYieldsUnit(t *testing.T) {
	// A trailing semicolon discards the value, so the comprehension
	// yields the wrapped unit.
	result := mustRun(t, `
option {
	let a <- Some(1)
	let b <- Some(2)
}`)
	assertEqualObjects(t, result, object.NewSome(object.NewTuple(nil)))
}

func TestComprehensionBodyStatements(t *testing.T) {
	// Plain statements between binds run for their side effects in
	// bind order.
	result := mustRun(t, `
let mut log = []
func note(v) { log.append(v); v }
let r = result {
	let a <- Ok(10)
	note(a)
	let b <- Ok(20)
	note(b)
	a + b
}
(r, log)`)
	assertEqualObjects(t, result, tuple(
		object.NewOk(object.NewInt(30)),
		object.NewList([]object.Object{object.NewInt(10), object.NewInt(20)}),
	))
}

func TestGuardOnOptionRejected(t *testing.T) {
	_, err := run(t, "option { let x <- Some(1); if x > 0; x }")
	require.Error(t, err)
	require.Contains(t, err.Error(), "guard")
}

func TestNestedComprehensionInBindSource(t *testing.T) {
	// A comprehension used as a bind source is expanded too.
	result := mustRun(t, `
option {
	let x <- option { let a <- Some(4); a * 2 }
	x + 1
}`)
	assertEqualObjects(t, result, object.NewSome(object.NewInt(9)))
}

func TestComprehensionInsideFunction(t *testing.T) {
	result := mustRun(t, `
func lookup(o) {
	option {
		let v <- o
		v * 2
	}
}
(lookup(Some(21)), lookup(None))`)
	assertEqualObjects(t, result, tuple(
		object.NewSome(object.NewInt(42)),
		object.None,
	))
}

func TestIterOverOption(t *testing.T) {
	// Options iterate as zero-or-one element sequences.
	result := mustRun(t, `
list(iter {
	let o <- [Some(1), None, Some(3)]
	let v <- o
	v
})`)
	assertEqualObjects(t, result, object.NewList([]object.Object{
		object.NewInt(1), object.NewInt(3),
	}))
}
