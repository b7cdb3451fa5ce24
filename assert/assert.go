// Package assert provides a small generic assertion framework for
// the queue and list tests. All assertions are "fatal" and abort the
// test at the failure line; see the check package for the
// non-fatal forms.
package assert

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

// True causes a test to fail if the condition is false.
func True(t testing.TB, cond bool) {
	t.Helper()
	if !cond {
		t.Fatal("assertion failure")
	}
}

// Equal causes a test to fail if the two (comparable) values are not
// equal. Pointers compare by identity, not by the values they
// reference.
func Equal[T comparable](t testing.TB, valOne, valTwo T) {
	t.Helper()
	if valOne != valTwo {
		t.Fatalf("unequal: <%v> != <%v>", valOne, valTwo)
	}
}

// NotEqual causes a test to fail if the two values are equal.
func NotEqual[T comparable](t testing.TB, valOne, valTwo T) {
	t.Helper()
	if valOne == valTwo {
		t.Fatalf("equal: <%v>", valOne)
	}
}

// NilPtr asserts that the pointer value is nil.
func NilPtr[T any](t testing.TB, val *T) {
	t.Helper()
	if val != nil {
		t.Fatalf("pointer (type=%T) was expected to be nil", val)
	}
}

// NotNilPtr asserts that the pointer value is not nil.
func NotNilPtr[T any](t testing.TB, val *T) {
	t.Helper()
	if val == nil {
		t.Fatalf("pointer (type=%T) was nil", val)
	}
}

// Zero fails a test if the value is not the zero-value for its type.
func Zero[T comparable](t testing.TB, val T) {
	t.Helper()

	var zero T
	if zero != val {
		t.Fatalf("expected zero for value of type %T <%v>", val, val)
	}
}

// NotZero fails a test if the value is the zero for its type.
func NotZero[T comparable](t testing.TB, val T) {
	t.Helper()
	var zero T
	if zero == val {
		t.Fatalf("expected non-zero for value of type %T", val)
	}
}

// Error fails the test if the error is nil.
func Error(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected non-nil error")
	}
}

// NotError fails the test if the error is non-nil.
func NotError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// ErrorIs is an assertion form of errors.Is, and fails the test if
// the error (or its wrapped values) are not equal to the target
// error.
func ErrorIs(t testing.TB, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error <%v>, is not <%v>", err, target)
	}
}

// Panic asserts that the function raises a panic.
func Panic(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if r := recover(); r == nil {
			t.Fatal("expected a panic but got none")
		}
	}()
	fn()
}

// NotPanic asserts that the function does not panic.
func NotPanic(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if r := recover(); r != nil {
			t.Fatal("panic: ", r)
		}
	}()
	fn()
}

// Contains asserts that the item is in the slice provided. Empty or
// nil slices always cause failure.
func Contains[T comparable](t testing.TB, slice []T, item T) {
	t.Helper()
	if len(slice) == 0 {
		t.Fatal("slice was empty")
	}

	for _, it := range slice {
		if it == item {
			return
		}
	}

	t.Fatalf("item <%v> is not in %v", item, slice)
}

// EqualItems compares the values in two slices and fails the test if
// they differ in length or at any index. Nil and empty slices are
// equal.
func EqualItems[T comparable](t testing.TB, one, two []T) {
	t.Helper()
	if len(one) != len(two) {
		t.Fatalf("slices are of different lengths [%d vs %d]: %v vs %v", len(one), len(two), one, two)
	}

	for idx := range one {
		if one[idx] != two[idx] {
			t.Fatalf("items at index %d [%v vs %v] are not equal: %v vs %v", idx, one[idx], two[idx], one, two)
		}
	}
}

// Substring asserts that the substring is present in the string.
func Substring(t testing.TB, str, substr string) {
	t.Helper()
	if !strings.Contains(str, substr) {
		t.Fatalf("expected %q to contain substring %q", str, substr)
	}
}

// NotSubstring asserts that the substring is not present in the
// outer string.
func NotSubstring(t testing.TB, str, substr string) {
	t.Helper()
	if strings.Contains(str, substr) {
		t.Fatalf("expected %q to not contain substring %q", str, substr)
	}
}

type recorder struct {
	testing.TB
	failed bool
}

func (*recorder) Helper() {}
func (*recorder) Log(...any) {}
func (*recorder) Logf(string, ...any) {}
func (*recorder) Name() string { return "recorder" }
func (r *recorder) Failed() bool { return r.failed }
func (r *recorder) Fail() { r.failed = true }
func (r *recorder) Error(...any) { r.Fail() }
func (r *recorder) Errorf(string, ...any) { r.Fail() }
func (r *recorder) FailNow() { r.Fail(); runtime.Goexit() }
func (r *recorder) Fatal(...any) { r.FailNow() }
func (r *recorder) Fatalf(string, ...any) { r.FailNow() }

// Failing asserts that the specified test fails. The test runs in its
// own goroutine against a recording testing.TB, so fatal assertions
// inside it stop only that goroutine.
func Failing(t testing.TB, test func(testing.TB)) {
	t.Helper()
	rec := &recorder{}
	sig := make(chan struct{})
	go func() {
		defer close(sig)
		test(rec)
	}()
	<-sig

	if !rec.failed {
		t.Fatalf("expected test to fail in %s", t.Name())
	}
}
