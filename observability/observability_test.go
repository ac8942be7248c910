package observability

import (
	"context"
	"errors"
	"testing"
)

func TestFields(t *testing.T) {
	if f := String("k", "v"); f.Key() != "k" || f.Value() != "v" {
		t.Errorf("string field mismatch: %v=%v", f.Key(), f.Value())
	}
	if f := Int("n", 3); f.Key() != "n" || f.Value() != 3 {
		t.Errorf("int field mismatch: %v=%v", f.Key(), f.Value())
	}
	if f := Int64("n64", int64(9)); f.Value() != int64(9) {
		t.Errorf("int64 field mismatch: %v", f.Value())
	}
	if f := Float64("f", 2.5); f.Value() != 2.5 {
		t.Errorf("float64 field mismatch: %v", f.Value())
	}
	err := errors.New("boom")
	if f := Error("err", err); f.Value() != err {
		t.Errorf("error field mismatch: %v", f.Value())
	}
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	if l.With(String("a", "b")) == nil {
		t.Error("With returned nil logger")
	}
}

func TestNopTracer(t *testing.T) {
	tr := NopTracer()
	ctx, span := tr.StartSpan(context.Background(), "layout")
	if ctx == nil || span == nil {
		t.Fatal("nop tracer returned nil ctx or span")
	}
	span.SetTag("pages", 3)
	span.SetError(errors.New("x"))
	span.Finish()
}
