package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/nutrisolve/mealrec/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	if _, err := m.Get(ctx, "missing"); !errors.Is(err, core.ErrStoreNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrStoreNotFound", err)
	}

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want v", got)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get(ctx, "k"); !errors.Is(err, core.ErrStoreNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStore_Batch(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	if err := m.BatchSet(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}

	got, err := m.BatchGet(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	want := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BatchGet() = %v, want %v", got, want)
	}
}

func TestMemoryStore_Hash(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	if err := m.HSet(ctx, "h", "f1", []byte("v1")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}
	if err := m.HSet(ctx, "h", "f2", []byte("v2")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}

	got, err := m.HGet(ctx, "h", "f1")
	if err != nil {
		t.Fatalf("HGet() error = %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("HGet() = %q, want v1", got)
	}

	if _, err := m.HGet(ctx, "h", "nope"); !errors.Is(err, core.ErrStoreNotFound) {
		t.Errorf("HGet(nope) error = %v, want ErrStoreNotFound", err)
	}

	all, err := m.HGetAll(ctx, "h")
	if err != nil {
		t.Fatalf("HGetAll() error = %v", err)
	}
	if len(all) != 2 || string(all["f2"]) != "v2" {
		t.Errorf("HGetAll() = %v", all)
	}

	empty, err := m.HGetAll(ctx, "absent")
	if err != nil {
		t.Fatalf("HGetAll(absent) error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("HGetAll(absent) = %v, want empty", empty)
	}
}
