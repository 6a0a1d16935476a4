package main

import (
	"reflect"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE t (a INT);  ; CREATE TABLE u (b INT);")
	want := []string{"CREATE TABLE t (a INT)", "CREATE TABLE u (b INT)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLoadSchemaEmptyPath(t *testing.T) {
	cat, err := loadSchema("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.TableNames()) != 0 {
		t.Fatalf("expected an empty catalog, got %v", cat.TableNames())
	}
}
