package huffman

import (
	"testing"
)

func TestCount(t *testing.T) {
	actual := Count([]rune("banana"))
	expect := []Entry[rune, uint64]{{'a', 3}, {'b', 1}, {'n', 2}}
	if len(expect) != len(actual) {
		t.Fatalf("wrong length:\n\texpect: %v\n\tactual: %v", expect, actual)
	}
	for index := range expect {
		if expect[index] != actual[index] {
			t.Errorf("entry %d:\n\texpect: %v\n\tactual: %v", index, expect[index], actual[index])
		}
	}
}

func TestEntriesFromMap(t *testing.T) {
	actual := EntriesFromMap(map[string]int{"b": 2, "c": 3, "a": 1})
	expect := []Entry[string, int]{MakeEntry("a", 1), MakeEntry("b", 2), MakeEntry("c", 3)}
	for index := range expect {
		if expect[index] != actual[index] {
			t.Errorf("entry %d:\n\texpect: %v\n\tactual: %v", index, expect[index], actual[index])
		}
	}
}
