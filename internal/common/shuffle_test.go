package common

import (
	"sort"
	"testing"
)

// Always draws the current index so that Shuffle leaves the order unchanged.
type identitySource struct{}

func (identitySource) Intn(n int) int { return n - 1 }

// Always draws 0.
type zeroSource struct{}

func (zeroSource) Intn(n int) int { return 0 }

func TestShuffleIsPermutation(t *testing.T) {
	rs := NewRandomSource(42)
	input := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	for run := 0; run < 50; run++ {
		shuffled := Shuffle(rs, input)
		if len(shuffled) != len(input) {
			t.Fatalf("expected %d elements but got %d", len(input), len(shuffled))
		}
		sorted := append([]int(nil), shuffled...)
		sort.Ints(sorted)
		for i, v := range sorted {
			if v != i {
				t.Fatalf("expected a permutation of %v but got %v", input, shuffled)
			}
		}
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	input := []string{"a", "b", "c", "d"}
	Shuffle(zeroSource{}, input)
	expected := []string{"a", "b", "c", "d"}
	for i := range expected {
		if input[i] != expected[i] {
			t.Errorf("expected input to remain %v but got %v", expected, input)
			break
		}
	}
}

func TestShuffleFisherYatesSwaps(t *testing.T) {
	tests := []struct {
		rs       RandomSource
		input    []string
		expected []string
	}{
		{identitySource{}, []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		// i=2 swaps with 0, then i=1 swaps with 0
		{zeroSource{}, []string{"a", "b", "c"}, []string{"b", "c", "a"}},
		{zeroSource{}, []string{"a"}, []string{"a"}},
		{zeroSource{}, []string{}, []string{}},
	}

	for testIndex, test := range tests {
		shuffled := Shuffle(test.rs, test.input)
		if len(shuffled) != len(test.expected) {
			t.Errorf("expected %v but got %v for test index %d", test.expected, shuffled, testIndex)
			continue
		}
		for i := range test.expected {
			if shuffled[i] != test.expected[i] {
				t.Errorf("expected %v but got %v for test index %d", test.expected, shuffled, testIndex)
				break
			}
		}
	}
}

func TestShuffleSameSeedSameOrder(t *testing.T) {
	input := []int{1, 2, 3, 4, 5, 6, 7, 8}
	a := Shuffle(NewRandomSource(7), input)
	b := Shuffle(NewRandomSource(7), input)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical permutations for the same seed but got %v and %v", a, b)
		}
	}
}
