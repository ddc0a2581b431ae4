package intscan

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func TestParseInts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []uint32
	}{
		{"empty", "", []uint32{}},
		{"separators_only", "                        \n\n", []uint32{}},
		{"one_number", "__123___________", []uint32{123}},
		{"two_numbers", "__123__12345____", []uint32{123, 12345}},
		{"non_digit_tail", "____1234________eee", []uint32{1234}},
		{"short_input", "7", []uint32{7}},
		{"short_multiple", "1 22 333", []uint32{1, 22, 333}},
		{"exact_window_trailing", "            1234", []uint32{1234}},
		{"number_across_windows", "              12345678 9", []uint32{12345678, 9}},
		{"eight_digits", "99999999 00000000 12345678", []uint32{99999999, 0, 12345678}},
		{"leading_zeros", "007 0042 00000001", []uint32{7, 42, 1}},
		{"widths_mixed", "  1 23 456 7890           \n", []uint32{1, 23, 456, 7890}},
		{"five_one_one", "12345 6 7 89 0 1 2 3 4 5 6 7 8", []uint32{12345, 6, 7, 89, 0, 1, 2, 3, 4, 5, 6, 7, 8}},
		{"three_then_singles", "123 4 5 6 7 8 9 1 2 3", []uint32{123, 4, 5, 6, 7, 8, 9, 1, 2, 3}},
		{"tail_needs_two_batches", "x1 22 333 4444 5", []uint32{1, 22, 333, 4444, 5}},
		{"every_byte_digit_pair", "1,2;3|4\t5\r6\n7", []uint32{1, 2, 3, 4, 5, 6, 7}},
		{"location_lists", "3   4\n4   3\n2   5\n1   3\n3   9\n3   3\n", []uint32{3, 4, 4, 3, 2, 5, 1, 3, 3, 9, 3, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInts([]byte(tt.input), testTable)
			if err != nil {
				t.Fatalf("ParseInts(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseInts(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseIntsTooLong(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
	}{
		{"nine_digits", "123456789", 0},
		{"nine_digits_padded", "  123456789     ", 2},
		{"sixteen_digits", "1234567890123456 1", 0},
		{"after_numbers", "1 2 3 4 5 6 7 8 9 1234567890 1", 18},
		{"long_run_across_windows", "           123456789012 4", 11},
		{"in_tail", "1 2 3 4 5 6 7 8 9 10 11 12 999999999", 27},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInts([]byte(tt.input), testTable)
			if !errors.Is(err, ErrNumberTooLong) {
				t.Fatalf("ParseInts(%q) error = %v, want ErrNumberTooLong", tt.input, err)
			}
			if got != nil {
				t.Errorf("ParseInts returned partial output %v", got)
			}
			if want := fmt.Sprintf("at offset %d", tt.offset); !strings.Contains(err.Error(), want) {
				t.Errorf("error %q does not mention %q", err, want)
			}
		})
	}
}

func TestMustParseIntsPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNumberTooLong) {
			t.Errorf("recovered %v, want ErrNumberTooLong", r)
		}
	}()
	MustParseInts([]byte("1 234567890"), testTable)
}

func TestMustParseInts(t *testing.T) {
	got := MustParseInts([]byte("10 20 30"), testTable)
	if !reflect.DeepEqual(got, []uint32{10, 20, 30}) {
		t.Errorf("MustParseInts = %v", got)
	}
}

func TestParseIntsIdempotent(t *testing.T) {
	input := generateInput(rand.New(rand.NewSource(7)), 2000, " \n")
	first, err := ParseInts(input, testTable)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := ParseInts(input, testTable)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("call %d returned different output", i+2)
		}
	}
}

func TestParseIntsDoesNotModifyInput(t *testing.T) {
	input := []byte("12 345 6789 1 2 3 44444444 55")
	orig := bytes.Clone(input)
	if _, err := ParseInts(input, testTable); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(input, orig) {
		t.Error("input was modified")
	}
}

func TestParseIntsMatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, seps := range []string{" ", "\n", " \n", "   \n\t,"} {
		for trial := 0; trial < 50; trial++ {
			input := generateInput(rng, rng.Intn(500), seps)

			want, err := ParseIntsScalar(input)
			if err != nil {
				t.Fatalf("scalar failed on %q: %v", input, err)
			}
			got, err := ParseInts(input, testTable)
			if err != nil {
				t.Fatalf("vector failed on %q: %v", input, err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("mismatch on %q:\nvector %v\nscalar %v", input, got, want)
			}
		}
	}
}

func TestParseIntsMatchesStrconv(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 100; trial++ {
		input := generateInput(rng, rng.Intn(300), " \n")

		var want []uint32
		for _, f := range strings.Fields(string(input)) {
			n, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				t.Fatal(err)
			}
			want = append(want, uint32(n))
		}

		got, err := ParseInts(input, testTable)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(want) || (len(got) > 0 && !reflect.DeepEqual(got, want)) {
			t.Fatalf("mismatch on %q:\ngot  %v\nwant %v", input, got, want)
		}
	}
}

func TestParseIntsEveryWidthAtEveryOffset(t *testing.T) {
	for digits := 1; digits <= MaxDigits; digits++ {
		num := strings.Repeat("9", digits)
		for lead := 0; lead < 2*WindowSize; lead++ {
			input := strings.Repeat(" ", lead) + num + " " + num + "\n"
			want, _ := strconv.ParseUint(num, 10, 32)

			got, err := ParseInts([]byte(input), testTable)
			if err != nil {
				t.Fatalf("%q: %v", input, err)
			}
			if len(got) != 2 || got[0] != uint32(want) || got[1] != uint32(want) {
				t.Fatalf("%q: got %v", input, got)
			}
		}
	}
}

// generateInput returns count random numbers of 1-8 digits, each followed
// by 1-3 separator bytes drawn from seps.
func generateInput(rng *rand.Rand, count int, seps string) []byte {
	var buf []byte
	for i := 0; i < count; i++ {
		n := rng.Intn(MaxDigits) + 1
		for j := 0; j < n; j++ {
			buf = append(buf, byte('0'+rng.Intn(10)))
		}
		for j := rng.Intn(3); j >= 0; j-- {
			buf = append(buf, seps[rng.Intn(len(seps))])
		}
	}
	return buf
}

func BenchmarkParseInts(b *testing.B) {
	input := generateInput(rand.New(rand.NewSource(3)), 10000, "   \n")
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseInts(input, testTable); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseIntsScalar(b *testing.B) {
	input := generateInput(rand.New(rand.NewSource(3)), 10000, "   \n")
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseIntsScalar(input); err != nil {
			b.Fatal(err)
		}
	}
}
