package textstats

import (
	"reflect"
	"testing"
)

func TestApplyIgnoreListCaseInsensitive(t *testing.T) {
	counts := map[string]int{"banana": 2, "apple": 1}

	tests := []struct {
		name   string
		ignore []string
		want   map[string]int
	}{
		{
			name:   "lower-case entry",
			ignore: []string{"banana"},
			want:   map[string]int{"apple": 1},
		},
		{
			name:   "upper-case entry matches the same term",
			ignore: []string{"BANANA"},
			want:   map[string]int{"apple": 1},
		},
		{
			name:   "absent entries are no-ops",
			ignore: []string{"cherry"},
			want:   map[string]int{"banana": 2, "apple": 1},
		},
		{
			name:   "empty list keeps everything",
			ignore: nil,
			want:   map[string]int{"banana": 2, "apple": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyIgnoreList(counts, tt.ignore)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ApplyIgnoreList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyPercentile(t *testing.T) {
	tests := []struct {
		name       string
		counts     map[string]int
		percentile float64
		want       map[string]int
	}{
		{
			name:       "fifty keeps ties at the cutoff",
			counts:     map[string]int{"a": 5, "b": 5, "c": 1, "d": 1},
			percentile: 50,
			want:       map[string]int{"a": 5, "b": 5},
		},
		{
			name:       "zero keeps all terms",
			counts:     map[string]int{"a": 1, "b": 2, "c": 3, "d": 4},
			percentile: 0,
			want:       map[string]int{"a": 1, "b": 2, "c": 3, "d": 4},
		},
		{
			name:       "top quartile interpolates between ranks",
			counts:     map[string]int{"w": 1, "x": 2, "y": 3, "z": 4},
			percentile: 75,
			want:       map[string]int{"z": 4},
		},
		{
			name:       "hundred keeps only the maximum",
			counts:     map[string]int{"a": 1, "b": 9},
			percentile: 100,
			want:       map[string]int{"b": 9},
		},
		{
			name:       "empty table stays empty",
			counts:     map[string]int{},
			percentile: 90,
			want:       map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyPercentile(tt.counts, tt.percentile)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ApplyPercentile(%v, %v) = %v, want %v", tt.counts, tt.percentile, got, tt.want)
			}
		})
	}
}

func TestPercentileValueLinearInterpolation(t *testing.T) {
	tests := []struct {
		values []float64
		p      float64
		want   float64
	}{
		{[]float64{1, 1, 5, 5}, 50, 3},
		{[]float64{1, 2, 3, 4}, 75, 3.25},
		{[]float64{1, 2, 3, 4}, 0, 1},
		{[]float64{1, 2, 3, 4}, 100, 4},
		{[]float64{7}, 50, 7},
	}

	for _, tt := range tests {
		got := percentileValue(append([]float64(nil), tt.values...), tt.p)
		if got != tt.want {
			t.Errorf("percentileValue(%v, %v) = %v, want %v", tt.values, tt.p, got, tt.want)
		}
	}
}
